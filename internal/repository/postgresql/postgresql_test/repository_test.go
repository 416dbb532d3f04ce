package postgresql_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/roster"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/repository/postgresql"
)

var testSetup *TestDatabaseSetup

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		fmt.Println("TEST_DATABASE_URL not set, skipping postgresql repository tests")
		os.Exit(0)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	setup, err := NewTestDatabase(ctx, dsn)
	cancel()
	if err != nil {
		panic(err)
	}
	testSetup = setup

	code := m.Run()
	testSetup.Close()
	os.Exit(code)
}

func resetTables(t *testing.T) {
	t.Helper()
	require.NoError(t, testSetup.TruncateAllTables(context.Background()))
}

func seed(t *testing.T, ctx context.Context) {
	t.Helper()
	stmts := []struct {
		sql  string
		args []interface{}
	}{
		{`INSERT INTO persons (id, name, department, class_code, created_at) VALUES ($1, $2, $3, $4, $5)`,
			[]interface{}{"p2", "Ben", nil, "CS101", time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)}},
		{`INSERT INTO persons (id, name, department, class_code, created_at) VALUES ($1, $2, $3, $4, $5)`,
			[]interface{}{"p1", "Ana", "Science", "CS101", time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}},
		{`INSERT INTO persons (id, name, department, class_code, is_active) VALUES ($1, $2, $3, $4, FALSE)`,
			[]interface{}{"p3", "Cy", "Arts", "CS101"}},
		{`INSERT INTO persons (id, name, department, class_code) VALUES ($1, $2, $3, $4)`,
			[]interface{}{"q1", "Di", "Arts", "CS202"}},
		{`INSERT INTO attendance_records (person_id, name, class_code, date, check_in) VALUES ($1, $2, $3, $4, $5)`,
			[]interface{}{"p1", "Ana", "CS101", "2025-03-10", "09:12:00"}},
		{`INSERT INTO attendance_records (person_id, name, class_code, date, check_in) VALUES ($1, $2, $3, $4, $5)`,
			[]interface{}{"p2", "Ben", "CS101", "2025-03-10", "08:55"}},
		{`INSERT INTO attendance_records (person_id, name, class_code, date, check_in) VALUES ($1, $2, $3, $4, $5)`,
			[]interface{}{"q1", "Di", "CS202", "2025-03-10", "09:00"}},
		{`INSERT INTO attendance_records (person_id, name, class_code, date, check_in) VALUES ($1, $2, $3, $4, $5)`,
			[]interface{}{"p1", "Ana", "CS101", "2025-03-11", "N/A"}},
	}
	for _, s := range stmts {
		_, err := testSetup.DB.Exec(ctx, s.sql, s.args...)
		require.NoError(t, err)
	}
}

func TestRosterRepository_GetAll(t *testing.T) {
	ctx := context.Background()
	resetTables(t)
	seed(t, ctx)

	people, err := postgresql.NewRosterRepository(testSetup.DB).GetAll(ctx, "CS101")
	require.NoError(t, err)

	require.Len(t, people, 2)
	assert.Equal(t, "p1", people[0].ID)
	require.NotNil(t, people[0].Department)
	assert.Equal(t, "Science", *people[0].Department)
	assert.Equal(t, "p2", people[1].ID)
	assert.Nil(t, people[1].Department)
	assert.Equal(t, "CS101", people[1].ClassCode)
}

func TestRosterRepository_EmptyClass(t *testing.T) {
	ctx := context.Background()
	resetTables(t)

	people, err := postgresql.NewRosterRepository(testSetup.DB).GetAll(ctx, "NOPE")
	require.NoError(t, err)
	assert.Empty(t, people)
}

func TestRosterRepository_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := postgresql.NewRosterRepository(testSetup.DB).GetAll(ctx, "CS101")
	assert.True(t, errors.Is(err, roster.ErrRosterUnavailable))
}

func TestAttendanceRepository_GetByDate(t *testing.T) {
	ctx := context.Background()
	resetTables(t)
	seed(t, ctx)
	repo := postgresql.NewAttendanceRepository(testSetup.DB)

	records, err := repo.GetByDate(ctx, "CS101", "2025-03-10")
	require.NoError(t, err)
	assert.Equal(t, []attendance.Record{
		{PersonID: "p2", Name: "Ben", Date: "2025-03-10", Time: "08:55"},
		{PersonID: "p1", Name: "Ana", Date: "2025-03-10", Time: "09:12:00"},
	}, records)

	malformed, err := repo.GetByDate(ctx, "CS101", "2025-03-11")
	require.NoError(t, err)
	require.Len(t, malformed, 1)
	assert.Equal(t, "N/A", malformed[0].Time)

	none, err := repo.GetByDate(ctx, "CS101", "2025-03-12")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestAttendanceRepository_BadDate(t *testing.T) {
	_, err := postgresql.NewAttendanceRepository(testSetup.DB).GetByDate(context.Background(), "CS101", "not-a-date")
	assert.ErrorIs(t, err, attendance.ErrAttendanceFetch)
}
