package dashboard

import (
	"context"
	"sync"
	"time"

	"github.com/go-chi/jwtauth/v5"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/roster"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/jwt"
	attendancesvc "github.com/cmlabs-hris/attendance-dashboard-go/internal/service/attendance"
)

var fixedNow = time.Date(2025, 3, 10, 11, 0, 0, 0, time.FixedZone("WIB", 7*3600))

type fakeRoster struct {
	mu     sync.Mutex
	people []roster.Person
	err    error
	calls  int
}

func (f *fakeRoster) GetAll(ctx context.Context, classCode string) ([]roster.Person, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.people, nil
}

type fakeStore struct {
	mu       sync.Mutex
	byDate   map[string][]attendance.Record
	failures map[string]error
	calls    int
	block    bool
}

func (f *fakeStore) GetByDate(ctx context.Context, classCode, date string) ([]attendance.Record, error) {
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if err, ok := f.failures[date]; ok {
		return nil, err
	}
	return f.byDate[date], nil
}

type fakeCache struct {
	mu    sync.Mutex
	saved map[string]*dashboard.Snapshot
}

func (c *fakeCache) Save(ctx context.Context, snapshot *dashboard.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.saved == nil {
		c.saved = make(map[string]*dashboard.Snapshot)
	}
	c.saved[snapshot.ClassCode] = snapshot
	return nil
}

func (c *fakeCache) Load(ctx context.Context, classCode string) (*dashboard.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if s, ok := c.saved[classCode]; ok {
		return s, nil
	}
	return nil, dashboard.ErrSnapshotNotFound
}

func strPtr(s string) *string { return &s }

func testRoster() []roster.Person {
	return []roster.Person{
		{ID: "a", Name: "Ana", Department: strPtr("Science"), ClassCode: "CS101"},
		{ID: "b", Name: "Ben", Department: strPtr("Science"), ClassCode: "CS101"},
		{ID: "c", Name: "Cy", Department: strPtr("Arts"), ClassCode: "CS101"},
		{ID: "d", Name: "Di", ClassCode: "CS101"},
	}
}

func r(id, date, clock string) attendance.Record {
	return attendance.Record{PersonID: id, Name: id, Date: date, Time: clock}
}

// testRecords covers 2025-03-04 .. 2025-03-10; "a" is present every day.
func testRecords() map[string][]attendance.Record {
	return map[string][]attendance.Record{
		"2025-03-04": {r("a", "2025-03-04", "09:00"), r("b", "2025-03-04", "09:10")},
		"2025-03-05": {r("a", "2025-03-05", "09:00")},
		"2025-03-06": {r("a", "2025-03-06", "09:00"), r("c", "2025-03-06", "09:50")},
		"2025-03-07": {r("a", "2025-03-07", "09:00")},
		"2025-03-08": {r("a", "2025-03-08", "09:00"), r("b", "2025-03-08", "08:40")},
		"2025-03-09": {r("a", "2025-03-09", "09:00")},
		"2025-03-10": {
			r("a", "2025-03-10", "08:45"),
			r("b", "2025-03-10", "09:31"),
			r("c", "2025-03-10", "10:05:12"),
			r("d", "2025-03-10", "late"),
		},
	}
}

func newTestAggregator(people *fakeRoster, store *fakeStore, mode MonthlyMode) *Aggregator {
	return NewAggregator(people, attendancesvc.NewFetcher(store, 4, nil), Options{
		Location:    fixedNow.Location(),
		MonthlyMode: mode,
		Now:         func() time.Time { return fixedNow },
	})
}

func contextWithClaims(claims map[string]interface{}) context.Context {
	auth := jwt.NewJWTService("test-secret", "").JWTAuth()
	token, _, err := auth.Encode(claims)
	if err != nil {
		panic(err)
	}
	return jwtauth.NewContext(context.Background(), token, nil)
}
