package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/dashboard"
)

func TestToMinutes(t *testing.T) {
	cases := []struct {
		input string
		want  int
	}{
		{"00:00", 0},
		{"09:30", 570},
		{"9:05", 545},
		{"23:59", 1439},
		{"08:15:42", 495},
		{" 10:00 ", 600},
	}
	for _, c := range cases {
		got, err := ToMinutes(c.input)
		require.NoError(t, err, c.input)
		assert.Equal(t, c.want, got, c.input)
	}
}

func TestToMinutes_Malformed(t *testing.T) {
	inputs := []string{"", "N/A", "0930", "24:00", "12:60", "-1:30", "ab:cd", "09:30:61", "09:30:00:00", "123:00", "09:"}
	for _, input := range inputs {
		_, err := ToMinutes(input)
		assert.ErrorIs(t, err, attendance.ErrMalformedTime, input)
	}
}

func TestIsLate_Boundary(t *testing.T) {
	onTime, err := ToMinutes("09:30")
	require.NoError(t, err)
	late, err := ToMinutes("09:31")
	require.NoError(t, err)

	assert.False(t, IsLate(onTime))
	assert.True(t, IsLate(late))
	assert.False(t, IsLate(0))
}

func TestBucketOf(t *testing.T) {
	cases := []struct {
		minutes int
		want    dashboard.TimeBucket
	}{
		{0, dashboard.TimeBucketBefore0900},
		{539, dashboard.TimeBucketBefore0900},
		{540, dashboard.TimeBucket0900To0930},
		{569, dashboard.TimeBucket0900To0930},
		{570, dashboard.TimeBucket0930To1000},
		{599, dashboard.TimeBucket0930To1000},
		{600, dashboard.TimeBucketAfter1000},
		{1439, dashboard.TimeBucketAfter1000},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, BucketOf(c.minutes), "minutes=%d", c.minutes)
	}
}

func TestFormatMinutes(t *testing.T) {
	assert.Equal(t, "00:00", FormatMinutes(0))
	assert.Equal(t, "09:05", FormatMinutes(545))
	assert.Equal(t, "23:59", FormatMinutes(1439))
	assert.Equal(t, "00:00", FormatMinutes(-5))
}
