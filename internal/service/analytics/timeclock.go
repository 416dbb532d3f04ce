package analytics

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/validator"
)

// Minutes since midnight of the fixed clock boundaries
const (
	NineAM         = 9 * 60      // 540
	LateCutoff     = 9*60 + 30   // 570, 09:30
	TenAM          = 10 * 60     // 600
	minutesPerDay  = 24 * 60
	maxClockFields = 3
)

// ToMinutes converts an "HH:MM" clock string into minutes since midnight.
// "HH:MM:SS" is accepted as well; the seconds are validated and dropped.
func ToMinutes(clock string) (int, error) {
	parts := strings.Split(strings.TrimSpace(clock), ":")
	if len(parts) < 2 || len(parts) > maxClockFields {
		return 0, fmt.Errorf("%w: %q", attendance.ErrMalformedTime, clock)
	}

	fields := make([]int, len(parts))
	for i, part := range parts {
		if !validator.IsNumeric(part) || len(part) > 2 {
			return 0, fmt.Errorf("%w: %q", attendance.ErrMalformedTime, clock)
		}
		fields[i], _ = strconv.Atoi(part)
	}

	hours, minutes := fields[0], fields[1]
	if hours > 23 || minutes > 59 {
		return 0, fmt.Errorf("%w: %q out of range", attendance.ErrMalformedTime, clock)
	}
	if len(fields) == maxClockFields && fields[2] > 59 {
		return 0, fmt.Errorf("%w: %q out of range", attendance.ErrMalformedTime, clock)
	}
	return hours*60 + minutes, nil
}

// IsLate reports whether an arrival is strictly after 09:30. Exactly 09:30 is on time.
func IsLate(minutes int) bool {
	return minutes > LateCutoff
}

// BucketOf places an arrival in its [lower, upper) time-of-day bucket.
func BucketOf(minutes int) dashboard.TimeBucket {
	switch {
	case minutes < NineAM:
		return dashboard.TimeBucketBefore0900
	case minutes < LateCutoff:
		return dashboard.TimeBucket0900To0930
	case minutes < TenAM:
		return dashboard.TimeBucket0930To1000
	default:
		return dashboard.TimeBucketAfter1000
	}
}

// FormatMinutes renders minutes since midnight as zero-padded "HH:MM".
func FormatMinutes(minutes int) string {
	if minutes < 0 {
		minutes = 0
	}
	minutes %= minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
