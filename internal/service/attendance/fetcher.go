package attendance

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/cmlabs-hris/attendance-dashboard-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/attendance-dashboard-go/internal/service/analytics"
)

// DefaultConcurrency bounds concurrent per-day queries of one window
const DefaultConcurrency = 7

// Fetcher loads and classifies the records of every date in a window
type Fetcher struct {
	store       attendance.Store
	concurrency int
	metrics     *metrics.Recorder
}

func NewFetcher(store attendance.Store, concurrency int, recorder *metrics.Recorder) *Fetcher {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}
	return &Fetcher{
		store:       store,
		concurrency: concurrency,
		metrics:     recorder,
	}
}

// FetchWindow returns one classified day per window date, in window order.
// A date whose query fails becomes an empty day flagged FetchFailed; only
// cancellation of ctx fails the whole window.
func (f *Fetcher) FetchWindow(ctx context.Context, classCode string, window analytics.Window) ([]analytics.Day, error) {
	days := make([]analytics.Day, len(window))

	var g errgroup.Group
	g.SetLimit(f.concurrency)

	for i, date := range window {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			records, err := f.store.GetByDate(ctx, classCode, date)
			if err != nil {
				if ctxErr := ctx.Err(); ctxErr != nil {
					return ctxErr
				}
				slog.Warn("Attendance fetch failed, treating day as empty",
					"class_code", classCode, "date", date, "error", err)
				f.metrics.DayFetchFailed(classCode)
				days[i] = analytics.FailedDay(date)
				return nil
			}

			day := analytics.ClassifyDay(date, records)
			if n := len(day.Anomalies); n > 0 {
				slog.Warn("Malformed check-in times",
					"class_code", classCode, "date", date, "count", n)
				f.metrics.MalformedRecords(classCode, n)
			}
			days[i] = day
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return days, nil
}
