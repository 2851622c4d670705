// Package collector defines the collector-base contract: the
// periodic/multi-key/streaming job shapes and the run() lifecycle
// every periodic collector shares. The scheduler owns dispatch and
// the single-flight/last_run bookkeeping; Run here only performs one
// collection attempt end to end: retry, publish, meta.
package collector

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/kaos-collector/kaos-collector/internal/agenterrors"
	"github.com/kaos-collector/kaos-collector/internal/metrics"
	"github.com/kaos-collector/kaos-collector/internal/storeclient"
	"github.com/kaos-collector/kaos-collector/pkg/model"
)

// Job is a single-key periodic collector: one collect() call produces
// one record published under one key.
type Job interface {
	Name() string
	Key() string
	TTL() time.Duration
	Interval() time.Duration
	RetryAttempts() int
	RetryDelay() time.Duration
	Collect(ctx context.Context) ([]byte, error)
}

// PutToFunc publishes one of a MultiKeyJob's several related keys.
type PutToFunc func(ctx context.Context, key string, value []byte, ttl time.Duration) error

// MultiKeyJob is a periodic collector whose single collect() pass
// publishes several related keys (the GFS collector's seven
// sub-collections). Collect only returns an error when the entire
// pass fails (e.g. the upstream fetch itself failed); a sub-publish
// failure is isolated and never propagated here.
type MultiKeyJob interface {
	Name() string
	Interval() time.Duration
	RetryAttempts() int
	RetryDelay() time.Duration
	Collect(ctx context.Context, putTo PutToFunc) error
}

// StreamingCollector is a long-lived collector with its own internal
// timers (lightning, APRS-IS). Start launches its background
// goroutine(s); Stop cancels them and blocks until they exit.
type StreamingCollector interface {
	Name() string
	Start(ctx context.Context) error
	Stop()
}

// Tracker holds the consecutive-error count the meta status staircase
// is derived from. Each
// registered job owns exactly one Tracker.
type Tracker struct {
	consecutiveErrors int
}

// NewTracker creates a zeroed Tracker for a freshly registered job.
func NewTracker() *Tracker { return &Tracker{} }

func (t *Tracker) recordSuccess() { t.consecutiveErrors = 0 }

func (t *Tracker) recordFailure() int {
	t.consecutiveErrors++
	return t.consecutiveErrors
}

// ConsecutiveErrors returns the current streak, for status reporting.
func (t *Tracker) ConsecutiveErrors() int { return t.consecutiveErrors }

// Deps bundles the shared collaborators every Run call publishes
// through and reports to.
type Deps struct {
	Store          storeclient.Store
	Metrics        *metrics.Metrics
	ErrorCollector *agenterrors.ErrorCollector
}

// Run executes one collect-with-retry pass for a single-key job and
// publishes the outcome (the scheduler handles marking the job
// running and clearing that flag before/after calling Run).
func Run(ctx context.Context, deps Deps, tracker *Tracker, job Job) {
	start := time.Now()

	record, err := collectWithRetry(ctx, job.RetryAttempts(), job.RetryDelay(), job.Collect)
	if err != nil {
		reportFailure(ctx, deps, tracker, job.Name(), err)
		observeRun(deps, job.Name(), start, "failure")
		return
	}

	if err := deps.Store.Put(ctx, job.Key(), record, job.TTL()); err != nil {
		// A store error on put fails the run.
		reportFailure(ctx, deps, tracker, job.Name(), err)
		observeRun(deps, job.Name(), start, "failure")
		return
	}

	reportSuccess(ctx, deps, tracker, job.Name())
	observeRun(deps, job.Name(), start, "success")
}

// RunMulti executes one collect-with-retry pass for a multi-key job.
// putTo wraps deps.Store.Put so each sub-publish failure is logged and
// counted independently without aborting its siblings or the overall
// run's success/failure classification.
func RunMulti(ctx context.Context, deps Deps, tracker *Tracker, job MultiKeyJob) {
	start := time.Now()

	putTo := func(ctx context.Context, key string, value []byte, ttl time.Duration) error {
		if err := deps.Store.Put(ctx, key, value, ttl); err != nil {
			slog.Warn("collector: sub-publish failed", "collector", job.Name(), "key", key, "error", err)
			if deps.ErrorCollector != nil {
				deps.ErrorCollector.Report(agenterrors.CollectorError{
					Kind:      agenterrors.KindStoreError,
					Message:   err.Error(),
					Collector: job.Name(),
					Timestamp: time.Now().UnixMilli(),
					Err:       err,
				})
			}
			return err
		}
		return nil
	}

	collect := func(ctx context.Context) ([]byte, error) {
		return nil, job.Collect(ctx, putTo)
	}

	_, err := collectWithRetry(ctx, job.RetryAttempts(), job.RetryDelay(), collect)
	if err != nil {
		reportFailure(ctx, deps, tracker, job.Name(), err)
		observeRun(deps, job.Name(), start, "failure")
		return
	}

	reportSuccess(ctx, deps, tracker, job.Name())
	observeRun(deps, job.Name(), start, "success")
}

// collectWithRetry calls collect up to attempts+1 times, doubling delay
// after each failure starting at retryDelay, aborting early if ctx is
// cancelled.
func collectWithRetry(ctx context.Context, attempts int, retryDelay time.Duration, collect func(context.Context) ([]byte, error)) ([]byte, error) {
	maxAttempts := attempts + 1
	delay := retryDelay

	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			t := time.NewTimer(delay)
			select {
			case <-t.C:
			case <-ctx.Done():
				t.Stop()
				return nil, ctx.Err()
			}
			delay *= 2
		}

		record, err := collect(ctx)
		if err == nil {
			return record, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
	}
	return nil, lastErr
}

func reportFailure(ctx context.Context, deps Deps, tracker *Tracker, name string, err error) {
	count := tracker.recordFailure()
	status := model.StatusForErrorCount(count)

	slog.Warn("collector: run failed", "collector", name, "consecutive_errors", count, "status", status, "error", err)

	kind := agenterrors.KindTransientNetwork
	var ce *agenterrors.CollectorError
	if errors.As(err, &ce) {
		kind = ce.Kind
	}
	if deps.ErrorCollector != nil && kind != agenterrors.KindCancelled {
		deps.ErrorCollector.Report(agenterrors.CollectorError{
			Kind:      kind,
			Message:   err.Error(),
			Collector: name,
			Timestamp: time.Now().UnixMilli(),
			Err:       err,
		})
	}
	if deps.Metrics != nil {
		deps.Metrics.CollectorErrorTotal.WithLabelValues(name, string(kind)).Inc()
		deps.Metrics.CollectorStatus.WithLabelValues(name, string(status)).Set(1)
	}

	deps.Store.SetMeta(ctx, name, model.CollectorMeta{
		Status:       status,
		LastRunMilli: time.Now().UnixMilli(),
		ErrorCount:   count,
	})
}

func reportSuccess(ctx context.Context, deps Deps, tracker *Tracker, name string) {
	tracker.recordSuccess()

	if deps.Metrics != nil {
		deps.Metrics.CollectorStatus.WithLabelValues(name, string(model.StatusOK)).Set(1)
	}

	deps.Store.SetMeta(ctx, name, model.CollectorMeta{
		Status:       model.StatusOK,
		LastRunMilli: time.Now().UnixMilli(),
		ErrorCount:   0,
	})
}

func observeRun(deps Deps, name string, start time.Time, outcome string) {
	if deps.Metrics == nil {
		return
	}
	deps.Metrics.CollectorRunDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	deps.Metrics.CollectorRunTotal.WithLabelValues(name, outcome).Inc()
	deps.Metrics.CollectorLastRun.WithLabelValues(name).Set(float64(time.Now().Unix()))
}
