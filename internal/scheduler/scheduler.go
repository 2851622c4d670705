// Package scheduler implements registration of periodic and
// streaming collectors, a 1-second check loop that dispatches periodic
// jobs on their own interval, and a status snapshot for the health
// endpoint. Generalized from a fixed-set Kubernetes informer registry
// (which starts and stops one informer per resource kind) to N
// independently-intervaled periodic jobs plus a separate streaming
// set.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kaos-collector/kaos-collector/internal/collector"
)

type periodicEntry struct {
	name     string
	interval time.Duration
	run      func(ctx context.Context)

	mu        sync.Mutex
	isRunning bool
	lastRun   time.Time
}

// Scheduler holds the registered periodic and streaming collectors and
// drives their dispatch. Registration happens only before Start; after
// Start the registry is read-only, per the concurrency model.
type Scheduler struct {
	deps collector.Deps

	mu          sync.Mutex
	jobs        []*periodicEntry
	jobIndex    map[string]*periodicEntry
	streaming   []collector.StreamingCollector
	streamNames map[string]int

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
}

// New creates an empty Scheduler using deps for every dispatched run.
func New(deps collector.Deps) *Scheduler {
	return &Scheduler{
		deps:        deps,
		jobIndex:    make(map[string]*periodicEntry),
		streamNames: make(map[string]int),
	}
}

// Register adds or replaces a single-key periodic job.
func (s *Scheduler) Register(job collector.Job) {
	tracker := collector.NewTracker()
	s.register(job.Name(), job.Interval(), func(ctx context.Context) {
		collector.Run(ctx, s.deps, tracker, job)
	})
}

// RegisterMulti adds or replaces a multi-key periodic job.
func (s *Scheduler) RegisterMulti(job collector.MultiKeyJob) {
	tracker := collector.NewTracker()
	s.register(job.Name(), job.Interval(), func(ctx context.Context) {
		collector.RunMulti(ctx, s.deps, tracker, job)
	})
}

func (s *Scheduler) register(name string, interval time.Duration, run func(context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.jobIndex[name]; ok {
		existing.interval = interval
		existing.run = run
		return
	}

	entry := &periodicEntry{name: name, interval: interval, run: run}
	s.jobs = append(s.jobs, entry)
	s.jobIndex[name] = entry
}

// RegisterStreaming adds or replaces a streaming collector.
func (s *Scheduler) RegisterStreaming(sc collector.StreamingCollector) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if i, ok := s.streamNames[sc.Name()]; ok {
		s.streaming[i] = sc
		return
	}
	s.streaming = append(s.streaming, sc)
	s.streamNames[sc.Name()] = len(s.streaming) - 1
}

// Start launches every streaming collector, fires every periodic job
// once, and begins the 1-second check loop. Start does not return
// until every periodic job has begun (its run/last_run bookkeeping is
// set synchronously before the job's goroutine is spawned).
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	s.started = true
	streaming := append([]collector.StreamingCollector(nil), s.streaming...)
	jobs := append([]*periodicEntry(nil), s.jobs...)
	s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for _, sc := range streaming {
		if err := sc.Start(runCtx); err != nil {
			slog.Error("scheduler: streaming collector failed to start", "collector", sc.Name(), "error", err)
		}
	}

	for _, j := range jobs {
		s.dispatch(runCtx, j)
	}

	s.wg.Add(1)
	go s.checkLoop(runCtx)
}

// dispatch marks job as running and records the dispatch time, then
// runs it on its own goroutine. No-op if the job is already running.
func (s *Scheduler) dispatch(ctx context.Context, j *periodicEntry) {
	j.mu.Lock()
	if j.isRunning {
		j.mu.Unlock()
		slog.Debug("scheduler: skipping dispatch, job already running", "job", j.name)
		return
	}
	j.isRunning = true
	j.lastRun = time.Now()
	j.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		j.run(ctx)
		j.mu.Lock()
		j.isRunning = false
		j.mu.Unlock()
	}()
}

func (s *Scheduler) checkLoop(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	s.mu.Lock()
	jobs := append([]*periodicEntry(nil), s.jobs...)
	s.mu.Unlock()

	now := time.Now()
	for _, j := range jobs {
		j.mu.Lock()
		due := !j.isRunning && now.Sub(j.lastRun) >= j.interval
		j.mu.Unlock()
		if due {
			s.dispatch(ctx, j)
		}
	}
}

// Stop cancels the check loop and every in-flight periodic job's
// context, then stops every streaming collector. It does not wait for
// in-flight periodic jobs to finish; the caller applies its own
// shutdown deadline.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	streaming := append([]collector.StreamingCollector(nil), s.streaming...)
	s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	for _, sc := range streaming {
		sc.Stop()
	}
}

// Wait blocks until every in-flight periodic job and the check loop
// have exited, or ctx is done first — used by the supervisor to honor
// the hard shutdown deadline.
func (s *Scheduler) Wait(ctx context.Context) {
	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}

// JobStatus is one periodic job's status() entry.
type JobStatus struct {
	LastRun   time.Time     `json:"last_run"`
	IsRunning bool          `json:"is_running"`
	Interval  time.Duration `json:"interval"`
}

// Status is the scheduler's full status() snapshot, consumed by the
// health endpoint.
type Status struct {
	Running   bool                 `json:"running"`
	Jobs      map[string]JobStatus `json:"jobs"`
	Streaming []string             `json:"streaming"`
}

// Status returns a point-in-time snapshot of every registered job.
func (s *Scheduler) Status() Status {
	s.mu.Lock()
	jobs := append([]*periodicEntry(nil), s.jobs...)
	streaming := make([]string, len(s.streaming))
	for i, sc := range s.streaming {
		streaming[i] = sc.Name()
	}
	running := s.started
	s.mu.Unlock()

	out := Status{Running: running, Jobs: make(map[string]JobStatus, len(jobs)), Streaming: streaming}
	for _, j := range jobs {
		j.mu.Lock()
		out.Jobs[j.name] = JobStatus{LastRun: j.lastRun, IsRunning: j.isRunning, Interval: j.interval}
		j.mu.Unlock()
	}
	return out
}
