package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kaos-collector/kaos-collector/internal/collector"
	"github.com/kaos-collector/kaos-collector/pkg/model"
)

type fakeStore struct {
	mu    sync.Mutex
	metas map[string]model.CollectorMeta
}

func newFakeStore() *fakeStore {
	return &fakeStore{metas: make(map[string]model.CollectorMeta)}
}

func (f *fakeStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return nil
}

func (f *fakeStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (f *fakeStore) SetMeta(ctx context.Context, name string, meta model.CollectorMeta) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metas[name] = meta
}

func (f *fakeStore) Ping(ctx context.Context) bool { return true }

func (f *fakeStore) Keys(ctx context.Context, prefix string) ([]string, error) { return nil, nil }
func (f *fakeStore) Close() error                                              { return nil }

type countingJob struct {
	name     string
	interval time.Duration
	delay    time.Duration
	runs     atomic.Int32
}

func (j *countingJob) Name() string              { return j.name }
func (j *countingJob) Key() string                { return "kaos:" + j.name + ":latest" }
func (j *countingJob) TTL() time.Duration         { return time.Minute }
func (j *countingJob) Interval() time.Duration    { return j.interval }
func (j *countingJob) RetryAttempts() int         { return 0 }
func (j *countingJob) RetryDelay() time.Duration  { return time.Millisecond }
func (j *countingJob) Collect(ctx context.Context) ([]byte, error) {
	j.runs.Add(1)
	if j.delay > 0 {
		select {
		case <-time.After(j.delay):
		case <-ctx.Done():
		}
	}
	return []byte("v"), nil
}

type fakeStreaming struct {
	name      string
	started   atomic.Bool
	stopped   atomic.Bool
	startErr  error
}

func (s *fakeStreaming) Name() string { return s.name }
func (s *fakeStreaming) Start(ctx context.Context) error {
	s.started.Store(true)
	return s.startErr
}
func (s *fakeStreaming) Stop() { s.stopped.Store(true) }

func testScheduler() *Scheduler {
	return New(collector.Deps{Store: newFakeStore()})
}

func TestScheduler_StartFiresEveryJobOnce(t *testing.T) {
	s := testScheduler()
	job := &countingJob{name: "seismic", interval: time.Hour}
	s.Register(job)

	s.Start(context.Background())
	defer s.Stop()

	deadline := time.Now().Add(time.Second)
	for job.runs.Load() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if job.runs.Load() != 1 {
		t.Fatalf("expected exactly 1 run right after Start, got %d", job.runs.Load())
	}
}

func TestScheduler_CheckLoopRedispatchesOnInterval(t *testing.T) {
	s := testScheduler()
	job := &countingJob{name: "fogos", interval: 1100 * time.Millisecond}
	s.Register(job)

	s.Start(context.Background())
	defer s.Stop()

	time.Sleep(2500 * time.Millisecond)

	if got := job.runs.Load(); got < 2 {
		t.Fatalf("expected at least 2 runs within 2.5s at a 1.1s interval, got %d", got)
	}
}

func TestScheduler_SingleFlightSkipsOverlap(t *testing.T) {
	s := testScheduler()
	job := &countingJob{name: "slow", interval: 500 * time.Millisecond, delay: 2 * time.Second}
	s.Register(job)

	s.Start(context.Background())
	defer s.Stop()

	time.Sleep(2200 * time.Millisecond)

	if got := job.runs.Load(); got != 1 {
		t.Fatalf("expected the single-flight guard to allow only 1 concurrent run within 2.2s of a 2s job, got %d", got)
	}
}

func TestScheduler_ReRegisterReplacesEntry(t *testing.T) {
	s := testScheduler()
	first := &countingJob{name: "gdacs", interval: time.Hour}
	s.Register(first)

	second := &countingJob{name: "gdacs", interval: time.Minute}
	s.Register(second)

	status := s.Status()
	if len(status.Jobs) != 1 {
		t.Fatalf("expected re-registration to replace, not duplicate, got %d jobs", len(status.Jobs))
	}
	if status.Jobs["gdacs"].Interval != time.Minute {
		t.Fatalf("expected replaced interval to take effect, got %s", status.Jobs["gdacs"].Interval)
	}
}

func TestScheduler_StreamingStartFailureIsNotFatal(t *testing.T) {
	s := testScheduler()
	sc := &fakeStreaming{name: "lightning", startErr: errAlways}
	s.RegisterStreaming(sc)

	s.Start(context.Background())
	defer s.Stop()

	if !sc.started.Load() {
		t.Fatal("expected Start to be called despite the registered error")
	}
}

func TestScheduler_StopStopsStreaming(t *testing.T) {
	s := testScheduler()
	sc := &fakeStreaming{name: "aprs"}
	s.RegisterStreaming(sc)

	s.Start(context.Background())
	s.Stop()

	if !sc.stopped.Load() {
		t.Fatal("expected Stop to be propagated to the streaming collector")
	}
}

func TestScheduler_Status(t *testing.T) {
	s := testScheduler()
	s.Register(&countingJob{name: "seismic", interval: time.Minute})
	s.RegisterStreaming(&fakeStreaming{name: "lightning"})

	status := s.Status()
	if len(status.Streaming) != 1 || status.Streaming[0] != "lightning" {
		t.Fatalf("expected streaming collector listed in status, got %v", status.Streaming)
	}
	if _, ok := status.Jobs["seismic"]; !ok {
		t.Fatal("expected periodic job listed in status")
	}
}

var errAlways = &startError{}

type startError struct{}

func (*startError) Error() string { return "cannot start" }
