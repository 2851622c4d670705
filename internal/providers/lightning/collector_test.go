package lightning

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/kaos-collector/kaos-collector/internal/collector"
	"github.com/kaos-collector/kaos-collector/pkg/model"
)

type fakeStore struct {
	mu    sync.Mutex
	puts  map[string][]byte
	metas map[string]model.CollectorMeta
}

func newFakeStore() *fakeStore {
	return &fakeStore{puts: make(map[string][]byte), metas: make(map[string]model.CollectorMeta)}
}

func (f *fakeStore) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.puts[key] = value
	return nil
}
func (f *fakeStore) Get(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, nil }
func (f *fakeStore) SetMeta(ctx context.Context, name string, meta model.CollectorMeta) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.metas[name] = meta
}
func (f *fakeStore) Ping(ctx context.Context) bool                            { return true }
func (f *fakeStore) Keys(ctx context.Context, prefix string) ([]string, error) { return nil, nil }
func (f *fakeStore) Close() error                                              { return nil }

func (f *fakeStore) snapshot(key string) (model.PointCollection, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	raw, ok := f.puts[key]
	if !ok {
		return model.PointCollection{}, false
	}
	var env struct {
		Payload model.PointCollection `json:"payload"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		return model.PointCollection{}, false
	}
	return env.Payload, true
}

// fakeConn emits a fixed list of frames then blocks until closed.
type fakeConn struct {
	frames [][]byte
	idx    int
	mu     sync.Mutex
	closed chan struct{}
}

func newFakeConn(frames [][]byte) *fakeConn {
	return &fakeConn{frames: frames, closed: make(chan struct{})}
}

func (c *fakeConn) ReadMessage() (int, []byte, error) {
	c.mu.Lock()
	if c.idx < len(c.frames) {
		f := c.frames[c.idx]
		c.idx++
		c.mu.Unlock()
		return 1, f, nil
	}
	c.mu.Unlock()
	<-c.closed
	return 0, nil, errors.New("fakeConn: closed")
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	select {
	case <-c.closed:
	default:
		close(c.closed)
	}
	return nil
}

type fakeDialer struct {
	conn *fakeConn
}

func (d *fakeDialer) Dial(ctx context.Context) (Conn, error) { return d.conn, nil }

func TestCollector_PersistsReceivedStrikesAndReportsOK(t *testing.T) {
	conn := newFakeConn([][]byte{
		[]byte(`{"lat":10,"lon":20,"time_ms":1000}`),
		[]byte(`{"lat":11,"lon":21,"time_ms":2000}`),
	})
	store := newFakeStore()
	c := New(&fakeDialer{conn: conn}, collector.Deps{Store: store})

	// Give the read loop a moment to drain both frames before flushing
	// directly, bypassing the 10s persist timer.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := c.Start(ctx); err != nil {
		t.Fatalf("unexpected Start error: %v", err)
	}
	waitForWorkingSetLen(t, c, 2)

	c.flush(context.Background())

	points, ok := store.snapshot(snapshotKey)
	if !ok {
		t.Fatalf("expected %s to be published", snapshotKey)
	}
	if len(points.Points) != 2 {
		t.Fatalf("expected 2 points, got %d", len(points.Points))
	}

	store.mu.Lock()
	meta := store.metas["lightning"]
	store.mu.Unlock()
	if meta.Status != model.StatusOK {
		t.Errorf("expected lightning meta status %q after a successful flush, got %q", model.StatusOK, meta.Status)
	}

	c.Stop()
}

func TestCollector_EvictsStrikesOlderThanHorizon(t *testing.T) {
	store := newFakeStore()
	c := New(&fakeDialer{conn: newFakeConn(nil)}, collector.Deps{Store: store})

	old := model.Point{Lat: 1, Lon: 1, Time: time.Now().Add(-evictionHorizon - time.Minute)}
	fresh := model.Point{Lat: 2, Lon: 2, Time: time.Now()}
	c.working.Set("old", old)
	c.working.Set("fresh", fresh)

	cutoff := time.Now().Add(-evictionHorizon)
	removed := c.working.EvictBefore(cutoff, func(p model.Point) time.Time { return p.Time })
	if removed != 1 {
		t.Fatalf("expected 1 eviction, got %d", removed)
	}
	if c.working.Len() != 1 {
		t.Fatalf("expected 1 remaining point, got %d", c.working.Len())
	}
}

func waitForWorkingSetLen(t *testing.T, c *Collector, n int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if c.working.Len() >= n {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for working set to reach length %d, got %d", n, c.working.Len())
}
