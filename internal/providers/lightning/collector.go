package lightning

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kaos-collector/kaos-collector/internal/agenterrors"
	"github.com/kaos-collector/kaos-collector/internal/collector"
	"github.com/kaos-collector/kaos-collector/pkg/model"
)

const (
	snapshotKey      = "kaos:lightning:global"
	persistInterval  = 10 * time.Second
	persistTTL       = 30 * time.Second
	evictionHorizon  = 30 * time.Minute
	evictionInterval = 1 * time.Minute
	reconnectDelay   = 10 * time.Second

	// maxPersisted bounds the snapshot's size; the eviction timer keeps
	// the working set itself within the age horizon, this is only a
	// backstop against an unusually bursty window.
	maxPersisted = 2000
)

// Collector is the lightning strike streaming collector.
type Collector struct {
	dialer Dialer
	deps   collector.Deps

	working  *collector.WorkingSet[model.Point]
	seq      atomic.Uint64
	errCount atomic.Int64

	mu   sync.Mutex
	conn Conn

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a lightning Collector using dialer to open the upstream
// WebSocket and deps to persist snapshots and report status.
func New(dialer Dialer, deps collector.Deps) *Collector {
	return &Collector{
		dialer:  dialer,
		deps:    deps,
		working: collector.NewWorkingSet[model.Point](),
	}
}

func (c *Collector) Name() string { return "lightning" }

// Start launches the read, persist, and eviction loops. It returns
// immediately; connection failures are handled by the read loop's own
// reconnect logic, not surfaced here.
func (c *Collector) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	c.wg.Add(3)
	go c.readLoop(runCtx)
	go c.persistLoop(runCtx)
	go c.evictLoop(runCtx)
	return nil
}

// Stop cancels every loop, closes any open socket to unblock a pending
// read, and waits for all three goroutines to exit. The persist loop
// performs one final flush against a fresh context before returning,
// so in-flight state is not lost to cancellation.
func (c *Collector) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.closeConn()
	c.wg.Wait()
}

func (c *Collector) readLoop(ctx context.Context) {
	defer c.wg.Done()
	for ctx.Err() == nil {
		conn, err := c.dialer.Dial(ctx)
		if err != nil {
			slog.Warn("lightning: dial failed", "error", err)
			c.reportDegraded(err)
			if !c.sleep(ctx, reconnectDelay) {
				return
			}
			continue
		}

		c.setConn(conn)
		c.reportConnected()
		c.readUntilClosed(ctx, conn)
		conn.Close()
		c.setConn(nil)

		if ctx.Err() != nil {
			return
		}
		if c.deps.Metrics != nil {
			c.deps.Metrics.StreamReconnectsTotal.WithLabelValues("lightning").Inc()
		}
		if !c.sleep(ctx, reconnectDelay) {
			return
		}
	}
}

func (c *Collector) readUntilClosed(ctx context.Context, conn Conn) {
	for ctx.Err() == nil {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			slog.Warn("lightning: read failed", "error", err)
			c.reportDegraded(err)
			return
		}

		strike, err := ParseStrike(raw)
		if err != nil {
			slog.Warn("lightning: decode failed", "error", err)
			continue
		}

		c.working.Set(c.nextKey(), strike)
		if c.deps.Metrics != nil {
			c.deps.Metrics.WorkingSetSize.WithLabelValues("lightning").Set(float64(c.working.Len()))
		}
	}
}

func (c *Collector) persistLoop(ctx context.Context) {
	defer c.wg.Done()
	ticker := time.NewTicker(persistInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.flush(context.Background())
			return
		case <-ticker.C:
			c.flush(ctx)
		}
	}
}

func (c *Collector) flush(ctx context.Context) {
	points := c.working.Values()
	sort.Slice(points, func(i, j int) bool { return points[i].Time.After(points[j].Time) })
	if len(points) > maxPersisted {
		points = points[:maxPersisted]
	}

	env := model.NewEnvelope("lightning", model.PointCollection{Points: points}, time.Now())
	body, err := json.Marshal(env)
	if err != nil {
		slog.Warn("lightning: encoding snapshot failed", "error", err)
		return
	}

	if err := c.deps.Store.Put(ctx, snapshotKey, body, persistTTL); err != nil {
		slog.Warn("lightning: persist failed", "error", err)
		c.reportDegraded(err)
		return
	}
	c.reportOK()
}

func (c *Collector) evictLoop(ctx context.Context) {
	defer c.wg.Done()
	ticker := time.NewTicker(evictionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			cutoff := time.Now().Add(-evictionHorizon)
			c.working.EvictBefore(cutoff, func(p model.Point) time.Time { return p.Time })
		}
	}
}

func (c *Collector) nextKey() string {
	n := c.seq.Add(1)
	return time.Now().UTC().Format(time.RFC3339Nano) + "-" + strconv.FormatUint(n, 10)
}

func (c *Collector) setConn(conn Conn) {
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
}

func (c *Collector) closeConn() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn != nil {
		c.conn.Close()
		c.conn = nil
	}
}

func (c *Collector) sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// reportConnected marks a fresh connection as healthy and resets the
// error streak, mirroring the periodic collectors' status staircase.
func (c *Collector) reportConnected() {
	c.errCount.Store(0)
	c.deps.Store.SetMeta(context.Background(), "lightning", model.CollectorMeta{
		Status:       model.StatusOK,
		LastRunMilli: time.Now().UnixMilli(),
	})
}

func (c *Collector) reportOK() {
	c.deps.Store.SetMeta(context.Background(), "lightning", model.CollectorMeta{
		Status:       model.StatusForErrorCount(int(c.errCount.Load())),
		LastRunMilli: time.Now().UnixMilli(),
		ErrorCount:   int(c.errCount.Load()),
	})
}

func (c *Collector) reportDegraded(err error) {
	n := c.errCount.Add(1)
	c.deps.Store.SetMeta(context.Background(), "lightning", model.CollectorMeta{
		Status:       model.StatusForErrorCount(int(n)),
		LastRunMilli: time.Now().UnixMilli(),
		ErrorCount:   int(n),
	})
	if c.deps.ErrorCollector != nil {
		c.deps.ErrorCollector.Report(agenterrors.CollectorError{
			Kind:      agenterrors.KindTransientNetwork,
			Message:   err.Error(),
			Collector: "lightning",
			Timestamp: time.Now().UnixMilli(),
			Err:       err,
		})
	}
}
