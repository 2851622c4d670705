package aprs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kaos-collector/kaos-collector/internal/agenterrors"
	"github.com/kaos-collector/kaos-collector/internal/collector"
	"github.com/kaos-collector/kaos-collector/pkg/model"
)

const (
	snapshotKey      = "kaos:aprs:stations"
	persistInterval  = 30 * time.Second
	persistTTL       = 90 * time.Second
	evictionHorizon  = time.Hour
	evictionInterval = 5 * time.Minute
	reconnectDelay   = 10 * time.Second
	maxPersisted     = 5000

	// filter centers the server-side range filter at 30N 0E, 10000 km
	// radius, matching the fleet-wide default geographic scope.
	filter = "r/30/0/10000"
)

// Collector is the APRS-IS TCP streaming collector.
type Collector struct {
	dialer   Dialer
	deps     collector.Deps
	callsign string
	client   string
	lookup   LookupAPI
	seed     []string

	working  *collector.WorkingSet[model.Point]
	errCount atomic.Int64

	mu   sync.Mutex
	conn Conn

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates an aprs Collector. lookup and seed may be nil/empty to
// disable the optional aprs.fi startup seeding.
func New(dialer Dialer, deps collector.Deps, callsign, client string, lookup LookupAPI, seed []string) *Collector {
	return &Collector{
		dialer:   dialer,
		deps:     deps,
		callsign: callsign,
		client:   client,
		lookup:   lookup,
		seed:     seed,
		working:  collector.NewWorkingSet[model.Point](),
	}
}

func (c *Collector) Name() string { return "aprs" }

// Start launches the read, persist, and eviction loops, and (if a
// lookup API and watchlist were configured) seeds those callsigns'
// last-known positions before the stream itself has heard from them.
func (c *Collector) Start(ctx context.Context) error {
	runCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel

	if c.lookup != nil && len(c.seed) > 0 {
		c.seedWatchlist(runCtx)
	}

	c.wg.Add(3)
	go c.readLoop(runCtx)
	go c.persistLoop(runCtx)
	go c.evictLoop(runCtx)
	return nil
}

// Stop cancels every loop, closes any open socket, and waits for all
// three goroutines to exit, draining one final flush in the process.
func (c *Collector) Stop() {
	if c.cancel != nil {
		c.cancel()
	}
	c.closeConn()
	c.wg.Wait()
}

func (c *Collector) seedWatchlist(ctx context.Context) {
	var wg sync.WaitGroup
	for _, callsign := range c.seed {
		wg.Add(1)
		go func(callsign string) {
			defer wg.Done()
			point, err := c.lookup.Lookup(ctx, callsign)
			if err != nil {
				slog.Warn("aprs: watchlist lookup failed", "callsign", callsign, "error", err)
				return
			}
			c.working.Set(callsign, point)
		}(callsign)
	}
	wg.Wait()
}

func (c *Collector) readLoop(ctx context.Context) {
	defer c.wg.Done()
	for ctx.Err() == nil {
		conn, err := c.dialer.Dial(ctx)
		if err != nil {
			slog.Warn("aprs: dial failed", "error", err)
			c.reportDegraded(err)
			if !c.sleep(ctx, reconnectDelay) {
				return
			}
			continue
		}

		if err := conn.WriteLine(c.loginLine()); err != nil {
			slog.Warn("aprs: login failed", "error", err)
			conn.Close()
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
			c.deps.Metrics.StreamReconnectsTotal.WithLabelValues("aprs").Inc()
		}
		if !c.sleep(ctx, reconnectDelay) {
			return
		}
	}
}

func (c *Collector) loginLine() string {
	return fmt.Sprintf("user %s pass -1 vers %s filter %s", c.callsign, c.client, filter)
}

func (c *Collector) readUntilClosed(ctx context.Context, conn Conn) {
	for ctx.Err() == nil {
		line, err := conn.ReadLine()
		if err != nil {
			slog.Warn("aprs: read failed", "error", err)
			c.reportDegraded(err)
			return
		}

		callsign, point, ok, err := ParsePosition(line, time.Now())
		if err != nil {
			slog.Warn("aprs: decode failed", "error", err)
			continue
		}
		if !ok {
			continue
		}

		c.working.Set(callsign, point)
		if c.deps.Metrics != nil {
			c.deps.Metrics.WorkingSetSize.WithLabelValues("aprs").Set(float64(c.working.Len()))
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

	env := model.NewEnvelope("aprs", model.PointCollection{Points: points}, time.Now())
	body, err := json.Marshal(env)
	if err != nil {
		slog.Warn("aprs: encoding snapshot failed", "error", err)
		return
	}

	if err := c.deps.Store.Put(ctx, snapshotKey, body, persistTTL); err != nil {
		slog.Warn("aprs: persist failed", "error", err)
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

func (c *Collector) reportConnected() {
	c.errCount.Store(0)
	c.deps.Store.SetMeta(context.Background(), "aprs", model.CollectorMeta{
		Status:       model.StatusOK,
		LastRunMilli: time.Now().UnixMilli(),
	})
}

func (c *Collector) reportOK() {
	n := int(c.errCount.Load())
	c.deps.Store.SetMeta(context.Background(), "aprs", model.CollectorMeta{
		Status:       model.StatusForErrorCount(n),
		LastRunMilli: time.Now().UnixMilli(),
		ErrorCount:   n,
	})
}

func (c *Collector) reportDegraded(err error) {
	n := int(c.errCount.Add(1))
	c.deps.Store.SetMeta(context.Background(), "aprs", model.CollectorMeta{
		Status:       model.StatusForErrorCount(n),
		LastRunMilli: time.Now().UnixMilli(),
		ErrorCount:   n,
	})
	if c.deps.ErrorCollector != nil {
		c.deps.ErrorCollector.Report(agenterrors.CollectorError{
			Kind:      agenterrors.KindTransientNetwork,
			Message:   err.Error(),
			Collector: "aprs",
			Timestamp: time.Now().UnixMilli(),
			Err:       err,
		})
	}
}
