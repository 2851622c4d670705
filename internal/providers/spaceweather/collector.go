package spaceweather

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

const (
	key      = "kaos:spaceweather:current"
	ttl      = 15 * time.Minute
	interval = 5 * time.Minute
)

// Collector is the space-weather collector, a single-key job.
type Collector struct {
	api API
}

// New creates a spaceweather Collector.
func New(api API) *Collector { return &Collector{api: api} }

func (c *Collector) Name() string              { return "spaceweather" }
func (c *Collector) Key() string               { return key }
func (c *Collector) TTL() time.Duration        { return ttl }
func (c *Collector) Interval() time.Duration   { return interval }
func (c *Collector) RetryAttempts() int        { return 1 }
func (c *Collector) RetryDelay() time.Duration { return time.Second }

// Collect fans out to all three endpoints concurrently with
// allSettled semantics: a fetch failure on one component just leaves
// that component out of the record rather than failing the run,
// unless every component failed.
func (c *Collector) Collect(ctx context.Context) ([]byte, error) {
	kpCh := make(chan component, 1)
	f107Ch := make(chan component, 1)
	xrayCh := make(chan component, 1)

	go func() { b, err := c.api.FetchKpIndex(ctx); kpCh <- component{b, err} }()
	go func() { b, err := c.api.FetchF107(ctx); f107Ch <- component{b, err} }()
	go func() { b, err := c.api.FetchXRay(ctx); xrayCh <- component{b, err} }()

	kp, f107, xray := <-kpCh, <-f107Ch, <-xrayCh

	if kp.err != nil {
		slog.Warn("spaceweather: kp index fetch failed", "error", kp.err)
	}
	if f107.err != nil {
		slog.Warn("spaceweather: f10.7 flux fetch failed", "error", f107.err)
	}
	if xray.err != nil {
		slog.Warn("spaceweather: x-ray fetch failed", "error", xray.err)
	}
	if kp.err != nil && f107.err != nil && xray.err != nil {
		return nil, errAllComponentsFailed
	}

	record := Assemble(kp.bodyOrNil(), f107.bodyOrNil(), xray.bodyOrNil())
	envelope := model.NewEnvelope("spaceweather", record, time.Now())
	return json.Marshal(envelope)
}

// component carries the result of fetching one of the three SWPC
// endpoints, so all three goroutines can report to the same shape.
type component struct {
	body []byte
	err  error
}

func (c component) bodyOrNil() []byte {
	if c.err != nil {
		return nil
	}
	return c.body
}

var errAllComponentsFailed = spaceWeatherError("spaceweather: all three upstream components failed")

type spaceWeatherError string

func (e spaceWeatherError) Error() string { return string(e) }
