package gdacs

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

const (
	key      = "kaos:gdacs:events"
	ttl      = 15 * time.Minute
	interval = 5 * time.Minute
)

// Collector is the GDACS collector, a single-key job.
type Collector struct {
	api API
}

// New creates a gdacs Collector.
func New(api API) *Collector { return &Collector{api: api} }

func (c *Collector) Name() string              { return "gdacs" }
func (c *Collector) Key() string               { return key }
func (c *Collector) TTL() time.Duration        { return ttl }
func (c *Collector) Interval() time.Duration   { return interval }
func (c *Collector) RetryAttempts() int        { return 2 }
func (c *Collector) RetryDelay() time.Duration { return time.Second }

func (c *Collector) Collect(ctx context.Context) ([]byte, error) {
	raw, err := c.api.FetchFeed(ctx)
	if err != nil {
		return nil, err
	}

	events, err := Parse(raw, time.Now())
	if err != nil {
		return nil, err
	}

	envelope := model.NewEnvelope("gdacs", events, time.Now())
	return json.Marshal(envelope)
}
