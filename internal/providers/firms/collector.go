package firms

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

const (
	key      = "kaos:firms:detections"
	ttl      = 3 * time.Hour
	interval = time.Hour
)

// Collector is the NASA FIRMS active-fire collector, a single-key job.
type Collector struct {
	api API
}

// New creates a firms Collector.
func New(api API) *Collector { return &Collector{api: api} }

func (c *Collector) Name() string              { return "firms" }
func (c *Collector) Key() string               { return key }
func (c *Collector) TTL() time.Duration        { return ttl }
func (c *Collector) Interval() time.Duration   { return interval }
func (c *Collector) RetryAttempts() int        { return 2 }
func (c *Collector) RetryDelay() time.Duration { return time.Second }

func (c *Collector) Collect(ctx context.Context) ([]byte, error) {
	raw, err := c.api.FetchDetections(ctx)
	if err != nil {
		return nil, err
	}
	points, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	env := model.NewEnvelope("firms", points, time.Now())
	return json.Marshal(env)
}
