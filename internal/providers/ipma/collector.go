package ipma

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

const (
	key      = "kaos:ipma:warnings"
	ttl      = 30 * time.Minute
	interval = 10 * time.Minute
)

// Collector is the IPMA warnings collector, a single-key job.
type Collector struct {
	api API
}

// New creates an ipma Collector.
func New(api API) *Collector { return &Collector{api: api} }

func (c *Collector) Name() string              { return "ipma" }
func (c *Collector) Key() string               { return key }
func (c *Collector) TTL() time.Duration        { return ttl }
func (c *Collector) Interval() time.Duration   { return interval }
func (c *Collector) RetryAttempts() int        { return 2 }
func (c *Collector) RetryDelay() time.Duration { return time.Second }

func (c *Collector) Collect(ctx context.Context) ([]byte, error) {
	raw, err := c.api.FetchWarnings(ctx)
	if err != nil {
		return nil, err
	}
	areas, err := Parse(raw, time.Now())
	if err != nil {
		return nil, err
	}
	envelope := model.NewEnvelope("ipma", areas, time.Now())
	return json.Marshal(envelope)
}
