package aircraft

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

const (
	key      = "kaos:aircraft:states"
	ttl      = 2 * time.Minute
	interval = 30 * time.Second
)

// Collector is the OpenSky ADS-B state vector collector, a single-key
// job.
type Collector struct {
	api API
}

// New creates an aircraft Collector.
func New(api API) *Collector { return &Collector{api: api} }

func (c *Collector) Name() string              { return "aircraft" }
func (c *Collector) Key() string               { return key }
func (c *Collector) TTL() time.Duration        { return ttl }
func (c *Collector) Interval() time.Duration   { return interval }
func (c *Collector) RetryAttempts() int        { return 2 }
func (c *Collector) RetryDelay() time.Duration { return time.Second }

func (c *Collector) Collect(ctx context.Context) ([]byte, error) {
	raw, err := c.api.FetchStates(ctx)
	if err != nil {
		return nil, err
	}
	points, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	env := model.NewEnvelope("aircraft", points, time.Now())
	return json.Marshal(env)
}
