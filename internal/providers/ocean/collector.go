package ocean

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

const (
	key      = "kaos:ocean:currents"
	ttl      = 6 * time.Hour
	interval = 3 * time.Hour
)

// Collector is the surface ocean current collector, a single-key job
// publishing a model.VectorField.
type Collector struct {
	api API
}

// New creates an ocean Collector.
func New(api API) *Collector { return &Collector{api: api} }

func (c *Collector) Name() string              { return "ocean" }
func (c *Collector) Key() string               { return key }
func (c *Collector) TTL() time.Duration        { return ttl }
func (c *Collector) Interval() time.Duration   { return interval }
func (c *Collector) RetryAttempts() int        { return 2 }
func (c *Collector) RetryDelay() time.Duration { return time.Second }

func (c *Collector) Collect(ctx context.Context) ([]byte, error) {
	raw, err := c.api.FetchCurrents(ctx)
	if err != nil {
		return nil, err
	}
	field, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	env := model.NewEnvelope("ocean", field, time.Now())
	return json.Marshal(env)
}
