package airquality

import (
	"context"
	"encoding/json"
	"time"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

const (
	key      = "kaos:airquality:stations"
	ttl      = 30 * time.Minute
	interval = 15 * time.Minute
)

// Collector is the WAQI station AQI collector, a single-key job.
type Collector struct {
	api API
}

// New creates an airquality Collector.
func New(api API) *Collector { return &Collector{api: api} }

func (c *Collector) Name() string              { return "airquality" }
func (c *Collector) Key() string               { return key }
func (c *Collector) TTL() time.Duration        { return ttl }
func (c *Collector) Interval() time.Duration   { return interval }
func (c *Collector) RetryAttempts() int        { return 2 }
func (c *Collector) RetryDelay() time.Duration { return time.Second }

func (c *Collector) Collect(ctx context.Context) ([]byte, error) {
	raw, err := c.api.FetchStations(ctx)
	if err != nil {
		return nil, err
	}
	points, err := Parse(raw)
	if err != nil {
		return nil, err
	}
	env := model.NewEnvelope("airquality", points, time.Now())
	return json.Marshal(env)
}
