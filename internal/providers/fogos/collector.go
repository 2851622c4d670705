package fogos

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

const (
	key      = "kaos:fogos:active"
	ttl      = 5 * time.Minute
	interval = time.Minute
)

// Collector is the Fogos.pt collector, a single-key job.
type Collector struct {
	api API
}

// New creates a fogos Collector.
func New(api API) *Collector { return &Collector{api: api} }

func (c *Collector) Name() string              { return "fogos" }
func (c *Collector) Key() string               { return key }
func (c *Collector) TTL() time.Duration        { return ttl }
func (c *Collector) Interval() time.Duration   { return interval }
func (c *Collector) RetryAttempts() int        { return 2 }
func (c *Collector) RetryDelay() time.Duration { return time.Second }

// Collect fetches both Fogos.pt endpoints concurrently, merges them,
// and returns the envelope-wrapped record bytes.
func (c *Collector) Collect(ctx context.Context) ([]byte, error) {
	type fetchResult struct {
		body []byte
		err  error
	}
	activeCh := make(chan fetchResult, 1)
	recentCh := make(chan fetchResult, 1)

	go func() {
		b, err := c.api.FetchActive(ctx)
		activeCh <- fetchResult{b, err}
	}()
	go func() {
		b, err := c.api.FetchRecent(ctx)
		recentCh <- fetchResult{b, err}
	}()

	active := <-activeCh
	recent := <-recentCh
	if active.err != nil {
		return nil, fmt.Errorf("fogos: fetching active feed: %w", active.err)
	}
	if recent.err != nil {
		return nil, fmt.Errorf("fogos: fetching recent feed: %w", recent.err)
	}

	incidents, err := Merge(active.body, recent.body, time.Now())
	if err != nil {
		return nil, err
	}

	points := make([]model.Point, 0, len(incidents))
	for _, inc := range incidents {
		lat, errLat := strconv.ParseFloat(inc.Lat, 64)
		lon, errLon := strconv.ParseFloat(inc.Lng, 64)
		if errLat != nil || errLon != nil {
			continue
		}
		t, _ := time.Parse(time.RFC3339, inc.DateTime)
		points = append(points, model.Point{
			Lat: lat, Lon: lon, Time: t,
			Fields: map[string]any{"id": inc.ID, "location": inc.Location, "status": inc.Status},
		})
	}

	envelope := model.NewEnvelope("fogos", model.PointCollection{Points: points}, time.Now())
	return json.Marshal(envelope)
}
