package seismic

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/kaos-collector/kaos-collector/internal/collector"
	"github.com/kaos-collector/kaos-collector/pkg/model"
)

const ttl = 10 * time.Minute

// Collector is the USGS seismic multi-key collector: each configured
// feed is fetched independently and published under its own key, so
// one feed failing never blocks its siblings.
type Collector struct {
	api   API
	feeds []Feed
}

// New creates a seismic Collector over the given feeds (DefaultFeeds
// if feeds is nil).
func New(api API, feeds []Feed) *Collector {
	if feeds == nil {
		feeds = DefaultFeeds
	}
	return &Collector{api: api, feeds: feeds}
}

func (c *Collector) Name() string               { return "seismic" }
func (c *Collector) Interval() time.Duration    { return time.Minute }
func (c *Collector) RetryAttempts() int         { return 2 }
func (c *Collector) RetryDelay() time.Duration  { return time.Second }

// Collect fetches every configured feed and publishes each under
// kaos:seismic:<variant>. It only returns an error if every feed
// failed; a partial success still counts as an overall success.
func (c *Collector) Collect(ctx context.Context, putTo collector.PutToFunc) error {
	type result struct {
		variant string
		points  model.PointCollection
		err     error
	}

	results := make(chan result, len(c.feeds))
	for _, feed := range c.feeds {
		go func(f Feed) {
			raw, err := c.api.FetchFeed(ctx, f.URL)
			if err != nil {
				results <- result{variant: f.Variant, err: err}
				return
			}
			points, err := Parse(raw)
			results <- result{variant: f.Variant, points: points, err: err}
		}(feed)
	}

	successes := 0
	for range c.feeds {
		r := <-results
		if r.err != nil {
			slog.Warn("seismic: feed failed", "variant", r.variant, "error", r.err)
			continue
		}
		successes++

		envelope := model.NewEnvelope("seismic", r.points, time.Now())
		body, err := json.Marshal(envelope)
		if err != nil {
			slog.Warn("seismic: encoding feed failed", "variant", r.variant, "error", err)
			continue
		}
		if err := putTo(ctx, "kaos:seismic:"+r.variant, body, ttl); err != nil {
			slog.Warn("seismic: publish failed", "variant", r.variant, "error", err)
		}
	}

	if successes == 0 {
		return errAllFeedsFailed
	}
	return nil
}

var errAllFeedsFailed = seismicError("seismic: every feed failed")

type seismicError string

func (e seismicError) Error() string { return string(e) }
