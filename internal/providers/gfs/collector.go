package gfs

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/kaos-collector/kaos-collector/internal/collector"
	"github.com/kaos-collector/kaos-collector/internal/providers/gfs/grib"
	"github.com/kaos-collector/kaos-collector/pkg/model"
)

const ttl = 6 * time.Hour

// Collector is the GFS multi-key collector: each of the seven
// sub-collections (five scalar grids, one wind vector, one derived UV
// index) is fetched and published independently, so one field failing
// never blocks its siblings.
type Collector struct {
	api API
}

// New creates a gfs Collector.
func New(api API) *Collector { return &Collector{api: api} }

func (c *Collector) Name() string              { return "gfs" }
func (c *Collector) Interval() time.Duration   { return 3 * time.Hour }
func (c *Collector) RetryAttempts() int        { return 1 }
func (c *Collector) RetryDelay() time.Duration { return 5 * time.Second }

// Collect fans the scalar sub-collections and the wind vector out to
// independent concurrent fetches, decodes each GRIB2 response, and
// publishes under kaos:gfs:<key>. The UV index is derived locally,
// rather than fetched, from the grid header of whichever
// sub-collection (scalar or wind) is decoded first.
// Collect only returns an error when every sub-collection failed.
func (c *Collector) Collect(ctx context.Context, putTo collector.PutToFunc) error {
	cycle := LatestCycle(time.Now())

	type fetchResult struct {
		key      string
		messages []grib.Message
		err      error
	}

	jobs := append([]subCollection{}, subCollections...)
	windJob := windUSubCollection

	results := make(chan fetchResult, len(jobs)+1)
	for _, sc := range jobs {
		go func(sc subCollection) {
			raw, err := c.api.FetchFilter(ctx, cycle, sc.forecastHour, sc.varParams, sc.levParams)
			if err != nil {
				results <- fetchResult{key: sc.key, err: err}
				return
			}
			messages, decodeErrs := grib.DecodeMessages(raw)
			for _, e := range decodeErrs {
				slog.Warn("gfs: grib decode error", "subcollection", sc.key, "error", e)
			}
			results <- fetchResult{key: sc.key, messages: messages}
		}(sc)
	}
	go func() {
		raw, err := c.api.FetchFilter(ctx, cycle, windJob.forecastHour, windJob.varParams, windJob.levParams)
		if err != nil {
			results <- fetchResult{key: "wind", err: err}
			return
		}
		messages, decodeErrs := grib.DecodeMessages(raw)
		for _, e := range decodeErrs {
			slog.Warn("gfs: grib decode error", "subcollection", "wind", "error", e)
		}
		results <- fetchResult{key: "wind", messages: messages}
	}()

	successes := 0
	var uvHeader *model.GridHeader

	for i := 0; i < len(jobs)+1; i++ {
		r := <-results
		if r.err != nil {
			slog.Warn("gfs: fetch failed", "subcollection", r.key, "error", r.err)
			continue
		}

		if r.key == "wind" {
			if c.publishWind(ctx, putTo, r.messages, &uvHeader) {
				successes++
			}
			continue
		}

		sc := scByKey(r.key)
		msg, ok := findMessage(r.messages, sc)
		if !ok {
			slog.Warn("gfs: message not found for subcollection", "subcollection", sc.key)
			continue
		}
		grid := toGrid(msg, sc)
		if uvHeader == nil {
			h := grid.Header
			uvHeader = &h
		}
		if c.publish(ctx, putTo, sc.key, grid) {
			successes++
		}
	}

	if uvHeader != nil {
		uv := DeriveUVIndex(*uvHeader, time.Now())
		if c.publish(ctx, putTo, "uv_index", uv) {
			successes++
		}
	}

	if successes == 0 {
		return errAllSubCollectionsFailed
	}
	return nil
}

func (c *Collector) publishWind(ctx context.Context, putTo collector.PutToFunc, messages []grib.Message, uvHeader **model.GridHeader) bool {
	uMsg, uOK := findMessage(messages, windUSubCollection)
	vMsg, vOK := findMessage(messages, windVSubCollection)
	if !uOK || !vOK {
		slog.Warn("gfs: wind u/v message not found")
		return false
	}
	field := model.VectorField{
		U: toGrid(uMsg, windUSubCollection),
		V: toGrid(vMsg, windVSubCollection),
	}
	if *uvHeader == nil {
		h := field.U.Header
		*uvHeader = &h
	}
	return c.publish(ctx, putTo, "wind", field)
}

func (c *Collector) publish(ctx context.Context, putTo collector.PutToFunc, key string, payload any) bool {
	env := model.NewEnvelope("gfs", payload, time.Now())
	body, err := json.Marshal(env)
	if err != nil {
		slog.Warn("gfs: encoding subcollection failed", "subcollection", key, "error", err)
		return false
	}
	if err := putTo(ctx, "kaos:gfs:"+key, body, ttl); err != nil {
		slog.Warn("gfs: publish failed", "subcollection", key, "error", err)
		return false
	}
	return true
}

func scByKey(key string) subCollection {
	for _, sc := range subCollections {
		if sc.key == key {
			return sc
		}
	}
	return subCollection{}
}

var errAllSubCollectionsFailed = gfsError("gfs: every sub-collection failed")

type gfsError string

func (e gfsError) Error() string { return string(e) }
