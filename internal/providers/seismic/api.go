package seismic

import (
	"context"

	"github.com/kaos-collector/kaos-collector/internal/fetch"
)

// Feed is one USGS GeoJSON summary feed: a magnitude/time-window pair
// that becomes its own published key.
type Feed struct {
	Variant string // published as kaos:seismic:<Variant>
	URL     string
}

// DefaultFeeds mirrors the feeds USGS publishes under its GeoJSON
// summary format (https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/).
var DefaultFeeds = []Feed{
	{Variant: "all_hour", URL: "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/all_hour.geojson"},
	{Variant: "significant_week", URL: "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/significant_week.geojson"},
	{Variant: "2.5_day", URL: "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/2.5_day.geojson"},
	{Variant: "4.5_week", URL: "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/4.5_week.geojson"},
}

// API abstracts fetching one USGS feed, for testability.
type API interface {
	FetchFeed(ctx context.Context, url string) ([]byte, error)
}

type fetcherAPI struct {
	fetcher *fetch.Fetcher
}

// NewAPI wraps a fetch.Fetcher as an API.
func NewAPI(fetcher *fetch.Fetcher) API {
	return &fetcherAPI{fetcher: fetcher}
}

func (a *fetcherAPI) FetchFeed(ctx context.Context, url string) ([]byte, error) {
	resp, err := a.fetcher.Fetch(ctx, "seismic", url, fetch.Options{AcceptEncoding: "gzip"}, fetch.DefaultPolicy)
	if err != nil {
		return nil, err
	}
	if err := fetch.CheckStatus(resp, url); err != nil {
		return nil, err
	}
	return resp.Body, nil
}
