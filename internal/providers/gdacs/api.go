package gdacs

import (
	"context"

	"github.com/kaos-collector/kaos-collector/internal/fetch"
)

const feedURL = "https://www.gdacs.org/gdacsapi/api/events/geteventlist/eventlist_current.json"

// API abstracts fetching the GDACS feed, for testability.
type API interface {
	FetchFeed(ctx context.Context) ([]byte, error)
}

type fetcherAPI struct {
	fetcher *fetch.Fetcher
}

// NewAPI wraps a fetch.Fetcher as an API.
func NewAPI(fetcher *fetch.Fetcher) API { return &fetcherAPI{fetcher: fetcher} }

func (a *fetcherAPI) FetchFeed(ctx context.Context) ([]byte, error) {
	resp, err := a.fetcher.Fetch(ctx, "gdacs", feedURL, fetch.Options{AcceptEncoding: "gzip"}, fetch.DefaultPolicy)
	if err != nil {
		return nil, err
	}
	if err := fetch.CheckStatus(resp, feedURL); err != nil {
		return nil, err
	}
	return resp.Body, nil
}
