package aurora

import (
	"context"

	"github.com/kaos-collector/kaos-collector/internal/fetch"
)

const ovationURL = "https://services.swpc.noaa.gov/json/ovation_aurora_latest.json"

// API abstracts fetching the OVATION aurora feed, for testability.
type API interface {
	FetchAurora(ctx context.Context) ([]byte, error)
}

type fetcherAPI struct {
	fetcher *fetch.Fetcher
}

// NewAPI wraps a fetch.Fetcher as an API.
func NewAPI(fetcher *fetch.Fetcher) API { return &fetcherAPI{fetcher: fetcher} }

func (a *fetcherAPI) FetchAurora(ctx context.Context) ([]byte, error) {
	resp, err := a.fetcher.Fetch(ctx, "aurora", ovationURL, fetch.Options{}, fetch.DefaultPolicy)
	if err != nil {
		return nil, err
	}
	if err := fetch.CheckStatus(resp, ovationURL); err != nil {
		return nil, err
	}
	return resp.Body, nil
}
