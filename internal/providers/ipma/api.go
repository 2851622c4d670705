package ipma

import (
	"context"

	"github.com/kaos-collector/kaos-collector/internal/fetch"
)

const warningsURL = "https://api.ipma.pt/open-data/forecast/warnings/warnings_www.json"

// API abstracts fetching the IPMA warnings feed, for testability.
type API interface {
	FetchWarnings(ctx context.Context) ([]byte, error)
}

type fetcherAPI struct {
	fetcher *fetch.Fetcher
}

// NewAPI wraps a fetch.Fetcher as an API.
func NewAPI(fetcher *fetch.Fetcher) API { return &fetcherAPI{fetcher: fetcher} }

func (a *fetcherAPI) FetchWarnings(ctx context.Context) ([]byte, error) {
	resp, err := a.fetcher.Fetch(ctx, "ipma", warningsURL, fetch.Options{}, fetch.DefaultPolicy)
	if err != nil {
		return nil, err
	}
	if err := fetch.CheckStatus(resp, warningsURL); err != nil {
		return nil, err
	}
	return resp.Body, nil
}
