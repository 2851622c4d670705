package ionosphere

import (
	"context"

	"github.com/kaos-collector/kaos-collector/internal/fetch"
)

const tecURL = "https://services.swpc.noaa.gov/experimental/json/ustec/tec.json"

// API abstracts fetching the global TEC feed, for testability.
type API interface {
	FetchTEC(ctx context.Context) ([]byte, error)
}

type fetcherAPI struct {
	fetcher *fetch.Fetcher
}

// NewAPI wraps a fetch.Fetcher as an API.
func NewAPI(fetcher *fetch.Fetcher) API { return &fetcherAPI{fetcher: fetcher} }

func (a *fetcherAPI) FetchTEC(ctx context.Context) ([]byte, error) {
	resp, err := a.fetcher.Fetch(ctx, "ionosphere", tecURL, fetch.Options{}, fetch.DefaultPolicy)
	if err != nil {
		return nil, err
	}
	if err := fetch.CheckStatus(resp, tecURL); err != nil {
		return nil, err
	}
	return resp.Body, nil
}
