package ocean

import (
	"context"

	"github.com/kaos-collector/kaos-collector/internal/fetch"
)

const currentsURL = "https://coastwatch.pfeg.noaa.gov/erddap/griddap/ncdcOwDlyP.json?u[(last)][(0.0)][][],v[(last)][(0.0)][][]"

// API abstracts fetching the ERDDAP ocean currents feed, for
// testability.
type API interface {
	FetchCurrents(ctx context.Context) ([]byte, error)
}

type fetcherAPI struct {
	fetcher *fetch.Fetcher
}

// NewAPI wraps a fetch.Fetcher as an API.
func NewAPI(fetcher *fetch.Fetcher) API { return &fetcherAPI{fetcher: fetcher} }

func (a *fetcherAPI) FetchCurrents(ctx context.Context) ([]byte, error) {
	resp, err := a.fetcher.Fetch(ctx, "ocean", currentsURL, fetch.Options{}, fetch.DefaultPolicy)
	if err != nil {
		return nil, err
	}
	if err := fetch.CheckStatus(resp, currentsURL); err != nil {
		return nil, err
	}
	return resp.Body, nil
}
