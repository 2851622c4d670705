package gfs

import (
	"context"
	"time"

	"github.com/kaos-collector/kaos-collector/internal/fetch"
)

// API abstracts fetching a GRIB2 filter response for one forecast
// hour, for testability.
type API interface {
	FetchFilter(ctx context.Context, cycle time.Time, forecastHour int, varParams, levParams []string) ([]byte, error)
}

type fetcherAPI struct {
	fetcher *fetch.Fetcher
	timeout time.Duration
}

// NewAPI wraps a fetch.Fetcher as an API, requesting gzip-compressed
// GRIB2 responses with the given total timeout.
func NewAPI(fetcher *fetch.Fetcher, timeout time.Duration) API {
	return &fetcherAPI{fetcher: fetcher, timeout: timeout}
}

func (a *fetcherAPI) FetchFilter(ctx context.Context, cycle time.Time, forecastHour int, varParams, levParams []string) ([]byte, error) {
	url := FilterURL(cycle, forecastHour, varParams, levParams)
	opts := fetch.Options{AcceptEncoding: "gzip"}
	policy := fetch.Policy{Timeout: a.timeout, Retries: fetch.DefaultPolicy.Retries}

	resp, err := a.fetcher.Fetch(ctx, "gfs", url, opts, policy)
	if err != nil {
		return nil, err
	}
	if err := fetch.CheckStatus(resp, url); err != nil {
		return nil, err
	}
	return resp.Body, nil
}
