package spaceweather

import (
	"context"

	"github.com/kaos-collector/kaos-collector/internal/fetch"
)

const (
	kpURL    = "https://services.swpc.noaa.gov/json/planetary_k_index_1m.json"
	f107URL  = "https://services.swpc.noaa.gov/json/f107_cm_flux.json"
	xrayURL  = "https://services.swpc.noaa.gov/json/goes/primary/xrays-1-day.json"
)

// API abstracts fetching the three SWPC endpoints, for testability.
type API interface {
	FetchKpIndex(ctx context.Context) ([]byte, error)
	FetchF107(ctx context.Context) ([]byte, error)
	FetchXRay(ctx context.Context) ([]byte, error)
}

type fetcherAPI struct {
	fetcher *fetch.Fetcher
}

// NewAPI wraps a fetch.Fetcher as an API.
func NewAPI(fetcher *fetch.Fetcher) API { return &fetcherAPI{fetcher: fetcher} }

func (a *fetcherAPI) FetchKpIndex(ctx context.Context) ([]byte, error) { return a.get(ctx, kpURL) }
func (a *fetcherAPI) FetchF107(ctx context.Context) ([]byte, error)    { return a.get(ctx, f107URL) }
func (a *fetcherAPI) FetchXRay(ctx context.Context) ([]byte, error)    { return a.get(ctx, xrayURL) }

func (a *fetcherAPI) get(ctx context.Context, url string) ([]byte, error) {
	resp, err := a.fetcher.Fetch(ctx, "spaceweather", url, fetch.Options{}, fetch.DefaultPolicy)
	if err != nil {
		return nil, err
	}
	if err := fetch.CheckStatus(resp, url); err != nil {
		return nil, err
	}
	return resp.Body, nil
}
