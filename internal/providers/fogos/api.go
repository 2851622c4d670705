package fogos

import (
	"context"

	"github.com/kaos-collector/kaos-collector/internal/fetch"
)

const (
	activeURL = "https://api.fogos.pt/new/fires"
	searchURL = "https://api.fogos.pt/v2/incidents/search?hoursAgo=24"
)

// API abstracts fetching the two Fogos.pt endpoints, for testability.
type API interface {
	FetchActive(ctx context.Context) ([]byte, error)
	FetchRecent(ctx context.Context) ([]byte, error)
}

type fetcherAPI struct {
	fetcher *fetch.Fetcher
}

// NewAPI wraps a fetch.Fetcher as an API.
func NewAPI(fetcher *fetch.Fetcher) API {
	return &fetcherAPI{fetcher: fetcher}
}

func (a *fetcherAPI) FetchActive(ctx context.Context) ([]byte, error) {
	return a.get(ctx, activeURL)
}

func (a *fetcherAPI) FetchRecent(ctx context.Context) ([]byte, error) {
	return a.get(ctx, searchURL)
}

func (a *fetcherAPI) get(ctx context.Context, url string) ([]byte, error) {
	resp, err := a.fetcher.Fetch(ctx, "fogos", url, fetch.Options{}, fetch.DefaultPolicy)
	if err != nil {
		return nil, err
	}
	if err := fetch.CheckStatus(resp, url); err != nil {
		return nil, err
	}
	return resp.Body, nil
}
