package kiwisdr

import (
	"context"

	"github.com/kaos-collector/kaos-collector/internal/fetch"
)

const directoryURL = "http://kiwisdr.com/public/"

// API abstracts fetching the KiwiSDR directory page, for testability.
type API interface {
	FetchDirectory(ctx context.Context) ([]byte, error)
}

type fetcherAPI struct {
	fetcher *fetch.Fetcher
}

// NewAPI wraps a fetch.Fetcher as an API.
func NewAPI(fetcher *fetch.Fetcher) API { return &fetcherAPI{fetcher: fetcher} }

func (a *fetcherAPI) FetchDirectory(ctx context.Context) ([]byte, error) {
	resp, err := a.fetcher.Fetch(ctx, "kiwisdr", directoryURL, fetch.Options{}, fetch.DefaultPolicy)
	if err != nil {
		return nil, err
	}
	if err := fetch.CheckStatus(resp, directoryURL); err != nil {
		return nil, err
	}
	return resp.Body, nil
}
