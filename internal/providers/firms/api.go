package firms

import (
	"context"
	"fmt"

	"github.com/kaos-collector/kaos-collector/internal/fetch"
)

const areaURL = "https://firms.modaps.eosdis.nasa.gov/api/area/csv/%s/VIIRS_SNPP_NRT/world/1"

// API abstracts fetching the FIRMS area CSV feed, for testability.
type API interface {
	FetchDetections(ctx context.Context) ([]byte, error)
}

type fetcherAPI struct {
	fetcher *fetch.Fetcher
	apiKey  string
}

// NewAPI wraps a fetch.Fetcher as an API, authenticated with apiKey.
func NewAPI(fetcher *fetch.Fetcher, apiKey string) API {
	return &fetcherAPI{fetcher: fetcher, apiKey: apiKey}
}

func (a *fetcherAPI) FetchDetections(ctx context.Context) ([]byte, error) {
	url := fmt.Sprintf(areaURL, a.apiKey)
	resp, err := a.fetcher.Fetch(ctx, "firms", url, fetch.Options{}, fetch.DefaultPolicy)
	if err != nil {
		return nil, err
	}
	if err := fetch.CheckStatus(resp, "firms area feed"); err != nil {
		return nil, err
	}
	return resp.Body, nil
}
