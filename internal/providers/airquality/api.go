package airquality

import (
	"context"
	"fmt"

	"github.com/kaos-collector/kaos-collector/internal/fetch"
)

const boundsURL = "https://api.waqi.info/map/bounds/?latlng=-90,-180,90,180&token=%s"

// API abstracts fetching the WAQI bundled world feed, for testability.
type API interface {
	FetchStations(ctx context.Context) ([]byte, error)
}

type fetcherAPI struct {
	fetcher *fetch.Fetcher
	token   string
}

// NewAPI wraps a fetch.Fetcher as an API, authenticated with token.
func NewAPI(fetcher *fetch.Fetcher, token string) API {
	return &fetcherAPI{fetcher: fetcher, token: token}
}

func (a *fetcherAPI) FetchStations(ctx context.Context) ([]byte, error) {
	url := fmt.Sprintf(boundsURL, a.token)
	resp, err := a.fetcher.Fetch(ctx, "airquality", url, fetch.Options{}, fetch.DefaultPolicy)
	if err != nil {
		return nil, err
	}
	if err := fetch.CheckStatus(resp, "airquality bounds feed"); err != nil {
		return nil, err
	}
	return resp.Body, nil
}
