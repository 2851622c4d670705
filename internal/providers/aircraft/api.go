package aircraft

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"

	"github.com/kaos-collector/kaos-collector/internal/fetch"
)

const (
	statesURL = "https://opensky-network.org/api/states/all"
	tokenURL  = "https://auth.opensky-network.org/auth/realms/opensky-network/protocol/openid-connect/token"
)

// API abstracts fetching the OpenSky state vector feed, for testability.
type API interface {
	FetchStates(ctx context.Context) ([]byte, error)
}

type fetcherAPI struct {
	fetcher     *fetch.Fetcher
	tokenSource oauth2.TokenSource // nil when no credentials were configured
}

// NewAPI wraps a fetch.Fetcher as an API. When clientID/clientSecret
// are non-empty it authenticates with OAuth2 client-credentials and
// polls the authenticated endpoint; otherwise every request goes to
// the anonymous, more aggressively rate-limited endpoint.
func NewAPI(fetcher *fetch.Fetcher, clientID, clientSecret string) API {
	a := &fetcherAPI{fetcher: fetcher}
	if clientID != "" && clientSecret != "" {
		cfg := clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		}
		a.tokenSource = cfg.TokenSource(context.Background())
	}
	return a
}

func (a *fetcherAPI) FetchStates(ctx context.Context) ([]byte, error) {
	opts := fetch.Options{}
	if a.tokenSource != nil {
		tok, err := a.tokenSource.Token()
		if err != nil {
			return nil, fmt.Errorf("aircraft: obtaining oauth2 token: %w", err)
		}
		opts.Headers = map[string]string{"Authorization": "Bearer " + tok.AccessToken}
	}

	resp, err := a.fetcher.Fetch(ctx, "aircraft", statesURL, opts, fetch.DefaultPolicy)
	if err != nil {
		return nil, err
	}
	if err := fetch.CheckStatus(resp, statesURL); err != nil {
		return nil, err
	}
	return resp.Body, nil
}
