package aprs

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/kaos-collector/kaos-collector/internal/fetch"
	"github.com/kaos-collector/kaos-collector/pkg/model"
)

const lookupURL = "https://api.aprs.fi/api/get?name=%s&what=loc&apikey=%s&format=json"

// LookupAPI is the optional aprs.fi position lookup, used only to seed
// the working set's watchlist entries at startup, before the TCP
// stream itself has heard from them.
type LookupAPI interface {
	Lookup(ctx context.Context, callsign string) (model.Point, error)
}

type aprsFiAPI struct {
	fetcher *fetch.Fetcher
	apiKey  string
}

// NewLookupAPI wraps a fetch.Fetcher as a LookupAPI, authenticated
// with apiKey.
func NewLookupAPI(fetcher *fetch.Fetcher, apiKey string) LookupAPI {
	return &aprsFiAPI{fetcher: fetcher, apiKey: apiKey}
}

type aprsFiResponse struct {
	Result  string `json:"result"`
	Found   int    `json:"found"`
	Entries []struct {
		Lat  string `json:"lat"`
		Lng  string `json:"lng"`
		Time string `json:"time"`
	} `json:"entries"`
}

func (a *aprsFiAPI) Lookup(ctx context.Context, callsign string) (model.Point, error) {
	url := fmt.Sprintf(lookupURL, callsign, a.apiKey)
	resp, err := a.fetcher.Fetch(ctx, "aprs_lookup", url, fetch.Options{}, fetch.DefaultPolicy)
	if err != nil {
		return model.Point{}, err
	}
	if err := fetch.CheckStatus(resp, "aprs.fi lookup"); err != nil {
		return model.Point{}, err
	}

	var parsed aprsFiResponse
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return model.Point{}, fmt.Errorf("aprs.fi: decode %s: %w", callsign, err)
	}
	if parsed.Result != "ok" || parsed.Found == 0 {
		return model.Point{}, fmt.Errorf("aprs.fi: no position found for %s", callsign)
	}

	e := parsed.Entries[0]
	lat, err := strconv.ParseFloat(e.Lat, 64)
	if err != nil {
		return model.Point{}, fmt.Errorf("aprs.fi: bad lat for %s: %w", callsign, err)
	}
	lon, err := strconv.ParseFloat(e.Lng, 64)
	if err != nil {
		return model.Point{}, fmt.Errorf("aprs.fi: bad lng for %s: %w", callsign, err)
	}

	t := time.Now()
	if secs, err := strconv.ParseInt(e.Time, 10, 64); err == nil {
		t = time.Unix(secs, 0)
	}

	return model.Point{
		Lat:    lat,
		Lon:    lon,
		Time:   t,
		Fields: map[string]any{"source": "aprsfi_lookup"},
	}, nil
}
