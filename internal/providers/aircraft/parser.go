package aircraft

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

// response is the OpenSky /states/all wire shape: a flat array per
// aircraft, positional rather than keyed. Only the fields the feed
// contract names are read; the rest of the array is ignored.
type response struct {
	Time   int64           `json:"time"`
	States [][]interface{} `json:"states"`
}

const (
	idxCallsign = 1
	idxLon      = 5
	idxLat      = 6
	idxBaroAlt  = 7
	idxOnGround = 8
	idxVelocity = 9
	idxHeading  = 10
)

// Parse normalizes the OpenSky states array into a point collection.
// Entries with a null position (lon or lat absent, the feed's way of
// marking a state vector with no fix) are dropped.
func Parse(raw []byte) (model.PointCollection, error) {
	var resp response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return model.PointCollection{}, fmt.Errorf("aircraft: decoding states response: %w", err)
	}

	observedAt := time.Unix(resp.Time, 0).UTC()

	points := make([]model.Point, 0, len(resp.States))
	for _, s := range resp.States {
		if len(s) <= idxHeading {
			continue
		}
		lon, lonOK := asFloat(s[idxLon])
		lat, latOK := asFloat(s[idxLat])
		if !lonOK || !latOK {
			continue
		}
		alt, _ := asFloat(s[idxBaroAlt])
		velocity, _ := asFloat(s[idxVelocity])
		heading, _ := asFloat(s[idxHeading])
		onGround, _ := s[idxOnGround].(bool)
		callsign, _ := s[idxCallsign].(string)

		points = append(points, model.Point{
			Lat:  lat,
			Lon:  lon,
			Time: observedAt,
			Fields: map[string]any{
				"callsign":     callsign,
				"altitude_m":   alt,
				"velocity_mps": velocity,
				"heading":      heading,
				"on_ground":    onGround,
			},
		})
	}
	return model.PointCollection{Points: points}, nil
}

func asFloat(v interface{}) (float64, bool) {
	f, ok := v.(float64)
	return f, ok
}
