package lightning

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

// wireStrike is the upstream WebSocket frame shape: {lat, lon, time_ms}.
type wireStrike struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	TimeMs int64   `json:"time_ms"`
}

// ParseStrike decodes one WebSocket frame into a Point. Frames with an
// out-of-range coordinate are rejected rather than silently clamped.
func ParseStrike(raw []byte) (model.Point, error) {
	var w wireStrike
	if err := json.Unmarshal(raw, &w); err != nil {
		return model.Point{}, fmt.Errorf("lightning: decode frame: %w", err)
	}
	if w.Lat < -90 || w.Lat > 90 || w.Lon < -180 || w.Lon > 180 {
		return model.Point{}, fmt.Errorf("lightning: strike coordinate out of range: lat=%v lon=%v", w.Lat, w.Lon)
	}
	return model.Point{
		Lat:  w.Lat,
		Lon:  w.Lon,
		Time: time.UnixMilli(w.TimeMs).UTC(),
	}, nil
}
