package seismic

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/kaos-collector/kaos-collector/internal/decode"
	"github.com/kaos-collector/kaos-collector/pkg/model"
)

type properties struct {
	Mag   *float64 `json:"mag"`
	Place string   `json:"place"`
	Time  int64    `json:"time"`
}

// Parse decodes a USGS GeoJSON summary feed into a point collection,
// dropping any feature that lacks geometry.coordinates[0..1].
func Parse(raw []byte) (model.PointCollection, error) {
	var fc decode.FeatureCollection
	if err := json.Unmarshal(raw, &fc); err != nil {
		return model.PointCollection{}, fmt.Errorf("seismic: decoding feed: %w", err)
	}

	points := make([]model.Point, 0, len(fc.Features))
	for _, f := range fc.Features {
		lon, lat, ok := f.Geometry.PointLonLat()
		if !ok {
			continue
		}

		var props properties
		if len(f.Properties) > 0 {
			_ = json.Unmarshal(f.Properties, &props)
		}

		fields := map[string]any{"place": props.Place}
		if props.Mag != nil {
			fields["mag"] = *props.Mag
		}

		points = append(points, model.Point{
			Lat:    lat,
			Lon:    lon,
			Time:   time.UnixMilli(props.Time).UTC(),
			Fields: fields,
		})
	}

	return model.PointCollection{Points: points}, nil
}
