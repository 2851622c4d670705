// Package decode holds small pure decoders shared by more than one
// provider: GeoJSON feature extraction and regular-grid assembly from
// scattered (lat, lon, value) samples. Kept here rather than
// duplicated per package since USGS and GDACS both consume GeoJSON,
// and the ionosphere, aurora and ocean-currents collectors all
// assemble a model.Grid from raw samples.
package decode

import "encoding/json"

// Geometry is a GeoJSON geometry with its coordinates left raw, since
// Point, LineString, and Polygon each shape differently.
type Geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// Feature is a GeoJSON feature with properties left raw so each
// provider can unmarshal its own property shape.
type Feature struct {
	Type       string          `json:"type"`
	Geometry   *Geometry       `json:"geometry"`
	Properties json.RawMessage `json:"properties"`
}

// FeatureCollection is a GeoJSON FeatureCollection.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// PointLonLat extracts [lon, lat] from a Point geometry's coordinates.
// ok is false if the geometry is nil, not a Point, or the coordinate
// array has fewer than 2 entries (the "features lacking
// geometry.coordinates[0..1]" drop rule USGS and Fogos.pt both need).
func (g *Geometry) PointLonLat() (lon, lat float64, ok bool) {
	if g == nil || g.Type != "Point" {
		return 0, 0, false
	}
	var coords []float64
	if err := json.Unmarshal(g.Coordinates, &coords); err != nil || len(coords) < 2 {
		return 0, 0, false
	}
	return coords[0], coords[1], true
}
