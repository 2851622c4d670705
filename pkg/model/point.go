// Package model holds the wire/record shapes every collector publishes
// and every reader consumes.
package model

import "time"

// Point is one entry of a point collection: an earthquake, an incident,
// an APRS station, an aircraft, or a lightning strike (KiwiSDR
// receivers use KiwiStation instead). Lat/Lon/Time are mandatory; Fields carries feed-specific
// data so one type serves every point-shaped feed.
type Point struct {
	Lat    float64        `json:"lat"`
	Lon    float64        `json:"lon"`
	Time   time.Time      `json:"time"`
	Fields map[string]any `json:"fields,omitempty"`
}

// PointCollection is the ordered-sequence-of-points snapshot shape.
type PointCollection struct {
	Points []Point `json:"points"`
}

// Len reports the number of points, used by tests and by grid
// conservation checks that print diagnostics on mismatch.
func (c PointCollection) Len() int { return len(c.Points) }
