package model

import "time"

// Polygon is a GeoJSON-style polygon: a list of linear rings, each a
// list of [lon, lat] pairs. Used for GDACS forecast cones.
type Polygon struct {
	Coordinates [][][2]float64 `json:"coordinates"`
}

// TrackPoint is one point along a GDACS tropical-cyclone track.
type TrackPoint struct {
	Lat        float64   `json:"lat"`
	Lon        float64   `json:"lon"`
	Time       time.Time `json:"time"`
	IsForecast bool      `json:"isForecast"`
}

// CycloneData is attached to GDACS tropical-cyclone events: the
// reconstructed track (observed points followed by forecast points,
// ordered by the embedded Point_Polygon_Point_N suffix) and the
// forecast cone polygon, if the feed carried one.
type CycloneData struct {
	TrackPoints  []TrackPoint `json:"trackPoints"`
	ForecastCone *Polygon     `json:"forecastCone,omitempty"`
}

// GDACSEvent is one deduplicated GDACS alert, keyed by
// (eventtype, eventid, episodeid, geometry-class).
type GDACSEvent struct {
	EventType    string       `json:"eventtype"`
	EventID      string       `json:"eventid"`
	EpisodeID    string       `json:"episodeid"`
	GeometryKind string       `json:"geometryKind"`
	Lat          float64      `json:"lat"`
	Lon          float64      `json:"lon"`
	Severity     string       `json:"severity"`
	Time         time.Time    `json:"time"`
	CycloneData  *CycloneData `json:"cycloneData,omitempty"`
}

// GDACSCollection is the GDACS snapshot shape.
type GDACSCollection struct {
	Events []GDACSEvent `json:"events"`
}

// IPMAWarningEntry is one warning within an area, already filtered to
// exclude severity green and expired entries.
type IPMAWarningEntry struct {
	WarningType string    `json:"type"`
	Severity    string    `json:"severity"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
}

// IPMAArea groups warnings by area code. OverallSeverity is the first
// entry's severity after sorting by severity (red>orange>yellow) then
// start time.
type IPMAArea struct {
	AreaCode        string             `json:"areaCode"`
	OverallSeverity string             `json:"overallSeverity"`
	Warnings        []IPMAWarningEntry `json:"warnings"`
}

// IPMACollection is the IPMA snapshot shape.
type IPMACollection struct {
	Areas []IPMAArea `json:"areas"`
}

// KiwiStation is one KiwiSDR receiver scraped from the HTML station
// list. Name is truncated to 200 characters.
type KiwiStation struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Users    int     `json:"users"`
	MaxUsers int     `json:"maxUsers"`
	Antenna  string  `json:"antenna"`
	Location string  `json:"location"`
	SNR      float64 `json:"snr"`
	Offline  bool    `json:"offline"`
}

// KiwiCollection is the KiwiSDR snapshot shape.
type KiwiCollection struct {
	Stations []KiwiStation `json:"stations"`
}

// SpaceWeather fans three SWPC endpoints into one record. Each
// component is a pointer so a partial fetch (allSettled semantics)
// leaves the others nil/absent rather than failing the whole record.
type SpaceWeather struct {
	Time      time.Time `json:"time"`
	KpIndex   *float64  `json:"kpIndex,omitempty"`
	F107Flux  *float64  `json:"f107Flux,omitempty"`
	XRayClass *string   `json:"xrayClass,omitempty"`
	XRayFlux  *float64  `json:"xrayFlux,omitempty"`
}
