// Package gdacs implements the GDACS (Global Disaster Alert and
// Coordination System) collector. It fetches one GeoJSON feed,
// extracts features flagged current, and deduplicates by
// (eventtype, eventid, episodeid, geometry-class). Tropical-cyclone
// events additionally reconstruct a track from the feed's
// Point_Polygon_Point_N sub-features, ordered by their numeric suffix
// and classified observed/forecast by comparing each point's embedded
// timestamp to now; the Poly_Cones feature (if present) becomes the
// forecast cone polygon.
package gdacs
