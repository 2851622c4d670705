// Package firms polls the NASA FIRMS (Fire Information for Resource
// Management System) area CSV endpoint for active fire detections.
// Requires NASA_FIRMS_API_KEY; the collector is skipped entirely via
// credential-gated registration when the key is absent. The payload is
// genuinely tabular, not JSON, so it is parsed with the standard
// library's encoding/csv rather than forced through a JSON decoder.
package firms
