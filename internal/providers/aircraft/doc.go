// Package aircraft polls the OpenSky Network ADS-B state vector feed.
// With OPENSKY_CLIENT_ID/OPENSKY_CLIENT_SECRET present it authenticates
// with OAuth2 client-credentials and polls the authenticated endpoint;
// otherwise it falls back to the anonymous, more aggressively
// rate-limited endpoint. State vectors with a null position are
// dropped silently (InvariantViolation) rather than published with a
// zero-value position.
package aircraft
