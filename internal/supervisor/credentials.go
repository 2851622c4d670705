package supervisor

import "github.com/kaos-collector/kaos-collector/internal/config"

// Capabilities reports which credential-gated optional collectors may
// register. Generalized from a Kubernetes capability detector that
// probed a cluster's API groups for CRD availability; here
// the probe target is the process environment's provider credentials
// instead of a cluster.
type Capabilities struct {
	Aircraft   bool // OpenSky; registers even without credentials via the anonymous endpoint
	AirQuality bool // WAQI; requires WAQIAPIKey
	Fire       bool // NASA FIRMS; requires NASAFirmsAPIKey
	AprsLookup bool // optional aprs.fi callsign lookup used by the APRS-IS collector
}

// Detect inspects cfg (already loaded from the environment by
// config.Load) and reports which optional collectors have what they
// need to register. It never touches the network or the filesystem —
// a pure function of the already-parsed configuration, same shape as
// discovery.Detect's pure struct return.
func Detect(cfg config.Config) Capabilities {
	return Capabilities{
		Aircraft:   true,
		AirQuality: cfg.WAQIAPIKey != "",
		Fire:       cfg.NASAFirmsAPIKey != "",
		AprsLookup: cfg.APRSFiAPIKey != "",
	}
}
