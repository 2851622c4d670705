// Package seismic implements the USGS earthquake feed collector. It
// fetches several magnitude/time-window feeds in parallel, each
// becoming its own kaos:seismic:<variant> key. Features lacking
// geometry.coordinates[0..1] are dropped silently (InvariantViolation)
// rather than failing the whole feed. A feed that fails
// outright is logged and its key is simply not refreshed this run;
// siblings are unaffected.
package seismic
