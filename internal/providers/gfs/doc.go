// Package gfs fetches and decodes NOAA GFS 0.25° surface fields from
// the NOMADS filter service and publishes seven independent
// sub-collections: temperature, relative humidity, precipitation
// rate, total cloud cover, CAPE, a 10 m wind vector (U/V), and a
// derived UV index. GRIB2 framing and section parsing live in the
// sibling grib package as pure functions; this package owns URL
// synthesis, unit normalization, and the Madronich UV derivation.
package gfs
