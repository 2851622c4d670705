// Package spaceweather fans out to three NOAA SWPC JSON endpoints (Kp
// index, F10.7 flux, GOES X-ray) in parallel using allSettled
// semantics: a record is produced as soon as at least one component
// succeeds, with the others left absent rather than failing the run.
package spaceweather
