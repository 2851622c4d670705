// Package grib decodes a minimal subset of the GRIB2 binary format
// (WMO FM 92-XII) sufficient for the GFS 0.25° surface/single-level
// fields this system consumes: section 0 (indicator), section 3 grid
// definition template 3.0 (regular lat/lon grid), section 4 product
// definition template 4.0 (single parameter, single forecast time),
// section 5 data representation template 5.0 (simple packing), and
// section 7 (packed data, no bitmap). Every function here operates
// purely on []byte with no I/O, so it is exercised by small
// hand-built binary fixtures under testdata/ rather than real NOMADS
// output.
package grib
