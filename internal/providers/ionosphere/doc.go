// Package ionosphere collects the global total electron content (TEC)
// map, a regular lat/lon grid of ionospheric electron density
// published as a flat array of {lat, lon, tec} samples. Samples are
// reshaped onto a fixed 5°x2.5° global grid; cells the feed has no
// sample for are filled with NaN rather than dropped, so the grid
// always conforms to its declared header.
package ionosphere
