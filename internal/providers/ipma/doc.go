// Package ipma implements the IPMA (Portuguese weather institute)
// warnings collector. Severity-green and already-expired warnings are
// filtered out; the remainder is grouped by area code, sorted within
// each area by severity (red > orange > yellow) then start time, and
// the area's overall severity is taken from the first entry after
// sorting.
package ipma
