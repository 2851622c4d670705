package gfs

import "time"

// publicationLag is how long NOMADS takes to publish a model run after
// its nominal initialization time.
const publicationLag = 5 * time.Hour

// LatestCycle computes the most recently published GFS model cycle as
// of now: subtract the publication lag, then round down to the
// nearest synoptic hour (00, 06, 12, 18 UTC).
func LatestCycle(now time.Time) time.Time {
	adjusted := now.UTC().Add(-publicationLag)
	cycleHour := (adjusted.Hour() / 6) * 6
	return time.Date(adjusted.Year(), adjusted.Month(), adjusted.Day(), cycleHour, 0, 0, 0, time.UTC)
}
