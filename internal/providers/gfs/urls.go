package gfs

import (
	"fmt"
	"net/url"
	"time"
)

const filterBaseURL = "https://nomads.ncep.noaa.gov/cgi-bin/filter_gfs_0p25.pl"

// FilterURL assembles a NOMADS filter URL selecting the 0.25° global
// grid for the given model cycle, forecast hour, and variable/level
// selectors (e.g. "var_TMP", "lev_2_m_above_ground").
func FilterURL(cycle time.Time, forecastHour int, varParams, levParams []string) string {
	q := url.Values{}
	q.Set("file", fmt.Sprintf("gfs.t%02dz.pgrb2.0p25.f%03d", cycle.Hour(), forecastHour))
	for _, v := range varParams {
		q.Set(v, "on")
	}
	for _, l := range levParams {
		q.Set(l, "on")
	}
	q.Set("leftlon", "0")
	q.Set("rightlon", "360")
	q.Set("toplat", "90")
	q.Set("bottomlat", "-90")
	q.Set("dir", fmt.Sprintf("/gfs.%s/%02d/atmos", cycle.Format("20060102"), cycle.Hour()))
	return filterBaseURL + "?" + q.Encode()
}
