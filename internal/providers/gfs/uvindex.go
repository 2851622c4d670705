package gfs

import (
	"math"
	"time"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

// solarZenithDegrees computes the solar zenith angle θ, in degrees,
// for a point and instant: declination from day-of-year via the
// standard 23.45°·sin approximation, hour angle from local solar time.
func solarZenithDegrees(lat, lon float64, t time.Time) float64 {
	dayOfYear := float64(t.UTC().YearDay())
	declination := 23.45 * math.Sin(2*math.Pi*(284+dayOfYear)/365) * math.Pi / 180

	utcHours := float64(t.UTC().Hour()) + float64(t.UTC().Minute())/60
	solarTime := utcHours + lon/15
	hourAngle := (solarTime - 12) * 15 * math.Pi / 180

	latRad := lat * math.Pi / 180
	cosZenith := math.Sin(latRad)*math.Sin(declination) + math.Cos(latRad)*math.Cos(declination)*math.Cos(hourAngle)
	cosZenith = math.Max(-1, math.Min(1, cosZenith))
	return math.Acos(cosZenith) * 180 / math.Pi
}

// madronichUVIndex applies the clear-sky UV index approximation:
// UV = 12.5 · cos(θ)^2.42 · (O₃/300)^-1.23, clamped to >= 0. Cells
// with a non-positive or non-finite ozone column, or a zenith angle
// at or past the horizon, produce NaN/0 respectively.
func madronichUVIndex(zenithDegrees, ozoneDU float64) float64 {
	if zenithDegrees >= 90 {
		return 0
	}
	if ozoneDU <= 0 || math.IsNaN(ozoneDU) || math.IsInf(ozoneDU, 0) {
		return math.NaN()
	}
	cosZenith := math.Cos(zenithDegrees * math.Pi / 180)
	uv := 12.5 * math.Pow(cosZenith, 2.42) * math.Pow(ozoneDU/300, -1.23)
	return math.Max(0, uv)
}

// climatologicalOzoneDU is a fixed, non-seasonal total-column ozone
// value used when no live ozone field is available. A future
// revision could wire in TOMS/OMI climatology instead of this
// constant.
const climatologicalOzoneDU = 300

// DeriveUVIndex computes a UV index grid over header's cells for
// instant now, using a fixed climatological ozone column.
func DeriveUVIndex(header model.GridHeader, now time.Time) model.Grid {
	data := make(model.GridData, header.Cells())
	for row := 0; row < header.NY; row++ {
		lat := header.La1 - float64(row)*header.DY
		for col := 0; col < header.NX; col++ {
			lon := header.Lo1 + float64(col)*header.DX
			zenith := solarZenithDegrees(lat, normalizeLongitude(lon), now)
			data[row*header.NX+col] = madronichUVIndex(zenith, climatologicalOzoneDU)
		}
	}
	return model.Grid{Header: header, Data: data, Unit: "index", Name: "uv_index"}
}

// normalizeLongitude maps a longitude to [-180, 180), the convention
// the zenith-angle formula expects, regardless of the grid header's
// native convention (GFS grids run 0..360°).
func normalizeLongitude(lon float64) float64 {
	lon = math.Mod(lon+180, 360)
	if lon < 0 {
		lon += 360
	}
	return lon - 180
}
