package gfs

// subCollection describes one of the seven fields published under
// kaos:gfs:<key>: which GRIB2 (category, parameter) pair identifies
// its message, which forecast hour to request (precipitation rate is
// absent from the analysis file and must come from f001), and the
// optional per-value transform applied after unpacking.
type subCollection struct {
	key          string
	category     uint8
	parameter    uint8
	forecastHour int
	varParams    []string
	levParams    []string
	unit         string
	transform    func(float64) float64
}

func kelvinToCelsius(v float64) float64 { return v - 273.15 }
func rateToHourly(v float64) float64    { return v * 3600 }

var subCollections = []subCollection{
	{
		key: "temperature", category: 0, parameter: 0, forecastHour: 0,
		varParams: []string{"var_TMP"}, levParams: []string{"lev_2_m_above_ground"},
		unit: "C", transform: kelvinToCelsius,
	},
	{
		key: "humidity", category: 1, parameter: 1, forecastHour: 0,
		varParams: []string{"var_RH"}, levParams: []string{"lev_2_m_above_ground"},
		unit: "%",
	},
	{
		key: "precipitation", category: 1, parameter: 64, forecastHour: 1,
		varParams: []string{"var_PRATE"}, levParams: []string{"lev_surface"},
		unit: "mm/h", transform: rateToHourly,
	},
	{
		key: "cloud_cover", category: 6, parameter: 1, forecastHour: 0,
		varParams: []string{"var_TCDC"}, levParams: []string{"lev_entire_atmosphere"},
		unit: "%",
	},
	{
		key: "cape", category: 7, parameter: 6, forecastHour: 0,
		varParams: []string{"var_CAPE"}, levParams: []string{"lev_surface"},
		unit: "J/kg",
	},
}

// windUSubCollection and windVSubCollection are fetched from the same
// message pair (both variables requested in one filter URL) and
// published as a single vector field rather than two independent
// grids.
var windUSubCollection = subCollection{
	key: "wind_u", category: 2, parameter: 2, forecastHour: 0,
	varParams: []string{"var_UGRD", "var_VGRD"}, levParams: []string{"lev_10_m_above_ground"},
	unit: "m/s",
}

var windVSubCollection = subCollection{
	key: "wind_v", category: 2, parameter: 3, forecastHour: 0,
	varParams: []string{"var_UGRD", "var_VGRD"}, levParams: []string{"lev_10_m_above_ground"},
	unit: "m/s",
}
