package airquality

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

type station struct {
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	AQI     string  `json:"aqi"`
	Station struct {
		Name string `json:"name"`
	} `json:"station"`
}

type response struct {
	Status string    `json:"status"`
	Data   []station `json:"data"`
}

// Parse normalizes the WAQI bounds response into a point collection,
// dropping stations whose AQI is the feed's "-" placeholder for no
// current reading.
func Parse(raw []byte) (model.PointCollection, error) {
	var resp response
	if err := json.Unmarshal(raw, &resp); err != nil {
		return model.PointCollection{}, fmt.Errorf("airquality: decoding bounds response: %w", err)
	}

	now := time.Now().UTC()
	points := make([]model.Point, 0, len(resp.Data))
	for _, s := range resp.Data {
		aqi, err := strconv.Atoi(s.AQI)
		if err != nil {
			continue
		}
		points = append(points, model.Point{
			Lat:  s.Lat,
			Lon:  s.Lon,
			Time: now,
			Fields: map[string]any{
				"aqi":     aqi,
				"station": s.Station.Name,
			},
		})
	}
	return model.PointCollection{Points: points}, nil
}
