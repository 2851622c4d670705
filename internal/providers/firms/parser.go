package firms

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

// Parse normalizes the FIRMS area CSV into a point collection of fire
// detections, each carrying brightness temperature and confidence.
// Rows with an unparsable latitude/longitude are dropped.
func Parse(raw []byte) (model.PointCollection, error) {
	r := csv.NewReader(bytes.NewReader(raw))
	header, err := r.Read()
	if err == io.EOF {
		return model.PointCollection{}, nil
	}
	if err != nil {
		return model.PointCollection{}, fmt.Errorf("firms: reading header row: %w", err)
	}

	col := make(map[string]int, len(header))
	for i, h := range header {
		col[h] = i
	}

	var points []model.Point
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return model.PointCollection{}, fmt.Errorf("firms: reading detection row: %w", err)
		}

		lat, latErr := strconv.ParseFloat(field(row, col, "latitude"), 64)
		lon, lonErr := strconv.ParseFloat(field(row, col, "longitude"), 64)
		if latErr != nil || lonErr != nil {
			continue
		}
		brightness, _ := strconv.ParseFloat(field(row, col, "bright_ti4"), 64)
		frp, _ := strconv.ParseFloat(field(row, col, "frp"), 64)
		acquiredAt := parseAcquiredAt(field(row, col, "acq_date"), field(row, col, "acq_time"))

		points = append(points, model.Point{
			Lat:  lat,
			Lon:  lon,
			Time: acquiredAt,
			Fields: map[string]any{
				"confidence":   field(row, col, "confidence"),
				"brightness_k": brightness,
				"frp_mw":       frp,
				"satellite":    field(row, col, "satellite"),
			},
		})
	}
	return model.PointCollection{Points: points}, nil
}

func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

func parseAcquiredAt(date, hhmm string) time.Time {
	for len(hhmm) < 4 {
		hhmm = "0" + hhmm
	}
	t, err := time.Parse("2006-01-02 1504", date+" "+hhmm)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
