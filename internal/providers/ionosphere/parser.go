package ionosphere

import (
	"encoding/json"
	"fmt"

	"github.com/kaos-collector/kaos-collector/internal/decode"
	"github.com/kaos-collector/kaos-collector/pkg/model"
)

// Header is the fixed global grid the TEC feed is reshaped onto: 5°
// longitude by 2.5° latitude steps, north-west corner at (-180, 87.5).
var Header = model.GridHeader{
	NX:  73,
	NY:  71,
	Lo1: -180,
	La1: 87.5,
	DX:  5,
	DY:  2.5,
}

type sample struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
	TEC float64 `json:"tec"`
}

// Parse reshapes the flat TEC sample array into a model.Grid using
// Header, filling every cell the feed has no sample for with NaN.
func Parse(raw []byte) (model.Grid, error) {
	var samples []sample
	if err := json.Unmarshal(raw, &samples); err != nil {
		return model.Grid{}, fmt.Errorf("ionosphere: decoding tec samples: %w", err)
	}

	gridSamples := make([]decode.GridSample, len(samples))
	for i, s := range samples {
		gridSamples[i] = decode.GridSample{Lat: s.Lat, Lon: s.Lon, Value: s.TEC}
	}

	return decode.AssembleGrid(gridSamples, Header, "tec", "TECU"), nil
}
