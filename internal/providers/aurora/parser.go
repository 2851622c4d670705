package aurora

import (
	"encoding/json"
	"fmt"

	"github.com/kaos-collector/kaos-collector/internal/decode"
	"github.com/kaos-collector/kaos-collector/pkg/model"
)

// Header is the fixed global grid the OVATION feed is reshaped onto:
// 1° steps in the feed's native 0..360° longitude convention, which is
// preserved rather than normalized.
var Header = model.GridHeader{
	NX:  360,
	NY:  181,
	Lo1: 0,
	La1: 90,
	DX:  1,
	DY:  1,
}

type envelope struct {
	Coordinates [][3]float64 `json:"coordinates"`
}

// Parse reshapes the OVATION [lon, lat, probability] triplets into a
// model.Grid using Header, filling unsampled cells with NaN.
func Parse(raw []byte) (model.Grid, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return model.Grid{}, fmt.Errorf("aurora: decoding ovation feed: %w", err)
	}

	samples := make([]decode.GridSample, len(env.Coordinates))
	for i, c := range env.Coordinates {
		samples[i] = decode.GridSample{Lon: c[0], Lat: c[1], Value: c[2]}
	}

	return decode.AssembleGrid(samples, Header, "aurora", "probability"), nil
}
