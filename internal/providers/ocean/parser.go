package ocean

import (
	"encoding/json"
	"fmt"

	"github.com/kaos-collector/kaos-collector/internal/decode"
	"github.com/kaos-collector/kaos-collector/pkg/model"
)

// Header is the fixed global grid surface currents are reshaped onto:
// a 0.25° grid in the standard -180..180° longitude convention.
var Header = model.GridHeader{
	NX:  1440,
	NY:  721,
	Lo1: -180,
	La1: 90,
	DX:  0.25,
	DY:  0.25,
}

type table struct {
	Table struct {
		ColumnNames []string        `json:"columnNames"`
		Rows        [][]interface{} `json:"rows"`
	} `json:"table"`
}

// Parse reshapes the ERDDAP tabular response into a model.VectorField,
// filling cells with no sample with NaN in both components.
func Parse(raw []byte) (model.VectorField, error) {
	var t table
	if err := json.Unmarshal(raw, &t); err != nil {
		return model.VectorField{}, fmt.Errorf("ocean: decoding erddap table: %w", err)
	}

	col := make(map[string]int, len(t.Table.ColumnNames))
	for i, name := range t.Table.ColumnNames {
		col[name] = i
	}
	latIdx, lonIdx, uIdx, vIdx := col["latitude"], col["longitude"], col["u"], col["v"]

	uSamples := make([]decode.GridSample, 0, len(t.Table.Rows))
	vSamples := make([]decode.GridSample, 0, len(t.Table.Rows))
	for _, row := range t.Table.Rows {
		lat, latOK := asFloat(row, latIdx)
		lon, lonOK := asFloat(row, lonIdx)
		u, uOK := asFloat(row, uIdx)
		v, vOK := asFloat(row, vIdx)
		if !latOK || !lonOK {
			continue
		}
		if uOK {
			uSamples = append(uSamples, decode.GridSample{Lat: lat, Lon: lon, Value: u})
		}
		if vOK {
			vSamples = append(vSamples, decode.GridSample{Lat: lat, Lon: lon, Value: v})
		}
	}

	return model.VectorField{
		U: decode.AssembleGrid(uSamples, Header, "ocean_u", "m/s"),
		V: decode.AssembleGrid(vSamples, Header, "ocean_v", "m/s"),
	}, nil
}

func asFloat(row []interface{}, idx int) (float64, bool) {
	if idx < 0 || idx >= len(row) || row[idx] == nil {
		return 0, false
	}
	f, ok := row[idx].(float64)
	return f, ok
}
