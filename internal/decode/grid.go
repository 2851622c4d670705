package decode

import (
	"math"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

// GridSample is one scattered observation to be placed onto a regular
// grid by AssembleGrid.
type GridSample struct {
	Lat, Lon, Value float64
}

// AssembleGrid places samples onto the regular grid described by
// header, filling any cell no sample lands on with NaN. Shared by the
// ionosphere, aurora and ocean-currents collectors so every provider
// that receives scattered samples reshapes them the same way.
func AssembleGrid(samples []GridSample, header model.GridHeader, name, unit string) model.Grid {
	data := make(model.GridData, header.Cells())
	for i := range data {
		data[i] = math.NaN()
	}

	for _, s := range samples {
		col := int(math.Round((s.Lon - header.Lo1) / header.DX))
		row := int(math.Round((header.La1 - s.Lat) / header.DY))
		if row < 0 || row >= header.NY || col < 0 || col >= header.NX {
			continue
		}
		data[row*header.NX+col] = s.Value
	}

	return model.Grid{Header: header, Data: data, Unit: unit, Name: name}
}
