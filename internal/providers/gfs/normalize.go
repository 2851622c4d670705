package gfs

import (
	"github.com/kaos-collector/kaos-collector/internal/providers/gfs/grib"
	"github.com/kaos-collector/kaos-collector/pkg/model"
)

// gridHeaderFrom converts a decoded GRIB2 grid definition into the
// snapshot grid header shape. The GFS feed's native 0..360° longitude
// convention is preserved in Lo1, not normalized, per the grid-header
// contract.
func gridHeaderFrom(g grib.GridDefinition) model.GridHeader {
	return model.GridHeader{
		NX: g.NX, NY: g.NY,
		Lo1: g.Lo1, La1: g.La1,
		DX: g.Dx, DY: g.Dy,
	}
}

// toGrid normalizes a decoded GRIB2 message into a snapshot grid,
// applying sc's per-value transform if any.
func toGrid(msg grib.Message, sc subCollection) model.Grid {
	header := gridHeaderFrom(msg.Grid)
	data := make(model.GridData, len(msg.Values))
	for i, v := range msg.Values {
		if sc.transform != nil {
			v = sc.transform(v)
		}
		data[i] = v
	}
	return model.Grid{Header: header, Data: data, Unit: sc.unit, Name: sc.key}
}

// findMessage returns the first message matching sc's (category,
// parameter) pair, or false if none was decoded.
func findMessage(messages []grib.Message, sc subCollection) (grib.Message, bool) {
	for _, m := range messages {
		if m.Matches(sc.category, sc.parameter) {
			return m, true
		}
	}
	return grib.Message{}, false
}
