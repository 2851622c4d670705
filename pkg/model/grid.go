package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// GridHeader describes a regular lat/lon grid. Lo1/La1 is the
// north-west corner; values are row-major with latitude decreasing
// (north to south) and longitude increasing.
// Lo1 is carried in whatever convention the provider used (0..360 or
// -180..180) and is never normalized — only point-feed longitudes are.
type GridHeader struct {
	NX  int     `json:"nx"`
	NY  int     `json:"ny"`
	Lo1 float64 `json:"lo1"`
	La1 float64 `json:"la1"`
	DX  float64 `json:"dx"`
	DY  float64 `json:"dy"`
}

// Cells returns NX*NY, the expected length of a conforming Data slice.
func (h GridHeader) Cells() int { return h.NX * h.NY }

// GridData is a row-major slice of grid values. NaN marshals as JSON
// null and unmarshals back from null (or from any JSON number),
// so readers can tolerate both forms.
type GridData []float64

// MarshalJSON encodes NaN and other non-finite values as null.
func (d GridData) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, v := range d {
		if i > 0 {
			buf.WriteByte(',')
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			buf.WriteString("null")
			continue
		}
		buf.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes null entries back to NaN.
func (d *GridData) UnmarshalJSON(b []byte) error {
	var raw []*float64
	if err := json.Unmarshal(b, &raw); err != nil {
		return fmt.Errorf("model: decoding grid data: %w", err)
	}
	out := make(GridData, len(raw))
	for i, v := range raw {
		if v == nil {
			out[i] = math.NaN()
			continue
		}
		out[i] = *v
	}
	*d = out
	return nil
}

// Grid is the regular-gridded-field snapshot shape: GFS variables,
// SST, UV index, aurora, TEC.
type Grid struct {
	Header GridHeader `json:"header"`
	Data   GridData   `json:"data"`
	Unit   string     `json:"unit"`
	Name   string     `json:"name"`
}

// Conforms reports whether Data's length matches Header's declared
// cell count.
func (g Grid) Conforms() bool { return len(g.Data) == g.Header.Cells() }

// VectorField is exactly two grid components, U east-positive and V
// north-positive, sharing the same units as noted per-feed.
type VectorField struct {
	U Grid `json:"u"`
	V Grid `json:"v"`
}
