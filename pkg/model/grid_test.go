package model

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGridDataNaNRoundTrip(t *testing.T) {
	g := Grid{
		Header: GridHeader{NX: 2, NY: 2, Lo1: -10, La1: 50, DX: 0.25, DY: 0.25},
		Data:   GridData{1.5, math.NaN(), 3.25, math.NaN()},
		Unit:   "degC",
		Name:   "temperature",
	}
	require.True(t, g.Conforms())

	b, err := json.Marshal(g)
	require.NoError(t, err)
	require.Contains(t, string(b), `[1.5,null,3.25,null]`)

	var out Grid
	require.NoError(t, json.Unmarshal(b, &out))
	require.Len(t, out.Data, 4)
	require.Equal(t, 1.5, out.Data[0])
	require.True(t, math.IsNaN(out.Data[1]))
	require.Equal(t, 3.25, out.Data[2])
	require.True(t, math.IsNaN(out.Data[3]))
}

func TestGridConformance(t *testing.T) {
	g := Grid{Header: GridHeader{NX: 3, NY: 2}, Data: GridData{1, 2, 3, 4, 5}}
	require.False(t, g.Conforms())
	g.Data = append(g.Data, 6)
	require.True(t, g.Conforms())
}
