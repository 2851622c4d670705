package decode

import (
	"math"
	"testing"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

func TestAssembleGrid_PlacesSamplesAndFillsGaps(t *testing.T) {
	header := model.GridHeader{NX: 2, NY: 2, Lo1: 0, La1: 10, DX: 10, DY: 10}
	samples := []GridSample{
		{Lat: 10, Lon: 0, Value: 1},
		{Lat: 0, Lon: 10, Value: 2},
	}

	g := AssembleGrid(samples, header, "u", "m/s")

	if !g.Conforms() {
		t.Fatalf("expected grid to conform, got %d cells for %d declared", len(g.Data), g.Header.Cells())
	}
	if g.Data[0] != 1 {
		t.Errorf("expected top-left cell = 1, got %v", g.Data[0])
	}
	if g.Data[3] != 2 {
		t.Errorf("expected bottom-right cell = 2, got %v", g.Data[3])
	}
	if !math.IsNaN(g.Data[1]) || !math.IsNaN(g.Data[2]) {
		t.Errorf("expected untouched cells to be NaN, got %v", g.Data)
	}
}

func TestAssembleGrid_DropsOutOfBoundsSamples(t *testing.T) {
	header := model.GridHeader{NX: 1, NY: 1, Lo1: 0, La1: 0, DX: 1, DY: 1}
	g := AssembleGrid([]GridSample{{Lat: 50, Lon: 50, Value: 9}}, header, "u", "m/s")

	if !math.IsNaN(g.Data[0]) {
		t.Errorf("expected out-of-bounds sample dropped, got %v", g.Data[0])
	}
}
