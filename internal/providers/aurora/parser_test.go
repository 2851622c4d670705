package aurora

import (
	"math"
	"testing"
)

func TestParse_ReshapesTripletsAndFillsMissingCellsWithNaN(t *testing.T) {
	raw := []byte(`{"coordinates":[[0,90,0.1],[180,0,0.8]]}`)

	grid, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !grid.Conforms() {
		t.Fatalf("expected grid to conform, data len %d header cells %d", len(grid.Data), grid.Header.Cells())
	}
	if grid.Data[0] != 0.1 {
		t.Errorf("expected cell 0 to be 0.1, got %v", grid.Data[0])
	}

	var nanCount int
	for _, v := range grid.Data {
		if math.IsNaN(v) {
			nanCount++
		}
	}
	if nanCount != len(grid.Data)-2 {
		t.Errorf("expected all but 2 cells NaN, got %d of %d", nanCount, len(grid.Data))
	}
}
