package ionosphere

import (
	"math"
	"testing"
)

func TestParse_ReshapesSamplesAndFillsMissingCellsWithNaN(t *testing.T) {
	raw := []byte(`[{"lat":87.5,"lon":-180,"tec":12.3},{"lat":0,"lon":0,"tec":45.6}]`)

	grid, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !grid.Conforms() {
		t.Fatalf("expected grid data length %d to match header cells %d", len(grid.Data), grid.Header.Cells())
	}

	if grid.Data[0] != 12.3 {
		t.Errorf("expected cell 0 to be 12.3, got %v", grid.Data[0])
	}

	var nanCount int
	for _, v := range grid.Data {
		if math.IsNaN(v) {
			nanCount++
		}
	}
	if nanCount != len(grid.Data)-2 {
		t.Errorf("expected all but 2 cells to be NaN, got %d NaN cells out of %d", nanCount, len(grid.Data))
	}
}

func TestParse_RejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
