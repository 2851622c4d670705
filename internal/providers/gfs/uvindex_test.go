package gfs

import (
	"math"
	"testing"
	"time"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

func TestMadronichUVIndex_ZeroPastHorizon(t *testing.T) {
	if uv := madronichUVIndex(95, 300); uv != 0 {
		t.Errorf("expected 0 for zenith >= 90, got %v", uv)
	}
}

func TestMadronichUVIndex_NaNForNonPositiveOzone(t *testing.T) {
	if uv := madronichUVIndex(10, 0); !math.IsNaN(uv) {
		t.Errorf("expected NaN for non-positive ozone, got %v", uv)
	}
}

func TestMadronichUVIndex_PositiveAtNoonEquator(t *testing.T) {
	uv := madronichUVIndex(0, 300)
	if uv <= 0 {
		t.Errorf("expected a positive UV index directly overhead, got %v", uv)
	}
}

func TestDeriveUVIndex_ProducesConformingGrid(t *testing.T) {
	header := model.GridHeader{NX: 4, NY: 3, Lo1: -180, La1: 60, DX: 90, DY: 60}
	grid := DeriveUVIndex(header, time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC))

	if !grid.Conforms() {
		t.Fatalf("expected grid to conform, got %d values for %d cells", len(grid.Data), header.Cells())
	}
	for _, v := range grid.Data {
		if v < 0 && !math.IsNaN(v) {
			t.Errorf("expected no negative UV index values, got %v", v)
		}
	}
}

func TestNormalizeLongitude_Wraps0To360IntoSigned(t *testing.T) {
	cases := map[float64]float64{0: 0, 180: -180, 270: -90, 359: -1, -180: -180}
	for in, want := range cases {
		if got := normalizeLongitude(in); math.Abs(got-want) > 1e-9 {
			t.Errorf("normalizeLongitude(%v) = %v, want %v", in, got, want)
		}
	}
}
