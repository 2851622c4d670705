package gfs

import (
	"strings"
	"testing"
	"time"
)

func TestFilterURL_EncodesCycleAndSelectors(t *testing.T) {
	cycle := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	u := FilterURL(cycle, 1, []string{"var_TMP"}, []string{"lev_2_m_above_ground"})

	for _, want := range []string{"file=gfs.t12z.pgrb2.0p25.f001", "var_TMP=on", "lev_2_m_above_ground=on", "dir=%2Fgfs.20260730%2F12%2Fatmos"} {
		if !strings.Contains(u, want) {
			t.Errorf("expected URL to contain %q, got %s", want, u)
		}
	}
}
