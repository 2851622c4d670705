package kiwisdr

import (
	"strings"
	"testing"
)

func TestParse_ExtractsCommentEncodedAttributes(t *testing.T) {
	name := strings.Repeat("x", 250)
	html := `<html><body>
		<div class="cl-entry">
			<!-- name=` + name + ` -->
			<!-- gps=40.6190,-4.2038 -->
			<!-- users=2 -->
			<!-- users_max=8 -->
			<!-- antenna=dipole -->
			<!-- loc=Lisbon -->
			<!-- snr=18,12-20 -->
			<!-- offline=0 -->
		</div>
	</body></html>`

	coll, err := Parse([]byte(html))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coll.Stations) != 1 {
		t.Fatalf("expected 1 station, got %d", len(coll.Stations))
	}
	st := coll.Stations[0]
	if len(st.Name) != 200 {
		t.Errorf("expected name truncated to 200 chars, got %d", len(st.Name))
	}
	if st.Lat != 40.6190 || st.Lon != -4.2038 {
		t.Errorf("expected GPS (40.6190, -4.2038), got (%v, %v)", st.Lat, st.Lon)
	}
	if st.SNR != 18 {
		t.Errorf("expected SNR 18 (first of pair), got %v", st.SNR)
	}
	if st.Offline {
		t.Error("expected offline=false")
	}
}
