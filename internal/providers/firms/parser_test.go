package firms

import "testing"

func TestParse_DropsRowsWithUnparsableCoordinates(t *testing.T) {
	raw := []byte("latitude,longitude,bright_ti4,scan,track,acq_date,acq_time,satellite,instrument,confidence,version,bright_ti5,frp,daynight\n" +
		"38.7,-9.1,330.5,0.4,0.4,2026-07-30,1345,N,VIIRS,n,2.0NRT,290.1,12.3,D\n" +
		",,300,0.4,0.4,2026-07-30,1345,N,VIIRS,n,2.0NRT,290.1,12.3,D\n")

	coll, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coll.Points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(coll.Points))
	}
	p := coll.Points[0]
	if p.Lat != 38.7 || p.Lon != -9.1 {
		t.Errorf("expected (38.7, -9.1), got (%v, %v)", p.Lat, p.Lon)
	}
	if p.Fields["confidence"] != "n" {
		t.Errorf("expected confidence n, got %v", p.Fields["confidence"])
	}
	if p.Time.Year() != 2026 || p.Time.Hour() != 13 || p.Time.Minute() != 45 {
		t.Errorf("expected acquired time 2026-07-30 13:45, got %v", p.Time)
	}
}

func TestParse_EmptyBodyProducesEmptyCollection(t *testing.T) {
	coll, err := Parse([]byte(""))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coll.Points) != 0 {
		t.Errorf("expected 0 points, got %d", len(coll.Points))
	}
}
