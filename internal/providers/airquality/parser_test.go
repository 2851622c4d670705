package airquality

import "testing"

func TestParse_DropsStationsWithPlaceholderAQI(t *testing.T) {
	raw := []byte(`{"status":"ok","data":[
		{"lat":38.7,"lon":-9.1,"aqi":"42","station":{"name":"Lisbon"}},
		{"lat":40.4,"lon":-3.7,"aqi":"-","station":{"name":"Madrid"}}
	]}`)

	coll, err := Parse(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coll.Points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(coll.Points))
	}
	if coll.Points[0].Fields["aqi"] != 42 {
		t.Errorf("expected aqi 42, got %v", coll.Points[0].Fields["aqi"])
	}
}

func TestParse_RejectsMalformedJSON(t *testing.T) {
	if _, err := Parse([]byte(`not json`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}
