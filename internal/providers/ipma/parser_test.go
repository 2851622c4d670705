package ipma

import (
	"testing"
	"time"
)

func TestParse_FiltersGreenAndExpiredThenSortsBySeverity(t *testing.T) {
	now := time.Date(2026, 7, 30, 12, 0, 0, 0, time.UTC)
	future := now.Add(24 * time.Hour).Format(time.RFC3339)
	past := now.Add(-24 * time.Hour).Format(time.RFC3339)

	raw := []byte(`[
		{"idAreaAviso":"LSB","awarenessTypeName":"Wind","awarenessLevelID":"1","startTime":"` + now.Format(time.RFC3339) + `","endTime":"` + future + `"},
		{"idAreaAviso":"LSB","awarenessTypeName":"Rain","awarenessLevelID":"3","startTime":"` + now.Format(time.RFC3339) + `","endTime":"` + future + `"},
		{"idAreaAviso":"LSB","awarenessTypeName":"Fog","awarenessLevelID":"0","startTime":"` + now.Format(time.RFC3339) + `","endTime":"` + future + `"},
		{"idAreaAviso":"LSB","awarenessTypeName":"Heat","awarenessLevelID":"2","startTime":"` + now.Format(time.RFC3339) + `","endTime":"` + past + `"}
	]`)

	coll, err := Parse(raw, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(coll.Areas) != 1 {
		t.Fatalf("expected 1 area, got %d", len(coll.Areas))
	}
	area := coll.Areas[0]
	if len(area.Warnings) != 2 {
		t.Fatalf("expected green and expired entries dropped, got %d warnings", len(area.Warnings))
	}
	if area.OverallSeverity != "red" {
		t.Fatalf("expected overall severity red (highest), got %q", area.OverallSeverity)
	}
	if area.Warnings[0].Severity != "red" || area.Warnings[1].Severity != "yellow" {
		t.Fatalf("expected red before yellow, got %v", area.Warnings)
	}
}
