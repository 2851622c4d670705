package supervisor

import (
	"testing"

	"github.com/kaos-collector/kaos-collector/internal/config"
)

func TestBuild_RegistersEveryAlwaysOnCollector(t *testing.T) {
	cfg := config.Load()
	cfg.StoreMode = config.StoreModeDirect
	cfg.StoreDSN = "localhost:0" // never dialed until Scheduler.Start

	sup, err := Build(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sup.Close()

	status := sup.Scheduler.Status()
	for _, name := range []string{"fogos", "gdacs", "ipma", "kiwisdr", "spaceweather", "ionosphere", "aurora", "ocean", "seismic", "gfs"} {
		if _, ok := status.Jobs[name]; !ok {
			t.Errorf("expected %q to be registered", name)
		}
	}

	streaming := map[string]bool{}
	for _, name := range status.Streaming {
		streaming[name] = true
	}
	if !streaming["lightning"] || !streaming["aprs"] {
		t.Errorf("expected lightning and aprs streaming collectors registered, got %v", status.Streaming)
	}
}

func TestBuild_GatesOptionalCollectorsOnCredentials(t *testing.T) {
	cfg := config.Load()
	cfg.StoreMode = config.StoreModeDirect
	cfg.StoreDSN = "localhost:0"
	cfg.WAQIAPIKey = ""
	cfg.NASAFirmsAPIKey = ""

	sup, err := Build(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sup.Close()

	status := sup.Scheduler.Status()
	if _, ok := status.Jobs["airquality"]; ok {
		t.Error("airquality should not register without WAQIAPIKey")
	}
	if _, ok := status.Jobs["firms"]; ok {
		t.Error("firms should not register without NASAFirmsAPIKey")
	}
	if _, ok := status.Jobs["aircraft"]; !ok {
		t.Error("aircraft should always register via the anonymous OpenSky endpoint")
	}
}

func TestBuild_HonorsDisabledSet(t *testing.T) {
	cfg := config.Load()
	cfg.StoreMode = config.StoreModeDirect
	cfg.StoreDSN = "localhost:0"
	cfg.Disabled = map[string]bool{"seismic": true, "lightning": true}

	sup, err := Build(cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer sup.Close()

	status := sup.Scheduler.Status()
	if _, ok := status.Jobs["seismic"]; ok {
		t.Error("seismic should be disabled")
	}
	for _, name := range status.Streaming {
		if name == "lightning" {
			t.Error("lightning should be disabled")
		}
	}
}

func TestBuild_RejectsUnknownStoreMode(t *testing.T) {
	cfg := config.Load()
	cfg.StoreMode = "bogus"

	if _, err := Build(cfg); err == nil {
		t.Error("expected error for unknown store mode")
	}
}
