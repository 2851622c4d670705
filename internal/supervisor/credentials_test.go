package supervisor

import (
	"testing"

	"github.com/kaos-collector/kaos-collector/internal/config"
)

func TestDetect_GatesOnCredentialPresence(t *testing.T) {
	caps := Detect(config.Config{})
	if !caps.Aircraft {
		t.Error("expected aircraft to always be available via the anonymous endpoint")
	}
	if caps.AirQuality || caps.Fire || caps.AprsLookup {
		t.Errorf("expected credential-gated collectors off with no credentials, got %+v", caps)
	}

	caps = Detect(config.Config{WAQIAPIKey: "k", NASAFirmsAPIKey: "k", APRSFiAPIKey: "k"})
	if !caps.AirQuality || !caps.Fire || !caps.AprsLookup {
		t.Errorf("expected credential-gated collectors on once keys are present, got %+v", caps)
	}
}
