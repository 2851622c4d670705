package airquality

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/kaos-collector/kaos-collector/pkg/model"
)

type fakeAPI struct {
	raw []byte
	err error
}

func (f *fakeAPI) FetchStations(ctx context.Context) ([]byte, error) { return f.raw, f.err }

func TestCollector_PublishesParsedStations(t *testing.T) {
	api := &fakeAPI{raw: []byte(`{"status":"ok","data":[{"lat":1,"lon":2,"aqi":"10","station":{"name":"x"}}]}`)}
	c := New(api)

	raw, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var env struct {
		Payload model.PointCollection `json:"payload"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(env.Payload.Points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(env.Payload.Points))
	}
}
