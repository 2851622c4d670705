package ocean

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

func (f *fakeAPI) FetchCurrents(ctx context.Context) ([]byte, error) { return f.raw, f.err }

func TestCollector_PublishesConformingVectorField(t *testing.T) {
	api := &fakeAPI{raw: []byte(`{"table":{"columnNames":["time","latitude","longitude","u","v"],"rows":[
		["2026-07-30T00:00:00Z", 0, 0, 0.3, -0.1]
	]}}`)}
	c := New(api)

	raw, err := c.Collect(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var env struct {
		Payload model.VectorField `json:"payload"`
	}
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !env.Payload.U.Conforms() {
		t.Error("expected published U grid to conform to its header")
	}
}
