package health

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kaos-collector/kaos-collector/internal/metrics"
	"github.com/kaos-collector/kaos-collector/internal/scheduler"
)

type mockPinger struct {
	ok bool
}

func (m *mockPinger) Ping(ctx context.Context) bool { return m.ok }

type mockStatusProvider struct {
	status scheduler.Status
}

func (m *mockStatusProvider) Status() scheduler.Status { return m.status }

func newTestServer(t *testing.T, ping bool) (*Server, *mockPinger) {
	t.Helper()
	p := &mockPinger{ok: ping}
	sp := &mockStatusProvider{status: scheduler.Status{Running: true, Jobs: map[string]scheduler.JobStatus{}, Streaming: []string{"lightning"}}}
	return NewServer(0, metrics.New(), p, sp), p
}

func doHealth(s *Server) *http.Response {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)
	return w.Result()
}

func TestHealth_OK(t *testing.T) {
	s, _ := newTestServer(t, true)
	resp := doHealth(s)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	var got healthBody
	if err := json.Unmarshal(body, &got); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if !got.RedisOK {
		t.Fatal("expected redis_ok=true")
	}
	if !got.Scheduler.Running {
		t.Fatal("expected scheduler.running=true")
	}
}

func TestHealth_TwoFailedPingsStillOK(t *testing.T) {
	s, _ := newTestServer(t, false)

	for i := 0; i < 2; i++ {
		resp := doHealth(s)
		resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("ping %d: expected 200 within the first two failures, got %d", i+1, resp.StatusCode)
		}
	}
}

func TestHealth_ThirdConsecutiveFailedPingIs503(t *testing.T) {
	s, _ := newTestServer(t, false)

	var last *http.Response
	for i := 0; i < 3; i++ {
		last = doHealth(s)
		if i < 2 {
			last.Body.Close()
		}
	}
	defer last.Body.Close()

	if last.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 on the third consecutive failed ping, got %d", last.StatusCode)
	}
}

func TestHealth_SuccessResetsFailureStreak(t *testing.T) {
	s, p := newTestServer(t, false)

	doHealth(s).Body.Close()
	doHealth(s).Body.Close()
	p.ok = true
	doHealth(s).Body.Close()
	p.ok = false

	resp := doHealth(s)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected a success in between to reset the failure streak, got %d", resp.StatusCode)
	}
}

func TestMetrics(t *testing.T) {
	s, _ := newTestServer(t, true)
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	w := httptest.NewRecorder()
	s.httpServer.Handler.ServeHTTP(w, req)

	resp := w.Result()
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "kaos_") {
		t.Fatal("expected Prometheus metrics containing the kaos_ prefix")
	}
}

func TestServerStartStop(t *testing.T) {
	s, _ := newTestServer(t, true)

	if err := s.Start(); err != nil {
		t.Fatalf("failed to start server: %v", err)
	}
	time.Sleep(50 * time.Millisecond)

	resp, err := http.Get("http://" + s.Addr() + "/health")
	if err != nil {
		t.Fatalf("failed to reach server: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Stop(ctx); err != nil {
		t.Fatalf("failed to stop server: %v", err)
	}
}
