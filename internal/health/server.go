// Package health implements a loopback-only HTTP surface exposing
// /health (uptime, store reachability, scheduler status) and /metrics.
package health

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kaos-collector/kaos-collector/internal/metrics"
	"github.com/kaos-collector/kaos-collector/internal/scheduler"
)

// Pinger reports store reachability, implemented by storeclient.Store.
type Pinger interface {
	Ping(ctx context.Context) bool
}

// StatusProvider reports the scheduler's status() snapshot,
// implemented by *scheduler.Scheduler.
type StatusProvider interface {
	Status() scheduler.Status
}

// Server exposes /health and /metrics on a configurable loopback port.
// No authentication: the endpoint is meant to bind to loopback or a
// supervisor network only, never a public interface.
type Server struct {
	httpServer *http.Server
	listener   net.Listener
	store      Pinger
	scheduler  StatusProvider
	startedAt  time.Time

	mu                     sync.Mutex
	consecutiveFailedPings int
}

// NewServer creates a Server bound to 127.0.0.1:port. Pass port=0 to
// let the OS pick a free port (used by tests).
func NewServer(port int, m *metrics.Metrics, store Pinger, sched StatusProvider) *Server {
	s := &Server{
		store:     store,
		scheduler: sched,
		startedAt: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))

	s.httpServer = &http.Server{
		Addr:           fmt.Sprintf("127.0.0.1:%d", port),
		Handler:        mux,
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	return s
}

// Start begins listening and serving HTTP in a background goroutine.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return fmt.Errorf("health server listen: %w", err)
	}
	s.listener = ln
	s.httpServer.Addr = ln.Addr().String()

	go func() {
		if err := s.httpServer.Serve(ln); err != nil && err != http.ErrServerClosed {
			_ = err
		}
	}()
	return nil
}

// Addr returns the actual listen address, useful when NewServer was
// given port=0.
func (s *Server) Addr() string {
	return s.httpServer.Addr
}

// Stop gracefully shuts down the HTTP server.
func (s *Server) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

type healthBody struct {
	Uptime    float64          `json:"uptime"`
	RedisOK   bool             `json:"redis_ok"`
	Scheduler scheduler.Status `json:"scheduler"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ok := s.store.Ping(r.Context())

	s.mu.Lock()
	if ok {
		s.consecutiveFailedPings = 0
	} else {
		s.consecutiveFailedPings++
	}
	failed := s.consecutiveFailedPings
	s.mu.Unlock()

	body := healthBody{
		Uptime:    time.Since(s.startedAt).Seconds(),
		RedisOK:   ok,
		Scheduler: s.scheduler.Status(),
	}

	w.Header().Set("Content-Type", "application/json")
	if failed > 2 {
		w.WriteHeader(http.StatusServiceUnavailable)
	} else {
		w.WriteHeader(http.StatusOK)
	}
	_ = json.NewEncoder(w).Encode(body)
}
