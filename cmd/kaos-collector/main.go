package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/KimMachineGun/automemlimit"
	_ "go.uber.org/automaxprocs"

	"github.com/kaos-collector/kaos-collector/internal/config"
	"github.com/kaos-collector/kaos-collector/internal/logging"
	"github.com/kaos-collector/kaos-collector/internal/supervisor"
)

// shutdownDeadline bounds how long in-flight periodic collector runs
// get to finish once a shutdown signal arrives.
const shutdownDeadline = 10 * time.Second

func main() {
	// 1. Load and validate config.
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logging.Configure(cfg.LogLevel)

	// 2. Create context with signal handling.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-sigCh
		slog.Info("shutdown signal received", "signal", sig)
		cancel()
	}()

	slog.Info("kaos-collector starting",
		"store_mode", cfg.StoreMode,
		"health_port", cfg.HealthPort,
	)

	// 3. Build shared infrastructure and register every collector.
	sup, err := supervisor.Build(cfg)
	if err != nil {
		slog.Error("failed to build supervisor", "error", err)
		os.Exit(1)
	}

	// 4. Start the health server.
	if err := sup.Health.Start(); err != nil {
		slog.Error("failed to start health server", "error", err)
		os.Exit(1)
	}

	// 5. Start every streaming collector and the periodic dispatch loop.
	sup.Scheduler.Start(ctx)

	// 6. Block until a shutdown signal arrives.
	<-ctx.Done()

	// 7. Graceful shutdown: stop dispatching, drain in-flight runs under
	// a hard deadline, stop the health server, release the store.
	sup.Scheduler.Stop()

	waitCtx, waitCancel := context.WithTimeout(context.Background(), shutdownDeadline)
	defer waitCancel()
	sup.Scheduler.Wait(waitCtx)

	healthCtx, healthCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer healthCancel()
	if err := sup.Health.Stop(healthCtx); err != nil {
		slog.Error("health server shutdown error", "error", err)
	}

	if err := sup.Close(); err != nil {
		slog.Error("store close error", "error", err)
	}

	slog.Info("kaos-collector stopped")
}
