// Package supervisor builds the collector fleet's shared infrastructure
// (metrics, error collector, store, fetcher) and registers every
// collector with the scheduler, gating optional ones on
// Capabilities and the fleet's DISABLE_<NAME> switches. Generalized
// from the registry-construction block of a Kubernetes agent's
// main(), which wires one collector per resource kind against a
// shared clientset; here it wires one collector per external feed
// against a shared Fetcher and Store.
package supervisor

import (
	"fmt"

	"golang.org/x/time/rate"

	"github.com/kaos-collector/kaos-collector/internal/agenterrors"
	"github.com/kaos-collector/kaos-collector/internal/collector"
	"github.com/kaos-collector/kaos-collector/internal/config"
	"github.com/kaos-collector/kaos-collector/internal/fetch"
	"github.com/kaos-collector/kaos-collector/internal/health"
	"github.com/kaos-collector/kaos-collector/internal/metrics"
	"github.com/kaos-collector/kaos-collector/internal/providers/aircraft"
	"github.com/kaos-collector/kaos-collector/internal/providers/airquality"
	"github.com/kaos-collector/kaos-collector/internal/providers/aprs"
	"github.com/kaos-collector/kaos-collector/internal/providers/aurora"
	"github.com/kaos-collector/kaos-collector/internal/providers/firms"
	"github.com/kaos-collector/kaos-collector/internal/providers/fogos"
	"github.com/kaos-collector/kaos-collector/internal/providers/gdacs"
	"github.com/kaos-collector/kaos-collector/internal/providers/gfs"
	"github.com/kaos-collector/kaos-collector/internal/providers/ionosphere"
	"github.com/kaos-collector/kaos-collector/internal/providers/ipma"
	"github.com/kaos-collector/kaos-collector/internal/providers/kiwisdr"
	"github.com/kaos-collector/kaos-collector/internal/providers/lightning"
	"github.com/kaos-collector/kaos-collector/internal/providers/ocean"
	"github.com/kaos-collector/kaos-collector/internal/providers/seismic"
	"github.com/kaos-collector/kaos-collector/internal/providers/spaceweather"
	"github.com/kaos-collector/kaos-collector/internal/scheduler"
	"github.com/kaos-collector/kaos-collector/internal/storeclient"
)

const clientName = "kaos-collector"

// Supervisor holds every piece of shared infrastructure built from a
// loaded config, ready for main to Start and, on shutdown, Stop/Wait.
type Supervisor struct {
	Scheduler *scheduler.Scheduler
	Health    *health.Server
	Metrics   *metrics.Metrics

	store storeclient.Store
}

// Build wires the whole fleet: store, fetcher, scheduler, every
// periodic and streaming collector, and the health server. It
// performs no network I/O itself; Scheduler.Start is what begins
// dialing and polling.
func Build(cfg config.Config) (*Supervisor, error) {
	m := metrics.New()
	errCollector := agenterrors.NewErrorCollector(agenterrors.RealClock{})

	// One fetch per second sustained, bursting to 5, shared by every
	// periodic provider and by the APRS collector's aprs.fi lookups;
	// the lightning and APRS-IS streams themselves bypass it since
	// each holds a single long-lived connection rather than issuing
	// repeated HTTP fetches.
	limiter := rate.NewLimiter(1, 5)
	fetcher := fetch.New(m, errCollector, limiter)

	store, err := buildStore(cfg, m, errCollector)
	if err != nil {
		return nil, fmt.Errorf("supervisor: build store: %w", err)
	}

	deps := collector.Deps{Store: store, Metrics: m, ErrorCollector: errCollector}
	sched := scheduler.New(deps)
	caps := Detect(cfg)

	registerPeriodic(sched, fetcher, cfg, caps)
	registerStreaming(sched, fetcher, deps, cfg)

	healthSrv := health.NewServer(cfg.HealthPort, m, store, sched)

	return &Supervisor{Scheduler: sched, Health: healthSrv, Metrics: m, store: store}, nil
}

// Close releases the store's underlying connection.
func (s *Supervisor) Close() error {
	return s.store.Close()
}

func buildStore(cfg config.Config, m *metrics.Metrics, errCollector *agenterrors.ErrorCollector) (storeclient.Store, error) {
	switch cfg.StoreMode {
	case config.StoreModeDirect:
		return storeclient.NewDirectStore(cfg.StoreDSN, "", 0), nil
	case config.StoreModeRemote:
		storeFetcher := fetch.New(m, errCollector, nil)
		return storeclient.NewRemoteStore(cfg.StoreURL, cfg.StoreToken, storeFetcher), nil
	default:
		return nil, fmt.Errorf("unknown store mode %q", cfg.StoreMode)
	}
}

func registerPeriodic(sched *scheduler.Scheduler, fetcher *fetch.Fetcher, cfg config.Config, caps Capabilities) {
	type single struct {
		name string
		job  collector.Job
	}
	type multi struct {
		name string
		job  collector.MultiKeyJob
	}

	var singles []single
	var multis []multi

	singles = append(singles, single{"fogos", fogos.New(fogos.NewAPI(fetcher))})
	singles = append(singles, single{"gdacs", gdacs.New(gdacs.NewAPI(fetcher))})
	singles = append(singles, single{"ipma", ipma.New(ipma.NewAPI(fetcher))})
	singles = append(singles, single{"kiwisdr", kiwisdr.New(kiwisdr.NewAPI(fetcher))})
	singles = append(singles, single{"spaceweather", spaceweather.New(spaceweather.NewAPI(fetcher))})
	singles = append(singles, single{"ionosphere", ionosphere.New(ionosphere.NewAPI(fetcher))})
	singles = append(singles, single{"aurora", aurora.New(aurora.NewAPI(fetcher))})
	singles = append(singles, single{"ocean", ocean.New(ocean.NewAPI(fetcher))})

	if caps.Aircraft {
		singles = append(singles, single{"aircraft", aircraft.New(aircraft.NewAPI(fetcher, cfg.OpenSkyClientID, cfg.OpenSkyClientSecret))})
	}
	if caps.AirQuality {
		singles = append(singles, single{"airquality", airquality.New(airquality.NewAPI(fetcher, cfg.WAQIAPIKey))})
	}
	if caps.Fire {
		singles = append(singles, single{"firms", firms.New(firms.NewAPI(fetcher, cfg.NASAFirmsAPIKey))})
	}

	multis = append(multis, multi{"seismic", seismic.New(seismic.NewAPI(fetcher), nil)})
	multis = append(multis, multi{"gfs", gfs.New(gfs.NewAPI(fetcher, cfg.GFSFetchTimeout))})

	for _, s := range singles {
		if cfg.IsDisabled(s.name) {
			continue
		}
		sched.Register(s.job)
	}
	for _, mjob := range multis {
		if cfg.IsDisabled(mjob.name) {
			continue
		}
		sched.RegisterMulti(mjob.job)
	}
}

func registerStreaming(sched *scheduler.Scheduler, fetcher *fetch.Fetcher, deps collector.Deps, cfg config.Config) {
	if !cfg.IsDisabled("lightning") {
		sched.RegisterStreaming(lightning.New(lightning.NewDialer(""), deps))
	}

	if !cfg.IsDisabled("aprs") {
		var lookup aprs.LookupAPI
		if cfg.APRSFiAPIKey != "" {
			lookup = aprs.NewLookupAPI(fetcher, cfg.APRSFiAPIKey)
		}
		sched.RegisterStreaming(aprs.New(
			aprs.NewDialer(""),
			deps,
			cfg.APRSCallsign,
			clientName,
			lookup,
			cfg.APRSWatchlist,
		))
	}
}
