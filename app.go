package travelregistry

import (
	"fmt"
	"sync"
	"time"

	"github.com/theoremus-urban-solutions/travel-registry/config"
	"github.com/theoremus-urban-solutions/travel-registry/ingest"
	"github.com/theoremus-urban-solutions/travel-registry/internal/metrics"
	"github.com/theoremus-urban-solutions/travel-registry/persist"
	"github.com/theoremus-urban-solutions/travel-registry/registry"
)

// App wires the registry to its collaborators: the snapshot store, the
// CSV ingest directory, and the metrics registry. The registry itself is
// single-writer, so every request handler goes through mu.
type App struct {
	mu       sync.Mutex
	Registry *registry.Registry
	Metrics  *metrics.Registry
	Store    *persist.Store
}

// NewApp builds the application from configuration: opens the snapshot
// store, replays it into a fresh registry, and loads any CSV records
// from the ingest directory.
func NewApp(cfg config.AppConfig) (*App, error) {
	reg := registry.New(registry.Options{
		MinStopover: time.Duration(cfg.Search.MinStopoverMinutes) * time.Minute,
		MaxStopover: time.Duration(cfg.Search.MaxStopoverMinutes) * time.Minute,
	})
	app := &App{Registry: reg, Metrics: metrics.NewRegistry()}

	if cfg.Storage.Path != "" {
		store, err := persist.Open(cfg.Storage.Path)
		if err != nil {
			return nil, fmt.Errorf("open snapshot store: %w", err)
		}
		if err := store.Load(reg); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("load snapshot: %w", err)
		}
		app.Store = store
	}

	if cfg.Ingest.DataDir != "" {
		loaded, err := ingest.LoadDir(cfg.Ingest.DataDir, reg)
		if err != nil {
			return nil, fmt.Errorf("ingest %s: %w", cfg.Ingest.DataDir, err)
		}
		app.Metrics.LegsIngested.Add(float64(loaded.Legs))
		app.Metrics.AccountsIngested.Add(float64(loaded.Accounts))
	}
	return app, nil
}

// Snapshot persists the current registry state, if a store is configured.
func (a *App) Snapshot() error {
	if a.Store == nil {
		return nil
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.Store.Save(a.Registry)
}

// Close snapshots and releases the store.
func (a *App) Close() error {
	if err := a.Snapshot(); err != nil {
		return err
	}
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
