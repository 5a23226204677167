package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/cnsrgl/stock-gestion-codeon/internal/catalog"
	"github.com/cnsrgl/stock-gestion-codeon/internal/config"
	"github.com/cnsrgl/stock-gestion-codeon/internal/engine"
	"github.com/cnsrgl/stock-gestion-codeon/internal/license"
	"github.com/cnsrgl/stock-gestion-codeon/internal/store"
)

// catalogStore is the full store surface the CLI needs. Satisfied by
// both store.Store (SQLite) and store.MemoryStore.
type catalogStore interface {
	engine.ProductStore
	engine.CounterStore
	ListProducts(ctx context.Context) ([]*catalog.Product, error)
	RecentChanges(ctx context.Context, limit int) ([]catalog.Change, error)
	ChangeCount(ctx context.Context) (int64, error)
	ImportProducts(ctx context.Context, products []*catalog.Product) error
	Close() error
}

// openStore opens the SQLite database named by --db, or an in-memory
// store when the flag is empty.
func openStore(opts *RootOptions) (catalogStore, error) {
	if opts.Database == "" {
		slog.Debug("using in-memory store")
		return store.NewMemoryStore(), nil
	}

	slog.Debug("opening database", "path", opts.Database)
	s, err := store.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "open database", err)
	}
	return s, nil
}

// loadSettings reads the config file named by --config.
func loadSettings(opts *RootOptions) (config.Settings, error) {
	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Settings{}, WrapExitError(ExitCommandError, "load settings", err)
	}
	return settings, nil
}

// buildEngine wires the engine: license client, usage gate seeded with
// the persisted change count, classifier configuration.
func buildEngine(ctx context.Context, s catalogStore, settings config.Settings) (*engine.Engine, error) {
	count, err := s.ChangeCount(ctx)
	if err != nil {
		return nil, fmt.Errorf("load change count: %w", err)
	}

	validator := license.NewClient(
		license.WithEndpoint(settings.LicenseEndpoint),
		license.WithProductID(settings.LicenseProductID),
	)
	gate := engine.NewUsageGate(validator,
		engine.WithInitialCount(count),
		engine.WithCounterStore(s),
	)

	return engine.New(s, gate,
		engine.WithThresholds(settings.Thresholds()),
		engine.WithColors(settings.Colors()),
		engine.WithLicenseKey(settings.LicenseKey),
	), nil
}
