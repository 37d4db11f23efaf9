// Package app wires a workspace's configuration to its loaders and store so
// every entry point (CLI, HTTP server, TUI) prices orders the same way.
package app

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aalvaropc/shipquote/internal/domain"
	"github.com/aalvaropc/shipquote/internal/infra/orderstore"
	"github.com/aalvaropc/shipquote/internal/infra/sqlitestore"
	"github.com/aalvaropc/shipquote/internal/infra/workspacefinder"
	"github.com/aalvaropc/shipquote/internal/infra/yamlorder"
	"github.com/aalvaropc/shipquote/internal/ports"
	"github.com/aalvaropc/shipquote/internal/usecase"
)

// Workspace is an opened workspace. Close releases the store.
type Workspace struct {
	Root   string
	Config domain.Config

	Orders ports.OrderLoader
	Store  ports.OrderStore
	Log    *slog.Logger

	closeStore func() error
}

// Load reads shipquote.yaml from root and wires the order loader. The store
// is not opened: Store is nil.
func Load(root string, log *slog.Logger) (*Workspace, error) {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	cfg, err := workspacefinder.LoadConfig(root)
	if err != nil {
		return nil, err
	}

	return &Workspace{
		Root:   root,
		Config: cfg,
		Orders: yamlorder.NewLoader(yamlorder.WithOrdersDir(cfg.OrdersDir)),
		Log:    log,
	}, nil
}

// Open is Load plus the store selected by store.driver.
func Open(root string, log *slog.Logger) (*Workspace, error) {
	ws, err := Load(root, log)
	if err != nil {
		return nil, err
	}
	cfg := ws.Config
	log = ws.Log

	store, closeStore, err := OpenStore(root, cfg.Store, log)
	if err != nil {
		return nil, err
	}

	log.Debug("workspace.opened",
		"root", root,
		"driver", string(cfg.Store.Driver),
		"store_path", cfg.Store.Path,
		"on_corrupt", string(cfg.Store.OnCorrupt),
	)

	ws.Store = store
	ws.closeStore = closeStore
	return ws, nil
}

// OpenStore builds the OrderStore selected by cfg.Driver.
func OpenStore(root string, cfg domain.StoreConfig, log *slog.Logger) (ports.OrderStore, func() error, error) {
	noop := func() error { return nil }

	switch cfg.Driver {
	case domain.DriverJSON, "":
		return orderstore.NewJSONStore(root, cfg, orderstore.WithLogger(log)), noop, nil

	case domain.DriverSQLite:
		if cfg.Path == "" || cfg.Path == domain.DefaultConfig().Store.Path {
			cfg.Path = "orders.db"
		}
		s, err := sqlitestore.Open(root, cfg, sqlitestore.WithLogger(log))
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil

	default:
		return nil, nil, &domain.OpError{
			Op:   "app.openstore",
			Kind: domain.KindInvalidConfig,
			Err:  fmt.Errorf("unsupported store driver %q: %w", cfg.Driver, domain.ErrInvalidConfig),
		}
	}
}

// PricingOptions configures use cases with the workspace's rates and logger.
func (w *Workspace) PricingOptions() []usecase.Option {
	return []usecase.Option{
		usecase.WithRates(w.Config.Shipping),
		usecase.WithLogger(w.Log),
	}
}

func (w *Workspace) Close() error {
	if w == nil || w.closeStore == nil {
		return nil
	}
	err := w.closeStore()
	w.closeStore = nil
	if err != nil {
		return errors.Join(errors.New("close store"), err)
	}
	return nil
}
