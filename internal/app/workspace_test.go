package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aalvaropc/shipquote/internal/domain"
	"github.com/aalvaropc/shipquote/internal/infra/orderstore"
	"github.com/aalvaropc/shipquote/internal/infra/sqlitestore"
	"github.com/aalvaropc/shipquote/internal/usecase"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "shipquote.yaml"), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return root
}

func TestOpen_JSONDriver(t *testing.T) {
	root := writeConfig(t, "shipquote:\n  store:\n    on_corrupt: fail\n")

	ws, err := Open(root, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ws.Close()

	js, ok := ws.Store.(*orderstore.JSONStore)
	if !ok {
		t.Fatalf("expected JSON store, got %T", ws.Store)
	}
	if js.Policy() != domain.CorruptFail || js.Path() != filepath.Join(root, "orders.json") {
		t.Fatalf("unexpected store %s %s", js.Path(), js.Policy())
	}
}

func TestOpen_SQLiteDriverUsesDBFile(t *testing.T) {
	root := writeConfig(t, "shipquote:\n  store:\n    driver: sqlite\n")

	ws, err := Open(root, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}

	s, ok := ws.Store.(*sqlitestore.Store)
	if !ok {
		t.Fatalf("expected sqlite store, got %T", ws.Store)
	}
	if s.Path() != filepath.Join(root, "orders.db") {
		t.Fatalf("unexpected db path %s", s.Path())
	}
	if err := ws.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := ws.Close(); err != nil {
		t.Fatalf("second Close should be a no-op: %v", err)
	}
}

func TestOpen_RatesReachUseCases(t *testing.T) {
	root := writeConfig(t, "shipquote:\n  shipping:\n    standard:\n      base: 6000\n")
	ws, err := Open(root, nil)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer ws.Close()

	spec := domain.OrderSpec{
		Name:         "one",
		Products:     []domain.Product{domain.MustProduct("Mouse gamer", 35000)},
		ShippingKind: "standard",
	}
	q, err := usecase.NewPlaceOrder(ws.Orders, ws.Store, ws.PricingOptions()...).
		ExecuteSpec(context.Background(), spec, usecase.PlaceOrderOptions{})
	if err != nil {
		t.Fatalf("ExecuteSpec: %v", err)
	}
	if got := q.Record.TotalCost.String(); got != "41000" {
		t.Fatalf("expected configured rate in total, got %s", got)
	}
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	_, _, err := OpenStore(t.TempDir(), domain.StoreConfig{Driver: "mongo"}, nil)
	if !domain.IsKind(err, domain.KindInvalidConfig) {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}

func TestOpen_MissingConfig(t *testing.T) {
	if _, err := Open(t.TempDir(), nil); !domain.IsKind(err, domain.KindNotFound) {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestLoad_DoesNotOpenStore(t *testing.T) {
	root := writeConfig(t, "shipquote:\n  store:\n    driver: sqlite\n")

	ws, err := Load(root, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ws.Store != nil {
		t.Fatalf("expected no store, got %T", ws.Store)
	}
	if ws.Orders == nil || ws.Config.Store.Driver != domain.DriverSQLite {
		t.Fatalf("unexpected workspace %+v", ws)
	}
	if _, err := os.Stat(filepath.Join(root, "orders.db")); !os.IsNotExist(err) {
		t.Fatalf("expected no orders.db, stat err=%v", err)
	}
	if err := ws.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}
