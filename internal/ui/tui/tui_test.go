package tui

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/shipquote/internal/domain"
	"github.com/aalvaropc/shipquote/internal/usecase"
)

func sampleQuotes() []usecase.ShippingQuote {
	return []usecase.ShippingQuote{
		{Kind: "standard", ShippingCost: domain.NewAmount(5000), TotalCost: domain.NewAmount(40000), DeliveryTime: "5-7 business days"},
		{Kind: "drone", ShippingCost: domain.NewAmount(50000), TotalCost: domain.NewAmount(85000), DeliveryTime: "2-4 hours"},
	}
}

func TestClampString(t *testing.T) {
	if got := clampString("shipquote", 4); got != "ship…" {
		t.Fatalf("clampString = %q", got)
	}
	if got := clampString("abc", 10); got != "abc" {
		t.Fatalf("clampString = %q", got)
	}
	if got := clampString("abc", 0); got != "" {
		t.Fatalf("clampString = %q", got)
	}
}

func TestMoveCursor(t *testing.T) {
	cases := []struct{ cur, delta, n, want int }{
		{0, -1, 4, 0},
		{0, 1, 4, 1},
		{3, 1, 4, 3},
		{2, -1, 4, 1},
		{5, 1, 0, 0},
	}
	for _, c := range cases {
		if got := moveCursor(c.cur, c.delta, c.n); got != c.want {
			t.Errorf("moveCursor(%d,%d,%d) = %d, want %d", c.cur, c.delta, c.n, got, c.want)
		}
	}
}

func TestRenderQuotes_MarksCursor(t *testing.T) {
	out := renderQuotes(sampleQuotes(), 1)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %q", out)
	}
	if !strings.HasPrefix(lines[2], ">") || strings.HasPrefix(lines[1], ">") {
		t.Fatalf("cursor marker on wrong row:\n%s", out)
	}
	if !strings.Contains(lines[2], "$85,000") {
		t.Fatalf("expected drone total, got %q", lines[2])
	}
}

func TestRenderQuotes_Empty(t *testing.T) {
	if got := renderQuotes(nil, 0); !strings.Contains(got, "no shipping methods") {
		t.Fatalf("unexpected %q", got)
	}
}

func TestUserMessage(t *testing.T) {
	cases := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{&domain.OpError{Op: "yamlorder.load", Kind: domain.KindNotFound}, "Order file not found"},
		{&domain.OpError{Op: "workspacefinder.findroot", Kind: domain.KindNotFound}, "Workspace not found"},
		{&domain.OpError{Op: "order.new", Kind: domain.KindEmptyOrder}, "Order has no products"},
		{&domain.OpError{Op: "registry.new", Kind: domain.KindUnknownShipping}, "Unknown shipping method"},
		{&domain.OpError{Op: "orderstore.decode", Kind: domain.KindCorruptStore}, "Order store is corrupt (see store.on_corrupt)"},
		{
			&domain.OpError{Op: "yamlorder.parse", Kind: domain.KindInvalidConfig, Path: "/w/orders/a.yaml", Err: errors.New("yaml: line 3: did not find expected key")},
			"Invalid YAML at a.yaml line 3",
		},
		{
			&domain.OpError{Op: "yamlorder.validate", Kind: domain.KindInvalidConfig, Path: "/w/orders/a.yaml", Err: fmt.Errorf("field products[1].name: required: %w", domain.ErrInvalidConfig)},
			"Invalid products[1].name in a.yaml",
		},
		{errors.New("boom"), "Unexpected error (see logs)"},
	}
	for _, c := range cases {
		if got := userMessage(c.err); got != c.want {
			t.Errorf("userMessage(%v) = %q, want %q", c.err, got, c.want)
		}
	}
}

func TestModel_ComparisonThenSave(t *testing.T) {
	m := newModel(Deps{})
	m.workspaceFound = true
	m.workspaceRoot = "/w"

	spec := domain.OrderSpec{Name: "mouse", Products: []domain.Product{domain.MustProduct("Mouse", 35000)}, DistanceKM: 15}
	next, _ := m.Update(comparisonMsg{ref: domain.OrderRef{Name: "mouse", Path: "/w/orders/mouse.yaml"}, spec: spec, quotes: sampleQuotes()})
	m = next.(model)

	if m.scr != screenCompare || len(m.quotes) != 2 {
		t.Fatalf("expected compare screen with quotes, got scr=%v quotes=%d", m.scr, len(m.quotes))
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(model)
	if m.cursor != 1 {
		t.Fatalf("expected cursor 1, got %d", m.cursor)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(model)
	if cmd == nil || !m.busy {
		t.Fatalf("expected a save command and busy state")
	}

	next, _ = m.Update(orderSavedMsg{kind: "drone", record: domain.OrderRecord{ID: "abcdef123456", TotalCost: domain.NewAmount(85000)}})
	m = next.(model)
	if m.busy || m.saved == nil || m.saved.ID != "abcdef123456" {
		t.Fatalf("expected saved record, got %+v", m.saved)
	}
	if !strings.Contains(m.View(), "Saved abcdef12") {
		t.Fatalf("expected saved banner in view")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	m = next.(model)
	if m.scr != screenHome || m.saved != nil {
		t.Fatalf("expected back on home")
	}
}

func TestModel_ErrorsBecomeToast(t *testing.T) {
	m := newModel(Deps{})
	next, _ := m.Update(comparisonMsg{err: &domain.OpError{Op: "order.new", Kind: domain.KindEmptyOrder}})
	m = next.(model)
	if m.scr != screenHome || m.toast != "Order has no products" {
		t.Fatalf("unexpected state scr=%v toast=%q", m.scr, m.toast)
	}
}

func TestSafeModel_ForwardsToInner(t *testing.T) {
	s := wrapSafe(newModel(Deps{}), nil)
	next, _ := s.Update(ordersLoadedMsg{root: "/w", refs: []domain.OrderRef{{Name: "a", Path: "/w/orders/a.yaml"}}})
	got, ok := next.(safeModel)
	if !ok {
		t.Fatalf("expected safeModel, got %T", next)
	}
	if n := len(got.m.orders.Items()); n != 1 {
		t.Fatalf("expected 1 order item, got %d", n)
	}
	if got.m.orders.Items()[0].(orderItem).Description() != "orders/a.yaml" {
		t.Fatalf("unexpected description %q", got.m.orders.Items()[0].(orderItem).Description())
	}
}
