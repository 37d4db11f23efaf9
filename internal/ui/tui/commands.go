package tui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/aalvaropc/shipquote/internal/app"
	"github.com/aalvaropc/shipquote/internal/domain"
	"github.com/aalvaropc/shipquote/internal/usecase"
)

const opTimeout = 30 * time.Second

func cmdRefreshWorkspace(deps Deps) tea.Cmd {
	return func() tea.Msg {
		wd, err := os.Getwd()
		if err != nil {
			return workspaceRefreshedMsg{cwd: "", found: false, err: fmt.Errorf("getwd: %w", err)}
		}
		if deps.WorkspaceLocator == nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: errors.New("WorkspaceLocator is nil")}
		}

		root, findErr := deps.WorkspaceLocator.FindRoot(wd)
		if findErr != nil {
			return workspaceRefreshedMsg{cwd: wd, found: false, err: findErr}
		}

		return workspaceRefreshedMsg{cwd: wd, found: true, root: root, err: nil}
	}
}

func cmdInitWorkspaceHere(deps Deps, root string) tea.Cmd {
	return func() tea.Msg {
		if deps.WorkspaceInitializer == nil {
			return initWorkspaceDoneMsg{root: root, err: errors.New("WorkspaceInitializer is nil")}
		}

		err := deps.WorkspaceInitializer.Init(domain.WorkspaceSpec{Root: root}, false)
		return initWorkspaceDoneMsg{root: root, err: err}
	}
}

func cmdLoadOrders(root string, log *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		ws, err := app.Open(root, log)
		if err != nil {
			return ordersLoadedMsg{root: root, err: err}
		}
		defer ws.Close()

		refs, err := ws.Orders.ListOrders(root)
		return ordersLoadedMsg{root: root, refs: refs, err: err}
	}
}

func cmdCompare(root string, ref domain.OrderRef, log *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		ws, err := app.Open(root, log)
		if err != nil {
			return comparisonMsg{ref: ref, err: err}
		}
		defer ws.Close()

		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		uc := usecase.NewCompareShipping(ws.Orders, ws.PricingOptions()...)
		spec, quotes, err := uc.ExecuteFile(ctx, ref.Path, nil)
		return comparisonMsg{ref: ref, spec: spec, quotes: quotes, err: err}
	}
}

// cmdPlaceOrder prices spec with kind and appends it to the workspace store.
func cmdPlaceOrder(root string, spec domain.OrderSpec, kind string, log *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		if log == nil {
			log = slog.Default()
		}

		ws, err := app.Open(root, log)
		if err != nil {
			return orderSavedMsg{kind: kind, err: err}
		}
		defer ws.Close()

		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		uc := usecase.NewPlaceOrder(ws.Orders, ws.Store, ws.PricingOptions()...)
		q, err := uc.ExecuteSpec(ctx, spec, usecase.PlaceOrderOptions{ShippingKind: kind})
		if err != nil {
			log.Error("tui.place_order.failed", "order", spec.Name, "kind", kind, "err", err)
			return orderSavedMsg{kind: kind, err: err}
		}
		return orderSavedMsg{kind: kind, record: q.Record}
	}
}
