package tui

import (
	"github.com/aalvaropc/shipquote/internal/domain"
	"github.com/aalvaropc/shipquote/internal/usecase"
)

type workspaceRefreshedMsg struct {
	cwd   string
	found bool
	root  string
	err   error
}

type initWorkspaceDoneMsg struct {
	root string
	err  error
}

type ordersLoadedMsg struct {
	root string
	refs []domain.OrderRef
	err  error
}

type comparisonMsg struct {
	ref    domain.OrderRef
	spec   domain.OrderSpec
	quotes []usecase.ShippingQuote
	err    error
}

type orderSavedMsg struct {
	kind   string
	record domain.OrderRecord
	err    error
}
