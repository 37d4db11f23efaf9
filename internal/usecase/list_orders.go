package usecase

import (
	"context"

	"github.com/aalvaropc/shipquote/internal/domain"
	"github.com/aalvaropc/shipquote/internal/ports"
)

type ListOrders struct {
	store ports.OrderStore
}

func NewListOrders(store ports.OrderStore) *ListOrders {
	return &ListOrders{store: store}
}

func (uc *ListOrders) Execute(ctx context.Context) ([]domain.OrderRecord, error) {
	return uc.store.List(ctx)
}
