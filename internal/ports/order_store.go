package ports

import (
	"context"

	"github.com/aalvaropc/shipquote/internal/domain"
)

// OrderStore persists order records. Stores are append-only: Append adds
// exactly one record and never rewrites or reorders earlier ones.
type OrderStore interface {
	Append(ctx context.Context, order *domain.Order) (domain.OrderRecord, error)
	List(ctx context.Context) ([]domain.OrderRecord, error)
}
