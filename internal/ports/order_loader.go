package ports

import "github.com/aalvaropc/shipquote/internal/domain"

// OrderLoader loads order definitions from a source (e.g., filesystem).
type OrderLoader interface {
	LoadOrder(path string) (domain.OrderSpec, error)
	ListOrders(root string) ([]domain.OrderRef, error)
}
