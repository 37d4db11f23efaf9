package httpapi

import "github.com/aalvaropc/shipquote/internal/domain"

type OrderRequest struct {
	Name       string       `json:"name,omitempty"`
	Shipping   string       `json:"shipping"`
	DistanceKM float64      `json:"distance_km"`
	Products   []ProductDTO `json:"products"`
}

type CompareRequest struct {
	DistanceKM float64      `json:"distance_km"`
	Products   []ProductDTO `json:"products"`
}

type ProductDTO struct {
	Name  string        `json:"name"`
	// Price is required; a missing price is not read as zero.
	Price *domain.Amount `json:"price"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
