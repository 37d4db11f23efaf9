package httpclient

import (
	"context"
	"net/http"

	"github.com/aalvaropc/shipquote/internal/domain"
	"github.com/aalvaropc/shipquote/internal/infra/httpapi"
	"github.com/aalvaropc/shipquote/internal/usecase"
)

func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

func (c *Client) ShippingMethods(ctx context.Context) ([]usecase.ShippingMethod, error) {
	var out []usecase.ShippingMethod
	if err := c.do(ctx, http.MethodGet, "/shipping-methods", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// PlaceOrder prices spec on the server. With save it is appended to the
// server's store (POST /orders), otherwise only quoted (POST /quotes).
func (c *Client) PlaceOrder(ctx context.Context, spec domain.OrderSpec, save bool) (domain.OrderRecord, error) {
	path := "/quotes"
	if save {
		path = "/orders"
	}

	var rec domain.OrderRecord
	if err := c.do(ctx, http.MethodPost, path, orderRequest(spec), &rec); err != nil {
		return domain.OrderRecord{}, err
	}
	if save && rec.ID == "" {
		return domain.OrderRecord{}, &domain.OpError{Op: "httpclient.post", Kind: domain.KindIO, Err: errNoRecord}
	}
	return rec, nil
}

func (c *Client) Compare(ctx context.Context, products []domain.Product, distanceKM float64) ([]usecase.ShippingQuote, error) {
	req := httpapi.CompareRequest{DistanceKM: distanceKM, Products: productDTOs(products)}

	var out []usecase.ShippingQuote
	if err := c.do(ctx, http.MethodPost, "/comparisons", req, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ListOrders(ctx context.Context) ([]domain.OrderRecord, error) {
	var out []domain.OrderRecord
	if err := c.do(ctx, http.MethodGet, "/orders", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.OrderRecord{}
	}
	return out, nil
}

func orderRequest(spec domain.OrderSpec) httpapi.OrderRequest {
	return httpapi.OrderRequest{
		Name:       spec.Name,
		Shipping:   spec.ShippingKind,
		DistanceKM: spec.DistanceKM,
		Products:   productDTOs(spec.Products),
	}
}

func productDTOs(ps []domain.Product) []httpapi.ProductDTO {
	out := make([]httpapi.ProductDTO, 0, len(ps))
	for _, p := range ps {
		price := p.Price()
		out = append(out, httpapi.ProductDTO{Name: p.Name(), Price: &price})
	}
	return out
}
