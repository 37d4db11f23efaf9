package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/aalvaropc/shipquote/internal/domain"
)

// --- fakes shared by the use case tests ---

type fakeOrderLoader struct {
	spec domain.OrderSpec
	err  error
}

func (f fakeOrderLoader) LoadOrder(_ string) (domain.OrderSpec, error) {
	return f.spec, f.err
}

func (f fakeOrderLoader) ListOrders(_ string) ([]domain.OrderRef, error) {
	return nil, nil
}

type fakeStore struct {
	mu      sync.Mutex
	records []domain.OrderRecord
	err     error
}

func (s *fakeStore) Append(_ context.Context, o *domain.Order) (domain.OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return domain.OrderRecord{}, s.err
	}
	rec := domain.NewOrderRecord(o, "rec-1", time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	s.records = append(s.records, rec)
	return rec, nil
}

func (s *fakeStore) List(_ context.Context) ([]domain.OrderRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.OrderRecord(nil), s.records...), s.err
}

var errDisk = &domain.OpError{Op: "fake.append", Kind: domain.KindIO, Err: errors.New("disk full")}

func gamerSetup() domain.OrderSpec {
	return domain.OrderSpec{
		Name: "gamer-setup",
		Products: []domain.Product{
			domain.MustProduct("Gamer Laptop", 2500000),
			domain.MustProduct("Mouse gamer", 35000),
		},
		ShippingKind: "standard",
		DistanceKM:   10,
	}
}
