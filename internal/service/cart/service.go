package cart

import (
	"context"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/shopspring/decimal"

	"pizza-storefront/internal/domain"
	"pizza-storefront/internal/pricing"
	cartrepo "pizza-storefront/internal/repository/cart"
)

type catalog interface {
	Get(ctx context.Context, id int64) (*domain.Product, error)
}

// Service manages the caller's cart. Prices supplied by the client are never
// stored; each line is repriced from the catalog and the option table.
type Service struct {
	store   cartrepo.Store
	catalog catalog
	prices  pricing.Table
	logger  *log.Logger
}

func New(store cartrepo.Store, catalog catalog, prices pricing.Table, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Service{store: store, catalog: catalog, prices: prices, logger: logger}
}

// AddItemInput is the client's selection, including the prices it displayed.
type AddItemInput struct {
	ProductID  int64           `json:"productId"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Size       string          `json:"size"`
	Crust      string          `json:"crust"`
	Extras     []string        `json:"extras"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// AddItem appends a repriced line and returns the new cart size.
func (s *Service) AddItem(ctx context.Context, sessionID string, in AddItemInput) (int, error) {
	if strings.TrimSpace(sessionID) == "" {
		return 0, domain.ErrUnauthenticated
	}
	item, err := s.price(ctx, in)
	if err != nil {
		return 0, err
	}
	if !item.TotalPrice.Equal(in.TotalPrice) || !item.BasePrice.Equal(in.Price) || item.Name != in.Name {
		s.logger.Printf("cart: reprice session=%s product_id=%d claimed=%s actual=%s", sessionID, in.ProductID, in.TotalPrice, item.TotalPrice)
	}
	n, err := s.store.Append(ctx, sessionID, item)
	if err != nil {
		return 0, fmt.Errorf("append item: %w", err)
	}
	return n, nil
}

// RemoveItem drops the line at index. Out-of-range indexes are ignored.
func (s *Service) RemoveItem(ctx context.Context, sessionID string, index int) error {
	if strings.TrimSpace(sessionID) == "" {
		return domain.ErrUnauthenticated
	}
	if err := s.store.RemoveAt(ctx, sessionID, index); err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	return nil
}

// Get returns the live cart; a session without one gets an empty cart.
func (s *Service) Get(ctx context.Context, sessionID string) (domain.Cart, error) {
	if strings.TrimSpace(sessionID) == "" {
		return domain.Cart{Items: []domain.LineItem{}}, nil
	}
	c, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return domain.Cart{}, fmt.Errorf("read cart: %w", err)
	}
	return c, nil
}

// Clear empties the cart. It is safe to call on an absent cart.
func (s *Service) Clear(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return nil
	}
	return s.store.Clear(ctx, sessionID)
}

func (s *Service) price(ctx context.Context, in AddItemInput) (domain.LineItem, error) {
	p, err := s.catalog.Get(ctx, in.ProductID)
	if err != nil {
		return domain.LineItem{}, fmt.Errorf("product %d: %w", in.ProductID, err)
	}
	q, err := s.prices.Price(p.Price, in.Size, in.Crust, in.Extras)
	if err != nil {
		return domain.LineItem{}, err
	}
	return domain.LineItem{
		ProductID:  p.ID,
		Name:       p.Name,
		BasePrice:  q.Base,
		Size:       q.Size,
		Crust:      q.Crust,
		Extras:     q.Extras,
		TotalPrice: q.Total,
	}, nil
}
