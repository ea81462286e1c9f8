package order

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"pizza-storefront/internal/domain"
	orderrepo "pizza-storefront/internal/repository/order"
)

type cartClearer interface {
	Clear(ctx context.Context, sessionID string) error
}

// Recorder receives order lifecycle events.
type Recorder interface {
	OrderCreated()
	CheckoutRejected(reason string)
	StatusUpdated(status domain.Status)
}

type nopRecorder struct{}

func (nopRecorder) OrderCreated() {}
func (nopRecorder) CheckoutRejected(string) {}
func (nopRecorder) StatusUpdated(domain.Status) {}

// Service turns carts into orders and serves them back to customers and admins.
type Service struct {
	repo    orderrepo.Repository
	carts   cartClearer
	metrics Recorder
	logger  *log.Logger
	now     func() time.Time
}

func New(repo orderrepo.Repository, carts cartClearer, metrics Recorder, logger *log.Logger) *Service {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	if metrics == nil {
		metrics = nopRecorder{}
	}
	return &Service{repo: repo, carts: carts, metrics: metrics, logger: logger, now: time.Now}
}

// CheckoutInput is a checkout request. Token, when set, must match the
// cart's current checkout token.
type CheckoutInput struct {
	UserID       int64
	SessionID    string
	Cart         domain.Cart
	ClaimedTotal decimal.Decimal
	Token        string
}

// Checkout persists the cart as a Pending order and then clears the cart.
// The cart is left intact on any failure before the order is stored.
func (s *Service) Checkout(ctx context.Context, in CheckoutInput) (*domain.Order, error) {
	if in.UserID <= 0 {
		return nil, domain.ErrUnauthenticated
	}
	if len(in.Cart.Items) == 0 {
		s.metrics.CheckoutRejected("empty_cart")
		return nil, domain.ErrEmptyCart
	}
	if in.Token != "" && in.Token != in.Cart.Token {
		s.metrics.CheckoutRejected("stale_cart")
		return nil, domain.ErrStaleCart
	}
	if total := in.Cart.Total(); !in.ClaimedTotal.Equal(total) {
		s.metrics.CheckoutRejected("total_mismatch")
		s.logger.Printf("order: checkout user_id=%d claimed=%s actual=%s", in.UserID, in.ClaimedTotal, total)
		return nil, fmt.Errorf("%w: claimed %s, cart %s", domain.ErrTotalMismatch, in.ClaimedTotal, total)
	}

	items := in.Cart.Snapshot()
	blob, err := domain.EncodeLineItems(items)
	if err != nil {
		return nil, fmt.Errorf("encode line items: %w", err)
	}

	rec, err := s.repo.Create(ctx, orderrepo.CreateOrderInput{
		UserID:        in.UserID,
		TotalAmount:   in.ClaimedTotal,
		Items:         blob,
		CreatedAt:     s.now().UTC().Truncate(time.Minute),
		CheckoutToken: in.Cart.Token,
	})
	if errors.Is(err, domain.ErrDuplicateCheckout) {
		// The order for this cart already exists; the cart is a leftover.
		s.metrics.CheckoutRejected("duplicate")
		s.clear(ctx, in)
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.metrics.OrderCreated()
	s.clear(ctx, in)

	o := toOrder(*rec)
	o.Items = items
	s.logger.Printf("order: checkout user_id=%d id=%d items=%d total=%s", o.UserID, o.ID, len(o.Items), o.TotalAmount)
	return &o, nil
}

// clear runs strictly after the order insert. A failure leaves a residual
// cart whose token is already spent, so a retry is rejected as a duplicate.
func (s *Service) clear(ctx context.Context, in CheckoutInput) {
	if err := s.carts.Clear(ctx, in.SessionID); err != nil {
		s.logger.Printf("order: clear cart user_id=%d session=%s error=%v", in.UserID, in.SessionID, err)
	}
}

// ListForUser returns the user's orders, newest first.
func (s *Service) ListForUser(ctx context.Context, userID int64) ([]domain.Order, error) {
	recs, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	out := make([]domain.Order, 0, len(recs))
	for _, rec := range recs {
		o := toOrder(rec)
		items, err := s.decode(rec)
		if err != nil {
			return nil, err
		}
		o.Items = items
		out = append(out, o)
	}
	return out, nil
}

// ListAll returns every order with its owner and a readable summary, newest first.
// Orders whose line items cannot be decoded are still listed.
func (s *Service) ListAll(ctx context.Context) ([]domain.AdminOrder, error) {
	recs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list all orders: %w", err)
	}
	out := make([]domain.AdminOrder, 0, len(recs))
	for _, rec := range recs {
		ao := domain.AdminOrder{Order: toOrder(rec), Username: rec.Username, Summary: domain.ItemsUnavailable}
		items, err := s.decode(rec)
		if err != nil {
			return nil, err
		}
		if items != nil {
			ao.Items = items
			ao.Summary = domain.Summary(items)
		}
		out = append(out, ao)
	}
	return out, nil
}

// SetStatus moves an order to raw. Unknown orders are ignored.
func (s *Service) SetStatus(ctx context.Context, orderID int64, raw string) error {
	next, err := domain.ParseStatus(raw)
	if err != nil {
		return err
	}
	err = s.repo.UpdateStatus(ctx, orderID, next, next.Predecessors())
	switch {
	case errors.Is(err, domain.ErrNotFound):
		s.logger.Printf("order: set status id=%d status=%s not found", orderID, next)
		return nil
	case err != nil:
		return err
	}
	s.metrics.StatusUpdated(next)
	return nil
}

// decode returns nil items for a blob that cannot be read and propagates
// anything else.
func (s *Service) decode(rec domain.OrderRecord) ([]domain.LineItem, error) {
	items, err := domain.DecodeLineItems(rec.ID, rec.Items)
	var decodeErr *domain.ItemsDecodeError
	if errors.As(err, &decodeErr) {
		s.logger.Printf("order: %v", decodeErr)
		return nil, nil
	}
	return items, err
}

func toOrder(rec domain.OrderRecord) domain.Order {
	return domain.Order{
		ID:          rec.ID,
		UserID:      rec.UserID,
		TotalAmount: rec.TotalAmount,
		Status:      rec.Status,
		CreatedAt:   rec.CreatedAt,
	}
}
