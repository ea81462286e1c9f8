package cart

import (
	"context"

	"pizza-storefront/internal/domain"
)

// Store is the session-keyed cart. Every mutation issues a fresh checkout token.
type Store interface {
	// Append adds item at the tail, creating the cart if needed, and returns the new length.
	Append(ctx context.Context, sessionID string, item domain.LineItem) (int, error)
	// RemoveAt deletes the item at index. Out-of-range indexes are ignored.
	RemoveAt(ctx context.Context, sessionID string, index int) error
	// Get returns the live cart; an absent cart is empty.
	Get(ctx context.Context, sessionID string) (domain.Cart, error)
	// Clear drops the cart. Clearing an absent cart is a no-op.
	Clear(ctx context.Context, sessionID string) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
