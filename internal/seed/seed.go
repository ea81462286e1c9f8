package seed

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/shopspring/decimal"

	"pizza-storefront/internal/domain"
)

type productStore interface {
	Count(ctx context.Context) (int, error)
	Upsert(ctx context.Context, p domain.Product) (*domain.Product, error)
}

type adminEnsurer interface {
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
}

// Admin is the account created on first run.
type Admin struct {
	Username string
	Password string
}

// Menu is the demo catalog inserted into an empty products table.
func Menu() []domain.Product {
	d := decimal.RequireFromString
	return []domain.Product{
		{Name: "Margherita Classic", Price: d("12.99"), Category: "Veg", Image: "p1.jpg"},
		{Name: "Pepperoni Feast", Price: d("15.99"), Category: "Non-Veg", Image: "p2.jpg"},
		{Name: "Spicy Inferno", Price: d("16.50"), Category: "Non-Veg", Image: "p3.jpg"},
		{Name: "BBQ Chicken", Price: d("16.99"), Category: "Non-Veg", Image: "p4.jpg"},
		{Name: "Veggie Supreme", Price: d("14.50"), Category: "Veg", Image: "p5.jpg"},
		{Name: "Mexican Green Wave", Price: d("15.50"), Category: "Veg (Spicy)", Image: "p6.jpg"},
		{Name: "Chicken Dominator", Price: d("18.99"), Category: "Non-Veg", Image: "p7.jpg"},
		{Name: "Cheese Burst", Price: d("13.99"), Category: "Veg", Image: "p8.jpg"},
	}
}

// Apply creates the admin account if missing and fills an empty menu. It is
// safe to run repeatedly.
func Apply(ctx context.Context, products productStore, accounts adminEnsurer, admin Admin, logger *log.Logger) error {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	created, err := accounts.EnsureAdmin(ctx, admin.Username, admin.Password)
	if err != nil {
		return fmt.Errorf("ensure admin: %w", err)
	}
	if created {
		logger.Printf("seed: created admin username=%s", admin.Username)
	}

	n, err := products.Count(ctx)
	if err != nil {
		return fmt.Errorf("count products: %w", err)
	}
	if n > 0 {
		logger.Printf("seed: menu has %d products, skipping", n)
		return nil
	}
	for _, p := range Menu() {
		if _, err := products.Upsert(ctx, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}
	logger.Printf("seed: inserted %d products", len(Menu()))
	return nil
}
