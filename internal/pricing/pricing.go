// Package pricing computes authoritative line prices from a catalog price and
// a fixed surcharge table.
package pricing

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"pizza-storefront/internal/domain"
)

// Table holds the surcharges applied on top of a product's catalog price.
type Table struct {
	Sizes        map[string]decimal.Decimal
	Crusts       map[string]decimal.Decimal
	Extras       map[string]decimal.Decimal
	DefaultSize  string
	DefaultCrust string
}

// DefaultTable is the menu's standard option pricing.
func DefaultTable() Table {
	d := decimal.RequireFromString
	return Table{
		Sizes: map[string]decimal.Decimal{
			"Small":  decimal.Zero,
			"Medium": d("2.00"),
			"Large":  d("4.00"),
		},
		Crusts: map[string]decimal.Decimal{
			"Classic":      decimal.Zero,
			"Thin":         decimal.Zero,
			"Pan":          d("1.50"),
			"Cheese Burst": d("2.50"),
		},
		Extras: map[string]decimal.Decimal{
			"Extra Cheese": d("1.50"),
			"Olives":       d("1.00"),
			"Jalapeno":     d("1.00"),
			"Mushrooms":    d("1.00"),
			"Onions":       d("0.75"),
			"Paneer":       d("1.50"),
			"Chicken":      d("2.00"),
		},
		DefaultSize:  "Medium",
		DefaultCrust: "Classic",
	}
}

// Quote is a repriced selection with option names in canonical form.
type Quote struct {
	Size   string
	Crust  string
	Extras []string
	Base   decimal.Decimal
	Total  decimal.Decimal
}

// Price resolves the requested options against the table and returns the line
// total. Option names match case-insensitively; unknown options fail with
// domain.ErrInvalidOption.
func (t Table) Price(base decimal.Decimal, size, crust string, extras []string) (Quote, error) {
	if strings.TrimSpace(size) == "" {
		size = t.DefaultSize
	}
	if strings.TrimSpace(crust) == "" {
		crust = t.DefaultCrust
	}

	q := Quote{Base: base, Total: base, Extras: make([]string, 0, len(extras))}

	name, fee, ok := lookup(t.Sizes, size)
	if !ok {
		return Quote{}, fmt.Errorf("%w: size %q", domain.ErrInvalidOption, size)
	}
	q.Size = name
	q.Total = q.Total.Add(fee)

	name, fee, ok = lookup(t.Crusts, crust)
	if !ok {
		return Quote{}, fmt.Errorf("%w: crust %q", domain.ErrInvalidOption, crust)
	}
	q.Crust = name
	q.Total = q.Total.Add(fee)

	for _, e := range extras {
		name, fee, ok = lookup(t.Extras, e)
		if !ok {
			return Quote{}, fmt.Errorf("%w: extra %q", domain.ErrInvalidOption, e)
		}
		q.Extras = append(q.Extras, name)
		q.Total = q.Total.Add(fee)
	}
	return q, nil
}

func lookup(m map[string]decimal.Decimal, key string) (string, decimal.Decimal, bool) {
	key = strings.TrimSpace(key)
	if v, ok := m[key]; ok {
		return key, v, true
	}
	for name, v := range m {
		if strings.EqualFold(name, key) {
			return name, v, true
		}
	}
	return "", decimal.Zero, false
}
