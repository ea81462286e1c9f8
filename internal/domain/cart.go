package domain

import (
	"github.com/shopspring/decimal"
)

func init() {
	// Line item blobs are a durable contract; prices travel as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// LineItem is one customized product selection. The same shape is embedded in
// orders, where it is frozen.
type LineItem struct {
	ProductID  int64           `json:"productId"`
	Name       string          `json:"name"`
	BasePrice  decimal.Decimal `json:"basePrice"`
	Size       string          `json:"size"`
	Crust      string          `json:"crust"`
	Extras     []string        `json:"extras"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// Clone returns a copy that shares no memory with l.
func (l LineItem) Clone() LineItem {
	out := l
	out.Extras = make([]string, len(l.Extras))
	copy(out.Extras, l.Extras)
	return out
}

// Label is the short display name used in order summaries, e.g. "Large Margherita Classic".
func (l LineItem) Label() string {
	if l.Size == "" {
		return l.Name
	}
	return l.Size + " " + l.Name
}

// Cart is the live, session-scoped list of line items. Token changes on every
// mutation and identifies the snapshot a checkout was made from.
type Cart struct {
	Token string     `json:"checkoutToken,omitempty"`
	Items []LineItem `json:"items"`
}

// Len reports the number of line items.
func (c Cart) Len() int {
	return len(c.Items)
}

// Total sums the line totals.
func (c Cart) Total() decimal.Decimal {
	total := decimal.Zero
	for _, it := range c.Items {
		total = total.Add(it.TotalPrice)
	}
	return total
}

// Snapshot deep-copies the items so later cart mutations cannot reach them.
func (c Cart) Snapshot() []LineItem {
	out := make([]LineItem, 0, len(c.Items))
	for _, it := range c.Items {
		out = append(out, it.Clone())
	}
	return out
}
