package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ItemsUnavailable is shown in place of a summary when the stored blob cannot be read.
const ItemsUnavailable = "Items unavailable"

// ItemsDecodeError reports a missing or malformed line item blob.
type ItemsDecodeError struct {
	OrderID int64
	Err     error
}

func (e *ItemsDecodeError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("order %d: line items missing", e.OrderID)
	}
	return fmt.Sprintf("order %d: decode line items: %v", e.OrderID, e.Err)
}

func (e *ItemsDecodeError) Unwrap() error {
	return e.Err
}

// EncodeLineItems produces the durable JSON array stored with an order.
func EncodeLineItems(items []LineItem) ([]byte, error) {
	if items == nil {
		items = []LineItem{}
	}
	return json.Marshal(items)
}

// DecodeLineItems parses a stored blob. Absent, null and malformed blobs all
// yield an *ItemsDecodeError.
func DecodeLineItems(orderID int64, raw []byte) ([]LineItem, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, &ItemsDecodeError{OrderID: orderID}
	}
	var items []LineItem
	if err := json.Unmarshal([]byte(trimmed), &items); err != nil {
		return nil, &ItemsDecodeError{OrderID: orderID, Err: err}
	}
	return items, nil
}

// Summary joins item labels, e.g. "Large Margherita Classic, Medium Pepperoni Feast".
func Summary(items []LineItem) string {
	labels := make([]string, 0, len(items))
	for _, it := range items {
		labels = append(labels, it.Label())
	}
	return strings.Join(labels, ", ")
}
