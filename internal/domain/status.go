package domain

import (
	"fmt"
	"strings"
)

// Status is the fulfillment stage of an order.
//
//	Pending -> Preparing -> OutForDelivery -> Delivered
//	   \_________\_______________\__________-> Cancelled
//
// Delivered and Cancelled are terminal.
type Status string

const (
	StatusPending        Status = "Pending"
	StatusPreparing      Status = "Preparing"
	StatusOutForDelivery Status = "OutForDelivery"
	StatusDelivered      Status = "Delivered"
	StatusCancelled      Status = "Cancelled"
)

var statusRank = map[Status]int{
	StatusPending:        0,
	StatusPreparing:      1,
	StatusOutForDelivery: 2,
	StatusDelivered:      3,
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{StatusPending, StatusPreparing, StatusOutForDelivery, StatusDelivered, StatusCancelled}
}

// ParseStatus accepts the canonical names case-insensitively, plus the
// spaced form "Out for Delivery".
func ParseStatus(raw string) (Status, error) {
	norm := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(raw), " ", ""))
	for _, s := range Statuses() {
		if strings.ToLower(string(s)) == norm {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

func (s Status) String() string {
	return string(s)
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := statusRank[s]
	return ok || s == StatusCancelled
}

// Terminal reports whether no further transitions are allowed from s.
func (s Status) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// CanTransitionTo reports whether an order in s may move to next. Orders move
// forward along the chain (skipping is allowed) or to Cancelled from any
// non-terminal state. Re-applying the current status is accepted.
func (s Status) CanTransitionTo(next Status) bool {
	if !s.Valid() || !next.Valid() {
		return false
	}
	if s == next {
		return true
	}
	if s.Terminal() {
		return false
	}
	if next == StatusCancelled {
		return true
	}
	return statusRank[next] > statusRank[s]
}

// Predecessors returns every status from which next may be reached.
func (next Status) Predecessors() []Status {
	var out []Status
	for _, s := range Statuses() {
		if s.CanTransitionTo(next) {
			out = append(out, s)
		}
	}
	return out
}
