package domain

import "errors"

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists indicates a uniqueness constraint was hit.
	ErrAlreadyExists = errors.New("already exists")

	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateUsername  = errors.New("username already exists")

	// ErrEmptyCart is returned by checkout when there is nothing to order.
	ErrEmptyCart = errors.New("cart is empty")
	// ErrDuplicateCheckout means an order already exists for the cart's checkout token.
	ErrDuplicateCheckout = errors.New("checkout already submitted")
	// ErrStaleCart means the cart changed after the client read its checkout token.
	ErrStaleCart = errors.New("cart changed since it was read")
	// ErrTotalMismatch means the claimed checkout total differs from the cart total.
	ErrTotalMismatch = errors.New("total does not match cart")
	ErrInvalidOption = errors.New("invalid option")

	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
)
