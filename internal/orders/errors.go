package orders

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyCart is returned when an order is submitted with no items.
	ErrEmptyCart = errors.New("order has no items")
	// ErrInvalidQty is returned when any line quantity is not a positive integer.
	ErrInvalidQty = errors.New("quantity must be at least 1")
	// ErrOrderNotFound is returned when no order exists for the given code.
	ErrOrderNotFound = errors.New("order not found")
	// ErrPaymentNotFound is returned when an order exists without its payment row.
	ErrPaymentNotFound = errors.New("payment transaction not found")
	// ErrOrderNotPending is returned when a payment session is requested for a
	// settled order.
	ErrOrderNotPending = errors.New("order is no longer pending")
)

// ProductNotFoundError names the offending product id so the client can fix
// its cart.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.ProductID)
}

// GatewayError wraps a failed outbound call to the payment gateway. The order
// referenced by Code is already persisted and can be resumed with a new
// session request.
type GatewayError struct {
	Code string
	Err  error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("payment gateway call failed for order %s: %v", e.Code, e.Err)
}

func (e *GatewayError) Unwrap() error { return e.Err }
