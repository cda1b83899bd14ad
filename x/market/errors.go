package market

import (
	"github.com/easynft/easynft/errors"
)

// Error codes in this block are fixed identifiers carried by failure
// notifications. They must never be renumbered.
var (
	// ErrNoSale is returned when the seller has no sale with the
	// requested id.
	ErrNoSale = errors.Register(10013, "sale not found")

	// ErrEscrowFailed is returned when the bundle could not be moved
	// into escrow. The sale is never created.
	ErrEscrowFailed = errors.Register(10014, "escrow failed")

	// ErrDeliveryFailed is returned when payment was taken but the
	// escrowed bundle could not be delivered. This leaves the system
	// inconsistent and requires manual reconciliation. It is never
	// swallowed or retried.
	ErrDeliveryFailed = errors.Register(10017, "delivery failed after payment")
)
