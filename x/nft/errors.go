package nft

import (
	"github.com/easynft/easynft/errors"
)

// Error codes in this block are fixed identifiers carried by failure
// notifications. They must never be renumbered.
var (
	// ErrPaymentFailed is returned when the settlement call could not
	// move the purchase price. No ledger state is mutated.
	ErrPaymentFailed = errors.Register(10001, "payment failed")

	// ErrSupplyExhausted is returned when a purchase hits a token whose
	// supply is fully minted.
	ErrSupplyExhausted = errors.Register(10002, "supply exhausted")

	// ErrNotOwned is returned when an instance is missing from the
	// expected ownership set.
	ErrNotOwned = errors.Register(10015, "token not owned")

	// ErrNotPayable is returned when the destination refuses to receive
	// assets.
	ErrNotPayable = errors.Register(10016, "account not payable")
)
