package x

import (
	"github.com/easynft/easynft"
)

// Payability reports whether an account is willing to receive assets.
// Ordinary accounts always are; a host may plug in an implementation that
// refuses deposits into contract accounts that cannot handle them.
type Payability interface {
	IsPayable(easynft.Address) bool
}

// AllPayable accepts every destination. The zero value is usable.
type AllPayable struct{}

var _ Payability = AllPayable{}

// IsPayable always returns true.
func (AllPayable) IsPayable(easynft.Address) bool { return true }

// RefuseList refuses a fixed set of destinations and accepts the rest.
// Useful in tests and for hosts with a known set of non-receiving
// accounts.
type RefuseList []easynft.Address

var _ Payability = RefuseList{}

// IsPayable returns false iff the address is on the list.
func (r RefuseList) IsPayable(addr easynft.Address) bool {
	for _, a := range r {
		if a.Equals(addr) {
			return false
		}
	}
	return true
}
