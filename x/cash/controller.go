package cash

import (
	"math"

	"github.com/easynft/easynft"
	"github.com/easynft/easynft/errors"
)

// Controller is the functionality needed by other extensions to settle
// payments. This is implemented by CashController and can be mocked for
// tests.
//
// Implementations perform no authentication. The caller must have
// verified that the source authorized the movement before calling in.
type Controller interface {
	// MoveCoins removes funds from the source wallet and adds them to
	// the destination wallet. Nothing is written on error.
	MoveCoins(db easynft.KVStore, src, dest easynft.Address, amount int64) error

	// IssueCoins creates new funds in the destination wallet.
	IssueCoins(db easynft.KVStore, dest easynft.Address, amount int64) error

	// Balance returns the funds held by this address. Returns ErrEmpty
	// if no wallet exists.
	Balance(db easynft.ReadOnlyKVStore, addr easynft.Address) (int64, error)
}

// CashController is the standard implementation of Controller backed by
// the wallet bucket.
type CashController struct {
	bucket WalletBucket
}

var _ Controller = CashController{}

// NewController returns a controller writing through the given bucket.
func NewController(bucket WalletBucket) CashController {
	return CashController{bucket: bucket}
}

// MoveCoins transfers funds between wallets. An empty source wallet is
// removed from the store rather than kept at zero.
func (c CashController) MoveCoins(db easynft.KVStore, src, dest easynft.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "must move a positive amount, got %d", amount)
	}
	if src.Equals(dest) {
		return errors.Wrap(errors.ErrInput, "cannot move to self")
	}

	sender, err := c.bucket.Get(db, src)
	if err != nil {
		return err
	}
	if sender == nil {
		return errors.Wrapf(errors.ErrEmpty, "no wallet %s", src)
	}
	wallet := AsWallet(sender)
	if wallet.Balance < amount {
		return errors.Wrapf(errors.ErrAmount, "wallet %s holds %d, need %d", src, wallet.Balance, amount)
	}
	wallet.Balance -= amount

	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := add(AsWallet(recipient), amount); err != nil {
		return err
	}

	if wallet.Balance == 0 {
		if err := c.bucket.Delete(db, src); err != nil {
			return err
		}
	} else if err := c.bucket.Save(db, sender); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// IssueCoins mints new funds into the destination wallet.
func (c CashController) IssueCoins(db easynft.KVStore, dest easynft.Address, amount int64) error {
	if amount <= 0 {
		return errors.Wrapf(errors.ErrAmount, "must issue a positive amount, got %d", amount)
	}
	recipient, err := c.bucket.GetOrCreate(db, dest)
	if err != nil {
		return err
	}
	if err := add(AsWallet(recipient), amount); err != nil {
		return err
	}
	return c.bucket.Save(db, recipient)
}

// Balance returns the funds held by this address.
func (c CashController) Balance(db easynft.ReadOnlyKVStore, addr easynft.Address) (int64, error) {
	obj, err := c.bucket.Get(db, addr)
	if err != nil {
		return 0, err
	}
	if obj == nil {
		return 0, errors.Wrapf(errors.ErrEmpty, "no wallet %s", addr)
	}
	return AsWallet(obj).Balance, nil
}

func add(w *Wallet, amount int64) error {
	if w.Balance > math.MaxInt64-amount {
		return errors.Wrap(errors.ErrOverflow, "balance")
	}
	w.Balance += amount
	return nil
}
