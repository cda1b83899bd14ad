/*
Package cash keeps the balances used to settle trades.

It deliberately exposes no message handlers. Funds move only through the
Controller, which trusts its caller to have authenticated the source
address. Extensions performing settlement embed the Controller and do
their own authorization first.
*/
package cash

import (
	"github.com/easynft/easynft"
	"github.com/easynft/easynft/errors"
	"github.com/easynft/easynft/orm"
)

// Wallet is the balance stored for one address. The address itself is the
// bucket key, not part of the value.
type Wallet struct {
	Metadata *easynft.Metadata
	Balance  int64
}

var _ orm.CloneableData = (*Wallet)(nil)

// Marshal serializes the wallet.
func (w *Wallet) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(w)
}

// Unmarshal deserializes the wallet.
func (w *Wallet) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, w)
}

// Validate ensures the wallet can be written to the store.
func (w *Wallet) Validate() error {
	if err := w.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if w.Balance < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative balance %d", w.Balance)
	}
	return nil
}

// Copy makes a new wallet with the same data.
func (w *Wallet) Copy() orm.CloneableData {
	return &Wallet{
		Metadata: w.Metadata.Copy(),
		Balance:  w.Balance,
	}
}

// AsWallet extracts the Wallet from the object, returns nil for a nil
// object so misses flow through without a type switch at every caller.
func AsWallet(obj orm.Object) *Wallet {
	if obj == nil {
		return nil
	}
	return obj.Value().(*Wallet)
}

// NewWallet creates an empty wallet object for this address.
func NewWallet(key easynft.Address) orm.Object {
	return orm.NewSimpleObj(key, &Wallet{
		Metadata: &easynft.Metadata{Schema: 1},
	})
}

// WalletBucket is a type-safe bucket of wallets keyed by address.
type WalletBucket struct {
	orm.Bucket
}

// NewWalletBucket initializes a WalletBucket.
func NewWalletBucket() WalletBucket {
	return WalletBucket{
		Bucket: orm.NewBucket("cash", orm.NewSimpleObj(nil, &Wallet{})),
	}
}

// Get loads the wallet for this address, nil if none exists.
func (b WalletBucket) Get(db easynft.ReadOnlyKVStore, key easynft.Address) (orm.Object, error) {
	if err := key.Validate(); err != nil {
		return nil, err
	}
	return b.Bucket.Get(db, key)
}

// GetOrCreate loads the wallet, making an empty one if not present.
func (b WalletBucket) GetOrCreate(db easynft.KVStore, key easynft.Address) (orm.Object, error) {
	obj, err := b.Get(db, key)
	if err == nil && obj == nil {
		obj = NewWallet(key)
	}
	return obj, err
}

// Save enforces that only wallets are written to this bucket.
func (b WalletBucket) Save(db easynft.KVStore, obj orm.Object) error {
	if _, ok := obj.Value().(*Wallet); !ok {
		return errors.Wrapf(errors.ErrModel, "invalid type: %T", obj.Value())
	}
	return b.Bucket.Save(db, obj)
}
