package cash

import (
	"github.com/easynft/easynft"
	"github.com/easynft/easynft/errors"
	"github.com/easynft/easynft/orm"
)

// Initializer fulfils the Initializer interface to load initial wallets
// from genesis.
type Initializer struct{}

var _ easynft.Initializer = Initializer{}

// FromGenesis initializes wallets from the "cash" section of genesis
// options, a list of address and balance pairs.
func (Initializer) FromGenesis(opts easynft.Options, db easynft.KVStore) error {
	accounts := []struct {
		Address easynft.Address `json:"address"`
		Balance int64           `json:"balance"`
	}{}
	if err := opts.ReadOptions("cash", &accounts); err != nil {
		return errors.Wrap(err, "cannot read cash genesis")
	}

	bucket := NewWalletBucket()
	for i, acc := range accounts {
		if err := acc.Address.Validate(); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
		wallet := &Wallet{
			Metadata: &easynft.Metadata{Schema: 1},
			Balance:  acc.Balance,
		}
		obj := orm.NewSimpleObj(acc.Address, wallet)
		if err := bucket.Save(db, obj); err != nil {
			return errors.Wrapf(err, "account #%d", i)
		}
	}
	return nil
}
