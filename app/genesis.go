package app

import (
	"github.com/easynft/easynft"
	"github.com/easynft/easynft/errors"
)

// chainInitializer runs a number of initializers in order.
type chainInitializer struct {
	inits []easynft.Initializer
}

var _ easynft.Initializer = (*chainInitializer)(nil)

// ChainInitializers lets you combine a series of initializers into one
// to be run at first start.
func ChainInitializers(inits ...easynft.Initializer) easynft.Initializer {
	return &chainInitializer{inits: inits}
}

// FromGenesis runs each initializer in order, aborting on the first
// failure.
func (c *chainInitializer) FromGenesis(opts easynft.Options, db easynft.KVStore) error {
	for _, init := range c.inits {
		if err := init.FromGenesis(opts, db); err != nil {
			return errors.Wrap(err, "cannot initialize")
		}
	}
	return nil
}
