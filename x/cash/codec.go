package cash

import (
	amino "github.com/tendermint/go-amino"
)

// cdc encodes all wallet state stored by this package.
var cdc = amino.NewCodec()
