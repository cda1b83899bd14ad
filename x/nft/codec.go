package nft

import (
	amino "github.com/tendermint/go-amino"
)

// cdc encodes all state and messages of this package.
var cdc = amino.NewCodec()
