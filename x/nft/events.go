package nft

import (
	"github.com/easynft/easynft"
)

// Topics published by this package. Failure topics carry a FailureEvent
// with the numeric code of the error that aborted the operation.
const (
	TopicMint     = "nft/mint"
	TopicTransfer = "nft/transfer"
	TopicBurn     = "nft/burn"
	TopicFailure  = "nft/failure"
)

// MintEvent is published once per successful purchase.
type MintEvent struct {
	Buyer      easynft.Address
	InstanceID int64
	TokenID    int64
	ClassTag   int64
	Price      int64
}

// TransferEvent is published once per instance moved, in input order.
type TransferEvent struct {
	Src        easynft.Address
	Dst        easynft.Address
	InstanceID int64
}

// BurnEvent is published once per destroyed instance.
type BurnEvent struct {
	Owner      easynft.Address
	InstanceID int64
}

// FailureEvent reports an aborted operation. Code is the registered
// numeric code of the error, so subscribers can react without parsing
// messages.
type FailureEvent struct {
	Op      string
	TokenID int64
	Account easynft.Address
	Code    uint32
}
