package market

import (
	"github.com/easynft/easynft"
)

// Topics published by this package.
const (
	TopicSaleCreated   = "market/sale_created"
	TopicSaleCancelled = "market/sale_cancelled"
	TopicSaleFulfilled = "market/sale_fulfilled"
	TopicFailure       = "market/failure"
)

// SaleEvent is published when a sale is created or cancelled, carrying
// the full bundle.
type SaleEvent struct {
	Seller easynft.Address
	Sale   Sale
}

// FulfillEvent is published once a sale settled completely.
type FulfillEvent struct {
	Seller easynft.Address
	Buyer  easynft.Address
	SaleID int64
	Price  int64
	IDs    []int64
}

// FailureEvent reports an aborted operation with the numeric code of the
// error. A delivery failure after captured payment is reported here as
// well, with the ErrDeliveryFailed code, so operators can reconcile.
type FailureEvent struct {
	Op      string
	Account easynft.Address
	SaleID  int64
	Code    uint32
}
