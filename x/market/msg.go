package market

import (
	"github.com/easynft/easynft"
	"github.com/easynft/easynft/errors"
)

// Message paths handled by this package.
const (
	pathCreateSale = "market/create_sale"
	pathCancelSale = "market/cancel_sale"
	pathBuySale    = "market/buy_sale"
)

// CreateSaleMsg lists a bundle of instances at one price. The seller
// must sign the transaction; the bundle is escrowed on creation.
type CreateSaleMsg struct {
	Metadata *easynft.Metadata
	Seller   easynft.Address
	Price    int64
	IDs      []int64
}

var _ easynft.Msg = (*CreateSaleMsg)(nil)

func (CreateSaleMsg) Path() string { return pathCreateSale }

func (m *CreateSaleMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CreateSaleMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

func (m *CreateSaleMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Seller.Validate(); err != nil {
		return errors.Wrap(err, "seller")
	}
	if m.Price < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative price %d", m.Price)
	}
	if n := len(m.IDs); n < 1 || n > MaxBundleSize {
		return errors.Wrapf(errors.ErrInput, "bundle size %d outside 1..%d", n, MaxBundleSize)
	}
	return nil
}

// CancelSaleMsg closes an open sale and returns the bundle to the
// seller.
type CancelSaleMsg struct {
	Metadata *easynft.Metadata
	Seller   easynft.Address
	SaleID   int64
}

var _ easynft.Msg = (*CancelSaleMsg)(nil)

func (CancelSaleMsg) Path() string { return pathCancelSale }

func (m *CancelSaleMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CancelSaleMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

func (m *CancelSaleMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Seller.Validate(); err != nil {
		return errors.Wrap(err, "seller")
	}
	if m.SaleID < saleIDBase {
		return errors.Wrapf(errors.ErrInput, "sale id %d out of range", m.SaleID)
	}
	return nil
}

// BuySaleMsg fulfills an open sale. The buyer is the main transaction
// signer, pays the price to the seller and receives the bundle.
type BuySaleMsg struct {
	Metadata *easynft.Metadata
	Seller   easynft.Address
	SaleID   int64
}

var _ easynft.Msg = (*BuySaleMsg)(nil)

func (BuySaleMsg) Path() string { return pathBuySale }

func (m *BuySaleMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *BuySaleMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

func (m *BuySaleMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Seller.Validate(); err != nil {
		return errors.Wrap(err, "seller")
	}
	if m.SaleID < saleIDBase {
		return errors.Wrapf(errors.ErrInput, "sale id %d out of range", m.SaleID)
	}
	return nil
}
