package nft

import (
	"github.com/easynft/easynft"
	"github.com/easynft/easynft/errors"
)

// Message paths handled by this package.
const (
	pathCreateTokenInfo = "nft/create_token_info"
	pathBuyToken        = "nft/buy_token"
	pathTransferTokens  = "nft/transfer_tokens"
	pathBurnToken       = "nft/burn_token"
	pathSetCanBuy       = "nft/set_can_buy"
)

// CreateTokenInfoMsg registers a new issuable asset class. Only the
// registry owner may submit it.
type CreateTokenInfoMsg struct {
	Metadata    *easynft.Metadata
	TokenID     int64
	ClassTag    int64
	TotalAmount int64
	Price       int64
}

var _ easynft.Msg = (*CreateTokenInfoMsg)(nil)

func (CreateTokenInfoMsg) Path() string { return pathCreateTokenInfo }

func (m *CreateTokenInfoMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *CreateTokenInfoMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

func (m *CreateTokenInfoMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.TokenID < 1 || m.TokenID > MaxTokenID {
		return errors.Wrapf(errors.ErrInput, "token id %d out of range", m.TokenID)
	}
	if m.ClassTag < 0 || m.ClassTag > MaxClassTag {
		return errors.Wrapf(errors.ErrInput, "class tag %d out of range", m.ClassTag)
	}
	if m.TotalAmount < 1 || m.TotalAmount >= idClassBase {
		return errors.Wrapf(errors.ErrInput, "total amount %d out of range", m.TotalAmount)
	}
	if m.Price < 0 {
		return errors.Wrapf(errors.ErrAmount, "negative price %d", m.Price)
	}
	return nil
}

// BuyTokenMsg purchases one instance of a token. The buyer is the main
// transaction signer.
type BuyTokenMsg struct {
	Metadata *easynft.Metadata
	TokenID  int64
}

var _ easynft.Msg = (*BuyTokenMsg)(nil)

func (BuyTokenMsg) Path() string { return pathBuyToken }

func (m *BuyTokenMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *BuyTokenMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

func (m *BuyTokenMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.TokenID < 1 || m.TokenID > MaxTokenID {
		return errors.Wrapf(errors.ErrInput, "token id %d out of range", m.TokenID)
	}
	return nil
}

// TransferTokensMsg moves a batch of instances between accounts. The
// batch is all-or-nothing.
type TransferTokensMsg struct {
	Metadata *easynft.Metadata
	Src      easynft.Address
	Dst      easynft.Address
	IDs      []int64
}

var _ easynft.Msg = (*TransferTokensMsg)(nil)

func (TransferTokensMsg) Path() string { return pathTransferTokens }

func (m *TransferTokensMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *TransferTokensMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

func (m *TransferTokensMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Src.Validate(); err != nil {
		return errors.Wrap(err, "src")
	}
	if err := m.Dst.Validate(); err != nil {
		return errors.Wrap(err, "dst")
	}
	if m.Src.Equals(m.Dst) {
		return errors.Wrap(errors.ErrInput, "cannot transfer to self")
	}
	if len(m.IDs) == 0 {
		return errors.Wrap(errors.ErrEmpty, "ids")
	}
	return nil
}

// BurnTokenMsg destroys one instance held by Owner.
type BurnTokenMsg struct {
	Metadata   *easynft.Metadata
	Owner      easynft.Address
	InstanceID int64
}

var _ easynft.Msg = (*BurnTokenMsg)(nil)

func (BurnTokenMsg) Path() string { return pathBurnToken }

func (m *BurnTokenMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *BurnTokenMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

func (m *BurnTokenMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	if m.InstanceID < 1 {
		return errors.Wrapf(errors.ErrInput, "instance id %d", m.InstanceID)
	}
	return nil
}

// SetCanBuyMsg toggles purchases of a token. Only the registry owner may
// submit it.
type SetCanBuyMsg struct {
	Metadata *easynft.Metadata
	TokenID  int64
	CanBuy   bool
}

var _ easynft.Msg = (*SetCanBuyMsg)(nil)

func (SetCanBuyMsg) Path() string { return pathSetCanBuy }

func (m *SetCanBuyMsg) Marshal() ([]byte, error) {
	return cdc.MarshalBinaryBare(m)
}

func (m *SetCanBuyMsg) Unmarshal(bz []byte) error {
	return cdc.UnmarshalBinaryBare(bz, m)
}

func (m *SetCanBuyMsg) Validate() error {
	if err := m.Metadata.Validate(); err != nil {
		return errors.Wrap(err, "metadata")
	}
	if m.TokenID < 1 || m.TokenID > MaxTokenID {
		return errors.Wrapf(errors.ErrInput, "token id %d out of range", m.TokenID)
	}
	return nil
}
