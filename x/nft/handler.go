package nft

import (
	"github.com/easynft/easynft"
	"github.com/easynft/easynft/errors"
	"github.com/easynft/easynft/events"
	"github.com/easynft/easynft/x"
	"github.com/easynft/easynft/x/cash"
)

const (
	createTokenInfoCost = 100
	buyTokenCost        = 200
	transferCost        = 100
	transferPerItemCost = 10
	burnTokenCost       = 50
	setCanBuyCost       = 50
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r easynft.Registry, auth x.Authenticator, ctrl cash.Controller, pay x.Payability, em events.Emitter) {
	tokens := NewController()
	r.Handle(pathCreateTokenInfo, CreateTokenInfoHandler{auth: auth})
	r.Handle(pathBuyToken, BuyTokenHandler{auth: auth, cash: ctrl, tokens: tokens, em: em})
	r.Handle(pathTransferTokens, TransferTokensHandler{auth: auth, pay: pay, tokens: tokens, em: em})
	r.Handle(pathBurnToken, BurnTokenHandler{auth: auth, tokens: tokens, em: em})
	r.Handle(pathSetCanBuy, SetCanBuyHandler{auth: auth})
}

// RegisterQuery registers the catalog and ownership buckets for queries.
func RegisterQuery(qr easynft.QueryRouter) {
	NewTokenInfoBucket().Register("nfts", qr)
	NewTokenSetBucket().Register("nftaccounts", qr)
}

// CreateTokenInfoHandler registers new catalog entries.
type CreateTokenInfoHandler struct {
	auth x.Authenticator
}

var _ easynft.Handler = CreateTokenInfoHandler{}

func (h CreateTokenInfoHandler) Check(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*easynft.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &easynft.CheckResult{GasAllocated: createTokenInfoCost}, nil
}

func (h CreateTokenInfoHandler) Deliver(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*easynft.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	info := &TokenInfo{
		Metadata:    &easynft.Metadata{Schema: 1},
		TokenID:     msg.TokenID,
		ClassTag:    msg.ClassTag,
		TotalAmount: msg.TotalAmount,
		Price:       msg.Price,
		CanBuy:      true,
	}
	if err := NewTokenInfoBucket().Save(db, info); err != nil {
		return nil, err
	}
	return &easynft.DeliverResult{}, nil
}

// validate enforces owner authorization and token id uniqueness.
func (h CreateTokenInfoHandler) validate(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*CreateTokenInfoMsg, error) {
	var msg CreateTokenInfoMsg
	if err := easynft.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "not registry owner")
	}
	existing, err := NewTokenInfoBucket().Get(db, msg.TokenID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, errors.Wrapf(errors.ErrDuplicate, "token %d", msg.TokenID)
	}
	return &msg, nil
}

// BuyTokenHandler mints one instance against a catalog entry, charging
// the buyer through the settlement controller.
type BuyTokenHandler struct {
	auth   x.Authenticator
	cash   cash.Controller
	tokens Controller
	em     events.Emitter
}

var _ easynft.Handler = BuyTokenHandler{}

func (h BuyTokenHandler) Check(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*easynft.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &easynft.CheckResult{GasAllocated: buyTokenCost}, nil
}

// Deliver performs the purchase. Payment settles before any ledger
// mutation, so a failed payment can never mint an orphan instance.
func (h BuyTokenHandler) Deliver(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*easynft.DeliverResult, error) {
	msg, info, buyer, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if info.TotalSupply >= info.TotalAmount {
		err := errors.Wrapf(ErrSupplyExhausted, "token %d", msg.TokenID)
		h.em.Emit(TopicFailure, FailureEvent{
			Op: "buy", TokenID: msg.TokenID, Account: buyer, Code: errors.Code(err),
		})
		return nil, err
	}

	if info.Price > 0 {
		conf, err := loadConf(db)
		if err != nil {
			return nil, err
		}
		if err := h.cash.MoveCoins(db, buyer, conf.Owner, info.Price); err != nil {
			failure := errors.Wrapf(ErrPaymentFailed, "token %d: %v", msg.TokenID, err)
			h.em.Emit(TopicFailure, FailureEvent{
				Op: "buy", TokenID: msg.TokenID, Account: buyer, Code: errors.Code(failure),
			})
			return nil, failure
		}
	}

	info.TotalSupply++
	id := NewInstanceID(info.TokenID, info.ClassTag, info.TotalSupply)
	if err := NewTokenInfoBucket().Save(db, info); err != nil {
		return nil, err
	}
	if err := h.tokens.IssueToken(db, buyer, id); err != nil {
		return nil, err
	}

	h.em.Emit(TopicMint, MintEvent{
		Buyer:      buyer,
		InstanceID: id,
		TokenID:    info.TokenID,
		ClassTag:   info.ClassTag,
		Price:      info.Price,
	})
	return &easynft.DeliverResult{Data: tokenKey(id)}, nil
}

// validate resolves the buyer from the main signer and ensures the token
// exists and is purchasable.
func (h BuyTokenHandler) validate(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*BuyTokenMsg, *TokenInfo, easynft.Address, error) {
	var msg BuyTokenMsg
	if err := easynft.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	info, err := NewTokenInfoBucket().Get(db, msg.TokenID)
	if err != nil {
		return nil, nil, nil, err
	}
	if info == nil {
		return nil, nil, nil, errors.Wrapf(errors.ErrNotFound, "token %d", msg.TokenID)
	}
	if !info.CanBuy {
		return nil, nil, nil, errors.Wrapf(errors.ErrState, "token %d not purchasable", msg.TokenID)
	}
	return &msg, info, signer.Address(), nil
}

// TransferTokensHandler moves instance batches between accounts.
type TransferTokensHandler struct {
	auth   x.Authenticator
	pay    x.Payability
	tokens Controller
	em     events.Emitter
}

var _ easynft.Handler = TransferTokensHandler{}

func (h TransferTokensHandler) Check(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*easynft.CheckResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	gas := int64(transferCost + transferPerItemCost*len(msg.IDs))
	return &easynft.CheckResult{GasAllocated: gas}, nil
}

func (h TransferTokensHandler) Deliver(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*easynft.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.tokens.MoveTokens(db, msg.Src, msg.Dst, msg.IDs); err != nil {
		if ErrNotOwned.Is(err) {
			h.em.Emit(TopicFailure, FailureEvent{
				Op: "transfer", Account: msg.Src, Code: errors.Code(err),
			})
		}
		return nil, err
	}
	for _, id := range msg.IDs {
		h.em.Emit(TopicTransfer, TransferEvent{Src: msg.Src, Dst: msg.Dst, InstanceID: id})
	}
	return &easynft.DeliverResult{}, nil
}

func (h TransferTokensHandler) validate(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*TransferTokensMsg, error) {
	var msg TransferTokensMsg
	if err := easynft.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Src) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "cannot act as %s", msg.Src)
	}
	if !h.pay.IsPayable(msg.Dst) {
		return nil, errors.Wrapf(ErrNotPayable, "destination %s", msg.Dst)
	}
	return &msg, nil
}

// BurnTokenHandler destroys instances.
type BurnTokenHandler struct {
	auth   x.Authenticator
	tokens Controller
	em     events.Emitter
}

var _ easynft.Handler = BurnTokenHandler{}

func (h BurnTokenHandler) Check(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*easynft.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &easynft.CheckResult{GasAllocated: burnTokenCost}, nil
}

func (h BurnTokenHandler) Deliver(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*easynft.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	if err := h.tokens.BurnToken(db, msg.Owner, msg.InstanceID); err != nil {
		return nil, err
	}
	h.em.Emit(TopicBurn, BurnEvent{Owner: msg.Owner, InstanceID: msg.InstanceID})
	return &easynft.DeliverResult{}, nil
}

func (h BurnTokenHandler) validate(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*BurnTokenMsg, error) {
	var msg BurnTokenMsg
	if err := easynft.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "cannot act as %s", msg.Owner)
	}
	return &msg, nil
}

// SetCanBuyHandler toggles purchases of one catalog entry.
type SetCanBuyHandler struct {
	auth x.Authenticator
}

var _ easynft.Handler = SetCanBuyHandler{}

func (h SetCanBuyHandler) Check(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*easynft.CheckResult, error) {
	if _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &easynft.CheckResult{GasAllocated: setCanBuyCost}, nil
}

func (h SetCanBuyHandler) Deliver(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*easynft.DeliverResult, error) {
	msg, info, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}
	info.CanBuy = msg.CanBuy
	if err := NewTokenInfoBucket().Save(db, info); err != nil {
		return nil, err
	}
	return &easynft.DeliverResult{}, nil
}

func (h SetCanBuyHandler) validate(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*SetCanBuyMsg, *TokenInfo, error) {
	var msg SetCanBuyMsg
	if err := easynft.LoadMsg(tx, &msg); err != nil {
		return nil, nil, err
	}
	conf, err := loadConf(db)
	if err != nil {
		return nil, nil, err
	}
	if !h.auth.HasAddress(ctx, conf.Owner) {
		return nil, nil, errors.Wrap(errors.ErrUnauthorized, "not registry owner")
	}
	info, err := NewTokenInfoBucket().Get(db, msg.TokenID)
	if err != nil {
		return nil, nil, err
	}
	if info == nil {
		return nil, nil, errors.Wrapf(errors.ErrNotFound, "token %d", msg.TokenID)
	}
	return &msg, info, nil
}
