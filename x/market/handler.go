package market

import (
	"github.com/easynft/easynft"
	"github.com/easynft/easynft/errors"
	"github.com/easynft/easynft/events"
	"github.com/easynft/easynft/orm"
	"github.com/easynft/easynft/x"
	"github.com/easynft/easynft/x/cash"
	"github.com/easynft/easynft/x/nft"
)

const (
	createSaleCost = 300
	cancelSaleCost = 100
	buySaleCost    = 300
)

// RegisterRoutes will instantiate and register all handlers in this
// package.
func RegisterRoutes(r easynft.Registry, auth x.Authenticator, ctrl cash.Controller, tokens nft.Controller, pay x.Payability, em events.Emitter) {
	r.Handle(pathCreateSale, CreateSaleHandler{auth: auth, tokens: tokens, em: em})
	r.Handle(pathCancelSale, CancelSaleHandler{auth: auth, tokens: tokens, em: em})
	r.Handle(pathBuySale, BuySaleHandler{auth: auth, cash: ctrl, tokens: tokens, pay: pay, em: em})
}

// RegisterQuery registers the sale book bucket for queries.
func RegisterQuery(qr easynft.QueryRouter) {
	NewSaleBookBucket().Register("sales", qr)
}

// CreateSaleHandler lists bundles, escrowing them on creation.
type CreateSaleHandler struct {
	auth   x.Authenticator
	tokens nft.Controller
	em     events.Emitter
}

var _ easynft.Handler = CreateSaleHandler{}

func (h CreateSaleHandler) Check(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*easynft.CheckResult, error) {
	if _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &easynft.CheckResult{GasAllocated: createSaleCost}, nil
}

// Deliver escrows the bundle first. Only once the market account holds
// every instance is the sale recorded, so no sale can ever exist with an
// unescrowed bundle.
func (h CreateSaleHandler) Deliver(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*easynft.DeliverResult, error) {
	msg, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.tokens.MoveTokens(db, msg.Seller, EscrowAddress(), msg.IDs); err != nil {
		failure := errors.Wrapf(ErrEscrowFailed, "%v", err)
		h.em.Emit(TopicFailure, FailureEvent{
			Op: "create", Account: msg.Seller, Code: errors.Code(failure),
		})
		return nil, failure
	}

	ids := saleSequence()
	seq, err := ids.NextInt(db)
	if err != nil {
		return nil, err
	}
	sale := &Sale{
		ID:    saleIDBase + seq,
		Price: msg.Price,
		IDs:   append([]int64(nil), msg.IDs...),
	}

	bucket := NewSaleBookBucket()
	book, err := bucket.Get(db, msg.Seller)
	if err != nil {
		return nil, err
	}
	if err := book.Add(sale); err != nil {
		return nil, err
	}
	if err := bucket.Save(db, msg.Seller, book); err != nil {
		return nil, err
	}

	h.em.Emit(TopicSaleCreated, SaleEvent{Seller: msg.Seller, Sale: *sale.Copy()})
	return &easynft.DeliverResult{Data: orm.EncodeSequence(sale.ID)}, nil
}

func (h CreateSaleHandler) validate(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*CreateSaleMsg, error) {
	var msg CreateSaleMsg
	if err := easynft.LoadMsg(tx, &msg); err != nil {
		return nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Seller) {
		return nil, errors.Wrapf(errors.ErrUnauthorized, "cannot act as %s", msg.Seller)
	}
	return &msg, nil
}

// CancelSaleHandler closes sales and returns their bundles.
type CancelSaleHandler struct {
	auth   x.Authenticator
	tokens nft.Controller
	em     events.Emitter
}

var _ easynft.Handler = CancelSaleHandler{}

func (h CancelSaleHandler) Check(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*easynft.CheckResult, error) {
	if _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &easynft.CheckResult{GasAllocated: cancelSaleCost}, nil
}

// Deliver is fail closed: the sale is removed only after the return
// transfer is confirmed, so a failed return leaves the sale open and the
// bundle escrowed.
func (h CancelSaleHandler) Deliver(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*easynft.DeliverResult, error) {
	msg, book, sale, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if err := h.tokens.MoveTokens(db, EscrowAddress(), msg.Seller, sale.IDs); err != nil {
		h.em.Emit(TopicFailure, FailureEvent{
			Op: "cancel", Account: msg.Seller, SaleID: sale.ID, Code: errors.Code(err),
		})
		return nil, errors.Wrapf(err, "cannot release escrow of sale %d", sale.ID)
	}

	if err := book.Remove(sale.ID); err != nil {
		return nil, err
	}
	if err := NewSaleBookBucket().Save(db, msg.Seller, book); err != nil {
		return nil, err
	}

	h.em.Emit(TopicSaleCancelled, SaleEvent{Seller: msg.Seller, Sale: *sale.Copy()})
	return &easynft.DeliverResult{}, nil
}

func (h CancelSaleHandler) validate(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*CancelSaleMsg, *SaleBook, *Sale, error) {
	var msg CancelSaleMsg
	if err := easynft.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, err
	}
	if !h.auth.HasAddress(ctx, msg.Seller) {
		return nil, nil, nil, errors.Wrapf(errors.ErrUnauthorized, "cannot act as %s", msg.Seller)
	}
	book, err := NewSaleBookBucket().Get(db, msg.Seller)
	if err != nil {
		return nil, nil, nil, err
	}
	sale := book.Get(msg.SaleID)
	if sale == nil {
		return nil, nil, nil, errors.Wrapf(ErrNoSale, "sale %d", msg.SaleID)
	}
	return &msg, book, sale, nil
}

// BuySaleHandler fulfills sales.
type BuySaleHandler struct {
	auth   x.Authenticator
	cash   cash.Controller
	tokens nft.Controller
	pay    x.Payability
	em     events.Emitter
}

var _ easynft.Handler = BuySaleHandler{}

func (h BuySaleHandler) Check(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*easynft.CheckResult, error) {
	if _, _, _, _, err := h.validate(ctx, db, tx); err != nil {
		return nil, err
	}
	return &easynft.CheckResult{GasAllocated: buySaleCost}, nil
}

// Deliver settles in two legs, payment first. A failed payment aborts
// with the sale still open and escrowed. A failed delivery after a
// captured payment cannot be rolled back here; it aborts loudly with
// ErrDeliveryFailed and a failure notification, and requires manual
// reconciliation.
func (h BuySaleHandler) Deliver(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*easynft.DeliverResult, error) {
	msg, buyer, book, sale, err := h.validate(ctx, db, tx)
	if err != nil {
		return nil, err
	}

	if sale.Price > 0 {
		if err := h.cash.MoveCoins(db, buyer, msg.Seller, sale.Price); err != nil {
			failure := errors.Wrapf(nft.ErrPaymentFailed, "sale %d: %v", sale.ID, err)
			h.em.Emit(TopicFailure, FailureEvent{
				Op: "buy", Account: buyer, SaleID: sale.ID, Code: errors.Code(failure),
			})
			return nil, failure
		}
	}

	if err := h.tokens.MoveTokens(db, EscrowAddress(), buyer, sale.IDs); err != nil {
		failure := errors.Wrapf(ErrDeliveryFailed, "sale %d: %v", sale.ID, err)
		easynft.GetLogger(ctx).Error("payment captured but bundle not delivered",
			"sale", sale.ID, "buyer", buyer, "err", err)
		h.em.Emit(TopicFailure, FailureEvent{
			Op: "buy", Account: buyer, SaleID: sale.ID, Code: errors.Code(failure),
		})
		return nil, failure
	}

	if err := book.Remove(sale.ID); err != nil {
		return nil, err
	}
	if err := NewSaleBookBucket().Save(db, msg.Seller, book); err != nil {
		return nil, err
	}

	h.em.Emit(TopicSaleFulfilled, FulfillEvent{
		Seller: msg.Seller,
		Buyer:  buyer,
		SaleID: sale.ID,
		Price:  sale.Price,
		IDs:    append([]int64(nil), sale.IDs...),
	})
	return &easynft.DeliverResult{}, nil
}

func (h BuySaleHandler) validate(ctx easynft.Context, db easynft.KVStore, tx easynft.Tx) (*BuySaleMsg, easynft.Address, *SaleBook, *Sale, error) {
	var msg BuySaleMsg
	if err := easynft.LoadMsg(tx, &msg); err != nil {
		return nil, nil, nil, nil, err
	}
	signer := x.MainSigner(ctx, h.auth)
	if signer == nil {
		return nil, nil, nil, nil, errors.Wrap(errors.ErrUnauthorized, "no signer")
	}
	buyer := signer.Address()
	if !h.pay.IsPayable(buyer) {
		return nil, nil, nil, nil, errors.Wrapf(nft.ErrNotPayable, "buyer %s", buyer)
	}
	book, err := NewSaleBookBucket().Get(db, msg.Seller)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	sale := book.Get(msg.SaleID)
	if sale == nil {
		return nil, nil, nil, nil, errors.Wrapf(ErrNoSale, "sale %d", msg.SaleID)
	}
	return &msg, buyer, book, sale, nil
}
