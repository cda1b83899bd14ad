package market

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easynft/easynft"
	"github.com/easynft/easynft/app"
	"github.com/easynft/easynft/easynfttest"
	"github.com/easynft/easynft/errors"
	"github.com/easynft/easynft/events"
	"github.com/easynft/easynft/store"
	"github.com/easynft/easynft/x"
	"github.com/easynft/easynft/x/cash"
	"github.com/easynft/easynft/x/nft"
)

type testEnv struct {
	db     easynft.KVStore
	router *app.Router
	auth   easynfttest.CtxAuth
	cash   cash.Controller
	tokens nft.Controller
	rec    *events.Recorder
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := &testEnv{
		db:     store.MemStore(),
		router: app.NewRouter(),
		auth:   easynfttest.CtxAuth{Key: "auth"},
		cash:   cash.NewController(cash.NewWalletBucket()),
		tokens: nft.NewController(),
		rec:    &events.Recorder{},
	}
	RegisterRoutes(env.router, env.auth, env.cash, env.tokens, x.AllPayable{}, env.rec)
	return env
}

func (e *testEnv) deliver(signer easynft.Condition, msg easynft.Msg) (*easynft.DeliverResult, error) {
	ctx := e.auth.SetConditions(context.Background(), signer)
	return e.router.Deliver(ctx, e.db, &easynfttest.Tx{Msg: msg})
}

func (e *testEnv) createSale(t *testing.T, seller easynft.Condition, price int64, ids []int64) int64 {
	t.Helper()
	_, err := e.deliver(seller, &CreateSaleMsg{
		Metadata: &easynft.Metadata{Schema: 1},
		Seller:   seller.Address(),
		Price:    price,
		IDs:      ids,
	})
	require.NoError(t, err)
	book, err := NewSaleBookBucket().Get(e.db, seller.Address())
	require.NoError(t, err)
	require.NotEmpty(t, book.Sales)
	return book.Sales[len(book.Sales)-1].ID
}

func (e *testEnv) owned(t *testing.T, addr easynft.Address) []int64 {
	t.Helper()
	ids, err := e.tokens.Tokens(e.db, addr)
	require.NoError(t, err)
	return ids
}

func TestCreateCancelRoundTrip(t *testing.T) {
	env := newTestEnv(t)
	seller := easynfttest.NewCondition()
	require.NoError(t, env.tokens.IssueToken(env.db, seller.Address(), 5))
	require.NoError(t, env.tokens.IssueToken(env.db, seller.Address(), 6))

	saleID := env.createSale(t, seller, 100, []int64{5, 6})
	assert.True(t, saleID > saleIDBase)

	// the bundle is escrowed while the sale is open
	assert.Empty(t, env.owned(t, seller.Address()))
	assert.Equal(t, []int64{5, 6}, env.owned(t, EscrowAddress()))

	_, err := env.deliver(seller, &CancelSaleMsg{
		Metadata: &easynft.Metadata{Schema: 1},
		Seller:   seller.Address(),
		SaleID:   saleID,
	})
	require.NoError(t, err)

	// cancellation restores the pre-listing state exactly
	assert.Equal(t, []int64{5, 6}, env.owned(t, seller.Address()))
	assert.Empty(t, env.owned(t, EscrowAddress()))
	sales, err := NewSaleBookBucket().Sales(env.db, seller.Address())
	require.NoError(t, err)
	assert.Empty(t, sales)

	assert.Equal(t, []string{TopicSaleCreated, TopicSaleCancelled}, env.rec.Topics())
}

func TestCreateSaleRequiresOwnership(t *testing.T) {
	env := newTestEnv(t)
	seller := easynfttest.NewCondition()
	require.NoError(t, env.tokens.IssueToken(env.db, seller.Address(), 5))

	_, err := env.deliver(seller, &CreateSaleMsg{
		Metadata: &easynft.Metadata{Schema: 1},
		Seller:   seller.Address(),
		Price:    10,
		IDs:      []int64{5, 99},
	})
	assert.True(t, ErrEscrowFailed.Is(err))

	// nothing escrowed, nothing listed
	assert.Equal(t, []int64{5}, env.owned(t, seller.Address()))
	sales, err := NewSaleBookBucket().Sales(env.db, seller.Address())
	require.NoError(t, err)
	assert.Empty(t, sales)

	require.Len(t, env.rec.Events, 1)
	failure := env.rec.Events[0].Event.(FailureEvent)
	assert.Equal(t, errors.Code(ErrEscrowFailed), failure.Code)
}

func TestFulfillSale(t *testing.T) {
	env := newTestEnv(t)
	seller := easynfttest.NewCondition()
	buyer := easynfttest.NewCondition()
	require.NoError(t, env.tokens.IssueToken(env.db, seller.Address(), 5))
	require.NoError(t, env.tokens.IssueToken(env.db, seller.Address(), 6))
	require.NoError(t, env.cash.IssueCoins(env.db, buyer.Address(), 150))

	saleID := env.createSale(t, seller, 100, []int64{5, 6})

	buy := &BuySaleMsg{
		Metadata: &easynft.Metadata{Schema: 1},
		Seller:   seller.Address(),
		SaleID:   saleID,
	}
	_, err := env.deliver(buyer, buy)
	require.NoError(t, err)

	// payment settled and the bundle was delivered
	balance, err := env.cash.Balance(env.db, seller.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
	assert.Equal(t, []int64{5, 6}, env.owned(t, buyer.Address()))
	assert.Empty(t, env.owned(t, EscrowAddress()))

	// a sale settles at most once
	_, err = env.deliver(buyer, buy)
	assert.True(t, ErrNoSale.Is(err))
	_, err = env.deliver(seller, &CancelSaleMsg{
		Metadata: &easynft.Metadata{Schema: 1},
		Seller:   seller.Address(),
		SaleID:   saleID,
	})
	assert.True(t, ErrNoSale.Is(err))

	assert.Equal(t, []string{TopicSaleCreated, TopicSaleFulfilled}, env.rec.Topics())
	fulfilled := env.rec.Events[1].Event.(FulfillEvent)
	assert.Equal(t, saleID, fulfilled.SaleID)
	assert.Equal(t, []int64{5, 6}, fulfilled.IDs)
}

func TestFulfillWithoutFunds(t *testing.T) {
	env := newTestEnv(t)
	seller := easynfttest.NewCondition()
	buyer := easynfttest.NewCondition()
	require.NoError(t, env.tokens.IssueToken(env.db, seller.Address(), 5))

	saleID := env.createSale(t, seller, 100, []int64{5})

	_, err := env.deliver(buyer, &BuySaleMsg{
		Metadata: &easynft.Metadata{Schema: 1},
		Seller:   seller.Address(),
		SaleID:   saleID,
	})
	assert.True(t, nft.ErrPaymentFailed.Is(err))

	// the sale stays open and escrowed, nothing moved
	assert.Equal(t, []int64{5}, env.owned(t, EscrowAddress()))
	assert.Empty(t, env.owned(t, buyer.Address()))
	sales, err := NewSaleBookBucket().Sales(env.db, seller.Address())
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, saleID, sales[0].ID)
}

func TestCancelByStranger(t *testing.T) {
	env := newTestEnv(t)
	seller := easynfttest.NewCondition()
	stranger := easynfttest.NewCondition()
	require.NoError(t, env.tokens.IssueToken(env.db, seller.Address(), 5))

	saleID := env.createSale(t, seller, 10, []int64{5})

	// acting as the seller without its key
	_, err := env.deliver(stranger, &CancelSaleMsg{
		Metadata: &easynft.Metadata{Schema: 1},
		Seller:   seller.Address(),
		SaleID:   saleID,
	})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	// the stranger's own book has no such sale
	_, err = env.deliver(stranger, &CancelSaleMsg{
		Metadata: &easynft.Metadata{Schema: 1},
		Seller:   stranger.Address(),
		SaleID:   saleID,
	})
	assert.True(t, ErrNoSale.Is(err))

	// the sale and its escrow are untouched
	assert.Equal(t, []int64{5}, env.owned(t, EscrowAddress()))
	sales, err := NewSaleBookBucket().Sales(env.db, seller.Address())
	require.NoError(t, err)
	assert.Len(t, sales, 1)
}

func TestFulfillDeliveryFailureIsLoud(t *testing.T) {
	env := newTestEnv(t)
	seller := easynfttest.NewCondition()
	buyer := easynfttest.NewCondition()
	require.NoError(t, env.tokens.IssueToken(env.db, seller.Address(), 5))
	require.NoError(t, env.cash.IssueCoins(env.db, buyer.Address(), 100))

	saleID := env.createSale(t, seller, 100, []int64{5})

	// simulate escrow corruption: the bundle disappears from the escrow
	// account behind the market's back
	hole := easynfttest.NewCondition()
	require.NoError(t, env.tokens.MoveTokens(env.db, EscrowAddress(), hole.Address(), []int64{5}))

	_, err := env.deliver(buyer, &BuySaleMsg{
		Metadata: &easynft.Metadata{Schema: 1},
		Seller:   seller.Address(),
		SaleID:   saleID,
	})
	assert.True(t, ErrDeliveryFailed.Is(err))

	// the payment was captured and is not rolled back, the sale remains
	// recorded for manual reconciliation
	balance, err := env.cash.Balance(env.db, seller.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(100), balance)
	sales, err := NewSaleBookBucket().Sales(env.db, seller.Address())
	require.NoError(t, err)
	assert.Len(t, sales, 1)

	topics := env.rec.Topics()
	require.Len(t, topics, 2)
	assert.Equal(t, TopicFailure, topics[1])
	failure := env.rec.Events[1].Event.(FailureEvent)
	assert.Equal(t, errors.Code(ErrDeliveryFailed), failure.Code)
}

func TestSaleIDsAreGlobal(t *testing.T) {
	env := newTestEnv(t)
	first := easynfttest.NewCondition()
	second := easynfttest.NewCondition()
	require.NoError(t, env.tokens.IssueToken(env.db, first.Address(), 1))
	require.NoError(t, env.tokens.IssueToken(env.db, second.Address(), 2))

	a := env.createSale(t, first, 1, []int64{1})
	b := env.createSale(t, second, 1, []int64{2})
	assert.Equal(t, a+1, b)
}
