package nft

import (
	"context"
	"encoding/binary"
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
)

type testEnv struct {
	db     easynft.KVStore
	router *app.Router
	auth   easynfttest.CtxAuth
	cash   cash.Controller
	tokens Controller
	rec    *events.Recorder
	owner  easynft.Condition
}

func newTestEnv(t *testing.T, pay x.Payability) *testEnv {
	t.Helper()
	env := &testEnv{
		db:     store.MemStore(),
		router: app.NewRouter(),
		auth:   easynfttest.CtxAuth{Key: "auth"},
		cash:   cash.NewController(cash.NewWalletBucket()),
		tokens: NewController(),
		rec:    &events.Recorder{},
		owner:  easynfttest.NewCondition(),
	}
	require.NoError(t, saveConf(env.db, &Configuration{
		Metadata: &easynft.Metadata{Schema: 1},
		Owner:    env.owner.Address(),
	}))
	RegisterRoutes(env.router, env.auth, env.cash, pay, env.rec)
	return env
}

func (e *testEnv) deliver(signer easynft.Condition, msg easynft.Msg) (*easynft.DeliverResult, error) {
	ctx := e.auth.SetConditions(context.Background(), signer)
	return e.router.Deliver(ctx, e.db, &easynfttest.Tx{Msg: msg})
}

func (e *testEnv) createToken(t *testing.T, tokenID, classTag, total, price int64) {
	t.Helper()
	_, err := e.deliver(e.owner, &CreateTokenInfoMsg{
		Metadata:    &easynft.Metadata{Schema: 1},
		TokenID:     tokenID,
		ClassTag:    classTag,
		TotalAmount: total,
		Price:       price,
	})
	require.NoError(t, err)
}

func TestPurchaseLifecycle(t *testing.T) {
	env := newTestEnv(t, x.AllPayable{})
	env.createToken(t, 1000, 1, 2, 10)

	alice := easynfttest.NewCondition()
	bob := easynfttest.NewCondition()
	carol := easynfttest.NewCondition()
	for _, buyer := range []easynft.Condition{alice, bob, carol} {
		require.NoError(t, env.cash.IssueCoins(env.db, buyer.Address(), 30))
	}

	buy := func(c easynft.Condition) (*easynft.DeliverResult, error) {
		return env.deliver(c, &BuyTokenMsg{
			Metadata: &easynft.Metadata{Schema: 1},
			TokenID:  1000,
		})
	}

	res, err := buy(alice)
	require.NoError(t, err)
	id1 := int64(binary.BigEndian.Uint64(res.Data))
	assert.Equal(t, NewInstanceID(1000, 1, 1), id1)

	res, err = buy(bob)
	require.NoError(t, err)
	id2 := int64(binary.BigEndian.Uint64(res.Data))
	assert.Equal(t, NewInstanceID(1000, 1, 2), id2)
	assert.NotEqual(t, id1, id2)

	// supply is exhausted, the third purchase fails without any payment
	_, err = buy(carol)
	assert.True(t, ErrSupplyExhausted.Is(err))
	balance, err := env.cash.Balance(env.db, carol.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(30), balance)
	owned, err := env.tokens.Tokens(env.db, carol.Address())
	require.NoError(t, err)
	assert.Empty(t, owned)

	// both payments landed with the registry owner
	balance, err = env.cash.Balance(env.db, env.owner.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(20), balance)

	// ownership was credited
	owned, err = env.tokens.Tokens(env.db, alice.Address())
	require.NoError(t, err)
	assert.Equal(t, []int64{id1}, owned)

	// two mints, then the exhaustion failure
	assert.Equal(t, []string{TopicMint, TopicMint, TopicFailure}, env.rec.Topics())
	failure := env.rec.Events[2].Event.(FailureEvent)
	assert.Equal(t, errors.Code(ErrSupplyExhausted), failure.Code)

	// the catalog counted both mints
	info, err := NewTokenInfoBucket().Get(env.db, 1000)
	require.NoError(t, err)
	assert.Equal(t, int64(2), info.TotalSupply)
}

func TestPurchaseWithoutFunds(t *testing.T) {
	env := newTestEnv(t, x.AllPayable{})
	env.createToken(t, 2000, 0, 5, 100)

	broke := easynfttest.NewCondition()
	_, err := env.deliver(broke, &BuyTokenMsg{
		Metadata: &easynft.Metadata{Schema: 1},
		TokenID:  2000,
	})
	assert.True(t, ErrPaymentFailed.Is(err))

	// a failed payment mints nothing
	info, err := NewTokenInfoBucket().Get(env.db, 2000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.TotalSupply)
	owned, err := env.tokens.Tokens(env.db, broke.Address())
	require.NoError(t, err)
	assert.Empty(t, owned)

	require.Len(t, env.rec.Events, 1)
	failure := env.rec.Events[0].Event.(FailureEvent)
	assert.Equal(t, errors.Code(ErrPaymentFailed), failure.Code)
}

func TestCreateTokenInfoAuthorization(t *testing.T) {
	env := newTestEnv(t, x.AllPayable{})

	msg := &CreateTokenInfoMsg{
		Metadata:    &easynft.Metadata{Schema: 1},
		TokenID:     1,
		TotalAmount: 1,
	}

	stranger := easynfttest.NewCondition()
	_, err := env.deliver(stranger, msg)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	_, err = env.deliver(env.owner, msg)
	require.NoError(t, err)

	// a token id is registered once
	_, err = env.deliver(env.owner, msg)
	assert.True(t, errors.ErrDuplicate.Is(err))
}

func TestTransferBatchAllOrNothing(t *testing.T) {
	env := newTestEnv(t, x.AllPayable{})

	alice := easynfttest.NewCondition()
	bob := easynfttest.NewCondition()
	require.NoError(t, env.tokens.IssueToken(env.db, alice.Address(), 5))
	require.NoError(t, env.tokens.IssueToken(env.db, alice.Address(), 6))

	// one unowned id poisons the whole batch
	_, err := env.deliver(alice, &TransferTokensMsg{
		Metadata: &easynft.Metadata{Schema: 1},
		Src:      alice.Address(),
		Dst:      bob.Address(),
		IDs:      []int64{5, 99},
	})
	assert.True(t, ErrNotOwned.Is(err))
	owned, err := env.tokens.Tokens(env.db, alice.Address())
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 6}, owned)

	// only the source can move its assets
	_, err = env.deliver(bob, &TransferTokensMsg{
		Metadata: &easynft.Metadata{Schema: 1},
		Src:      alice.Address(),
		Dst:      bob.Address(),
		IDs:      []int64{5},
	})
	assert.True(t, errors.ErrUnauthorized.Is(err))

	_, err = env.deliver(alice, &TransferTokensMsg{
		Metadata: &easynft.Metadata{Schema: 1},
		Src:      alice.Address(),
		Dst:      bob.Address(),
		IDs:      []int64{6, 5},
	})
	require.NoError(t, err)
	owned, err = env.tokens.Tokens(env.db, bob.Address())
	require.NoError(t, err)
	assert.Equal(t, []int64{5, 6}, owned)

	// one notification per moved instance, in input order
	topics := env.rec.Topics()
	assert.Equal(t, []string{TopicFailure, TopicTransfer, TopicTransfer}, topics)
	first := env.rec.Events[1].Event.(TransferEvent)
	assert.Equal(t, int64(6), first.InstanceID)
}

func TestTransferRefusedDestination(t *testing.T) {
	alice := easynfttest.NewCondition()
	vault := easynfttest.NewCondition()
	env := newTestEnv(t, x.RefuseList{vault.Address()})
	require.NoError(t, env.tokens.IssueToken(env.db, alice.Address(), 5))

	_, err := env.deliver(alice, &TransferTokensMsg{
		Metadata: &easynft.Metadata{Schema: 1},
		Src:      alice.Address(),
		Dst:      vault.Address(),
		IDs:      []int64{5},
	})
	assert.True(t, ErrNotPayable.Is(err))
	owned, err := env.tokens.Tokens(env.db, alice.Address())
	require.NoError(t, err)
	assert.Equal(t, []int64{5}, owned)
}

func TestBurnToken(t *testing.T) {
	env := newTestEnv(t, x.AllPayable{})

	alice := easynfttest.NewCondition()
	require.NoError(t, env.tokens.IssueToken(env.db, alice.Address(), 7))

	burn := &BurnTokenMsg{
		Metadata:   &easynft.Metadata{Schema: 1},
		Owner:      alice.Address(),
		InstanceID: 7,
	}

	stranger := easynfttest.NewCondition()
	_, err := env.deliver(stranger, burn)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	_, err = env.deliver(alice, burn)
	require.NoError(t, err)
	owned, err := env.tokens.Tokens(env.db, alice.Address())
	require.NoError(t, err)
	assert.Empty(t, owned)

	// gone means gone
	_, err = env.deliver(alice, burn)
	assert.True(t, ErrNotOwned.Is(err))

	assert.Equal(t, []string{TopicBurn}, env.rec.Topics())
}

func TestSetCanBuy(t *testing.T) {
	env := newTestEnv(t, x.AllPayable{})
	env.createToken(t, 1000, 0, 5, 0)

	toggle := &SetCanBuyMsg{
		Metadata: &easynft.Metadata{Schema: 1},
		TokenID:  1000,
		CanBuy:   false,
	}

	stranger := easynfttest.NewCondition()
	_, err := env.deliver(stranger, toggle)
	assert.True(t, errors.ErrUnauthorized.Is(err))

	_, err = env.deliver(env.owner, toggle)
	require.NoError(t, err)

	_, err = env.deliver(stranger, &BuyTokenMsg{
		Metadata: &easynft.Metadata{Schema: 1},
		TokenID:  1000,
	})
	assert.True(t, errors.ErrState.Is(err))
}
