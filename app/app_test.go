package app_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/easynft/easynft"
	"github.com/easynft/easynft/app"
	"github.com/easynft/easynft/easynfttest"
	"github.com/easynft/easynft/events"
	"github.com/easynft/easynft/x"
	"github.com/easynft/easynft/x/cash"
	"github.com/easynft/easynft/x/market"
	"github.com/easynft/easynft/x/nft"
)

// TestFullStack runs a complete mint, list and fulfill scenario against
// a disk backed commit store, with state surviving commits.
func TestFullStack(t *testing.T) {
	owner := easynfttest.NewCondition()
	seller := easynfttest.NewCondition()
	buyer := easynfttest.NewCondition()

	db := easynfttest.CommitKVStore(t)
	require.NoError(t, db.LoadLatestVersion())

	// genesis
	cashOpts, err := json.Marshal([]interface{}{
		map[string]interface{}{"address": seller.Address().String(), "balance": 50},
		map[string]interface{}{"address": buyer.Address().String(), "balance": 500},
	})
	require.NoError(t, err)
	nftOpts, err := json.Marshal(map[string]interface{}{
		"owner": owner.Address().String(),
	})
	require.NoError(t, err)
	opts := easynft.Options{"cash": cashOpts, "nft": nftOpts}

	init := app.ChainInitializers(cash.Initializer{}, nft.Initializer{})
	genesis := db.CacheWrap()
	require.NoError(t, init.FromGenesis(opts, genesis))
	require.NoError(t, genesis.Write())
	_, err = db.Commit()
	require.NoError(t, err)

	// assemble the application
	auth := easynfttest.CtxAuth{Key: "auth"}
	cashCtrl := cash.NewController(cash.NewWalletBucket())
	tokens := nft.NewController()
	var rec events.Recorder
	router := app.NewRouter()
	nft.RegisterRoutes(router, auth, cashCtrl, x.AllPayable{}, &rec)
	market.RegisterRoutes(router, auth, cashCtrl, tokens, x.AllPayable{}, &rec)
	qr := easynft.NewQueryRouter()
	nft.RegisterQuery(qr)
	market.RegisterQuery(qr)

	deliver := func(signer easynft.Condition, msg easynft.Msg) (*easynft.DeliverResult, error) {
		ctx := auth.SetConditions(context.Background(), signer)
		block := db.CacheWrap()
		res, err := router.Deliver(ctx, block, &easynfttest.Tx{Msg: msg})
		if err != nil {
			block.Discard()
			return nil, err
		}
		require.NoError(t, block.Write())
		_, err = db.Commit()
		require.NoError(t, err)
		return res, nil
	}

	// the owner opens a catalog entry, the seller mints two instances
	_, err = deliver(owner, &nft.CreateTokenInfoMsg{
		Metadata:    &easynft.Metadata{Schema: 1},
		TokenID:     1000,
		ClassTag:    2,
		TotalAmount: 10,
		Price:       10,
	})
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = deliver(seller, &nft.BuyTokenMsg{
			Metadata: &easynft.Metadata{Schema: 1},
			TokenID:  1000,
		})
		require.NoError(t, err)
	}
	minted, err := tokens.Tokens(db, seller.Address())
	require.NoError(t, err)
	require.Len(t, minted, 2)

	// the seller lists both, the buyer fulfills
	_, err = deliver(seller, &market.CreateSaleMsg{
		Metadata: &easynft.Metadata{Schema: 1},
		Seller:   seller.Address(),
		Price:    100,
		IDs:      minted,
	})
	require.NoError(t, err)
	sales, err := market.NewSaleBookBucket().Sales(db, seller.Address())
	require.NoError(t, err)
	require.Len(t, sales, 1)

	_, err = deliver(buyer, &market.BuySaleMsg{
		Metadata: &easynft.Metadata{Schema: 1},
		Seller:   seller.Address(),
		SaleID:   sales[0].ID,
	})
	require.NoError(t, err)

	// final ownership and balances
	owned, err := tokens.Tokens(db, buyer.Address())
	require.NoError(t, err)
	assert.Equal(t, minted, owned)
	balance, err := cashCtrl.Balance(db, seller.Address())
	require.NoError(t, err)
	assert.Equal(t, int64(130), balance)

	// the ownership bucket answers queries
	h := qr.Handler("/nftaccounts")
	require.NotNil(t, h)
	models, err := h.Query(db, easynft.KeyQueryMod, buyer.Address())
	require.NoError(t, err)
	assert.Len(t, models, 1)
}
