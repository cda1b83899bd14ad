package x_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/easynft/easynft"
	"github.com/easynft/easynft/easynfttest"
	"github.com/easynft/easynft/x"
)

func TestChainAuth(t *testing.T) {
	a := easynfttest.NewCondition()
	b := easynfttest.NewCondition()
	c := easynfttest.NewCondition()

	auth := x.ChainAuth(
		&easynfttest.Auth{Signer: a},
		&easynfttest.Auth{Signers: []easynft.Condition{b}},
	)

	ctx := context.Background()
	assert.True(t, auth.HasAddress(ctx, a.Address()))
	assert.True(t, auth.HasAddress(ctx, b.Address()))
	assert.False(t, auth.HasAddress(ctx, c.Address()))

	conds := auth.GetConditions(ctx)
	assert.Equal(t, []easynft.Condition{a, b}, conds)

	// the first condition wins as main signer
	assert.Equal(t, a, x.MainSigner(ctx, auth))

	assert.True(t, x.HasAllAddresses(ctx, auth, []easynft.Address{a.Address(), b.Address()}))
	assert.False(t, x.HasAllAddresses(ctx, auth, []easynft.Address{a.Address(), c.Address()}))
}

func TestMainSignerEmpty(t *testing.T) {
	auth := x.ChainAuth(&easynfttest.Auth{})
	assert.Nil(t, x.MainSigner(context.Background(), auth))
}

func TestRefuseList(t *testing.T) {
	blocked := easynfttest.NewCondition().Address()
	open := easynfttest.NewCondition().Address()

	var all x.AllPayable
	assert.True(t, all.IsPayable(blocked))

	list := x.RefuseList{blocked}
	assert.False(t, list.IsPayable(blocked))
	assert.True(t, list.IsPayable(open))
}
