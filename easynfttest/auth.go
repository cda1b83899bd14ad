/*
Package easynfttest provides mocks and helpers for testing handlers. They
implement the same interfaces the production types do but with fully
controllable behavior.
*/
package easynfttest

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/easynft/easynft"
	"github.com/easynft/easynft/x"
)

// Auth is a mock implementing x.Authenticator. It authenticates whatever
// conditions it was given.
type Auth struct {
	// Signer is the main signer, returned first.
	Signer easynft.Condition
	// Signers are additional conditions.
	Signers []easynft.Condition
}

var _ x.Authenticator = (*Auth)(nil)

func (a *Auth) GetConditions(easynft.Context) []easynft.Condition {
	var conds []easynft.Condition
	if a.Signer != nil {
		conds = append(conds, a.Signer)
	}
	return append(conds, a.Signers...)
}

func (a *Auth) HasAddress(ctx easynft.Context, addr easynft.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}

// CtxAuth reads conditions previously attached to the context. Use it
// when a test needs per-call authentication rather than a fixed set.
type CtxAuth struct {
	Key string
}

var _ x.Authenticator = CtxAuth{}

type ctxAuthKey string

// SetConditions returns a context with the given conditions attached.
func (a CtxAuth) SetConditions(ctx easynft.Context, conds ...easynft.Condition) easynft.Context {
	return context.WithValue(ctx, ctxAuthKey(a.Key), conds)
}

func (a CtxAuth) GetConditions(ctx easynft.Context) []easynft.Condition {
	if conds, ok := ctx.Value(ctxAuthKey(a.Key)).([]easynft.Condition); ok {
		return conds
	}
	return nil
}

func (a CtxAuth) HasAddress(ctx easynft.Context, addr easynft.Address) bool {
	for _, c := range a.GetConditions(ctx) {
		if c.Address().Equals(addr) {
			return true
		}
	}
	return false
}

var condCnt int64

// NewCondition returns a new, unique condition for tests.
func NewCondition() easynft.Condition {
	n := atomic.AddInt64(&condCnt, 1)
	return easynft.NewCondition("test", "cond", []byte(fmt.Sprint(n)))
}
