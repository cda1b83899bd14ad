package easynfttest

import (
	"github.com/easynft/easynft"
)

// Tx is a mock transaction carrying one message.
type Tx struct {
	// Msg is returned by GetMsg.
	Msg easynft.Msg
	// Err, if set, is returned instead.
	Err error
}

var _ easynft.Tx = (*Tx)(nil)

func (tx *Tx) GetMsg() (easynft.Msg, error) {
	if tx.Err != nil {
		return nil, tx.Err
	}
	return tx.Msg, nil
}

// Handler is a mock implementing easynft.Handler that counts calls and
// returns fixed results.
type Handler struct {
	checkCall   int
	deliverCall int

	CheckResult   easynft.CheckResult
	DeliverResult easynft.DeliverResult
	CheckErr      error
	DeliverErr    error
}

var _ easynft.Handler = (*Handler)(nil)

func (h *Handler) Check(easynft.Context, easynft.KVStore, easynft.Tx) (*easynft.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(easynft.Context, easynft.KVStore, easynft.Tx) (*easynft.DeliverResult, error) {
	h.deliverCall++
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

// CheckCallCount returns the number of times Check was called.
func (h *Handler) CheckCallCount() int { return h.checkCall }

// DeliverCallCount returns the number of times Deliver was called.
func (h *Handler) DeliverCallCount() int { return h.deliverCall }

// CallCount returns the total number of calls.
func (h *Handler) CallCount() int { return h.checkCall + h.deliverCall }
