package swaptest

import "github.com/iov-one/tokenswap"

// Handler is a mock returning preset results and counting its calls.
//
// OnDeliver, if set, is called with the store before the result is
// returned, so a test can observe or mutate state written inside a
// decorated call.
type Handler struct {
	checkCall   int
	CheckResult tokenswap.CheckResult
	CheckErr    error

	deliverCall   int
	DeliverResult tokenswap.DeliverResult
	DeliverErr    error
	OnDeliver     func(tokenswap.KVStore)
}

var _ tokenswap.Handler = (*Handler)(nil)

func (h *Handler) Check(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	h.checkCall++
	if h.CheckErr != nil {
		return nil, h.CheckErr
	}
	res := h.CheckResult
	return &res, nil
}

func (h *Handler) Deliver(ctx tokenswap.Context, db tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	h.deliverCall++
	if h.OnDeliver != nil {
		h.OnDeliver(db)
	}
	if h.DeliverErr != nil {
		return nil, h.DeliverErr
	}
	res := h.DeliverResult
	return &res, nil
}

func (h *Handler) CheckCallCount() int {
	return h.checkCall
}

func (h *Handler) DeliverCallCount() int {
	return h.deliverCall
}

func (h *Handler) CallCount() int {
	return h.checkCall + h.deliverCall
}
