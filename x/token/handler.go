package token

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/x"
)

// RegisterRoutes will instantiate and register
// all handlers in this package
func RegisterRoutes(r tokenswap.Registry, auth x.Authenticator, control Controller) {
	r.Handle(pathSendMsg, NewSendHandler(auth, control))
	r.Handle(pathOpenAccountMsg, NewOpenAccountHandler(auth, control))
}

// RegisterQuery will register this bucket as "/accounts"
func RegisterQuery(qr tokenswap.QueryRouter) {
	NewBucket().Register("accounts", qr)
}

// SendHandler will handle sending tokens
type SendHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ tokenswap.Handler = SendHandler{}

// NewSendHandler creates a handler for SendMsg
func NewSendHandler(auth x.Authenticator, control Controller) SendHandler {
	return SendHandler{
		auth:    auth,
		control: control,
	}
}

// Check just verifies it is properly formed and returns
// the cost of executing it
func (h SendHandler) Check(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: sendTxCost}, nil
}

// Deliver moves the tokens from source to destination if
// all preconditions are met
func (h SendHandler) Deliver(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	// The source owner is the authority of a regular account.
	if err := h.control.Transfer(store, msg.Token, msg.Source, msg.Destination, msg.Source, msg.Amount); err != nil {
		return nil, err
	}
	return &tokenswap.DeliverResult{}, nil
}

func (h SendHandler) validate(ctx tokenswap.Context, tx tokenswap.Tx) (*SendMsg, error) {
	var msg SendMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	if !h.auth.HasAddress(ctx, msg.Source) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}

// OpenAccountHandler creates accounts on request of their owner.
type OpenAccountHandler struct {
	auth    x.Authenticator
	control Controller
}

var _ tokenswap.Handler = OpenAccountHandler{}

// NewOpenAccountHandler creates a handler for OpenAccountMsg
func NewOpenAccountHandler(auth x.Authenticator, control Controller) OpenAccountHandler {
	return OpenAccountHandler{
		auth:    auth,
		control: control,
	}
}

func (h OpenAccountHandler) Check(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	if _, err := h.validate(ctx, tx); err != nil {
		return nil, err
	}
	return &tokenswap.CheckResult{GasAllocated: openTxCost}, nil
}

func (h OpenAccountHandler) Deliver(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	msg, err := h.validate(ctx, tx)
	if err != nil {
		return nil, err
	}
	if err := h.control.OpenAccount(store, msg.Token, msg.Owner, msg.Owner); err != nil {
		return nil, err
	}
	return &tokenswap.DeliverResult{Data: AccountKey(msg.Token, msg.Owner)}, nil
}

func (h OpenAccountHandler) validate(ctx tokenswap.Context, tx tokenswap.Tx) (*OpenAccountMsg, error) {
	var msg OpenAccountMsg
	if err := tokenswap.LoadMsg(tx, &msg); err != nil {
		return nil, errors.Wrap(err, "load msg")
	}
	// Only the owner can sign, so no account is ever opened for a
	// derived address through this path.
	if !h.auth.HasAddress(ctx, msg.Owner) {
		return nil, errors.Wrap(errors.ErrUnauthorized, "account owner signature missing")
	}
	return &msg, nil
}
