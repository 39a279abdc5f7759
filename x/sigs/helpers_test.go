package sigs

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/swaptest"
)

// StdTx is a signed transaction carrying a mock message. Sign bytes are
// the message route path, which is enough to tell messages apart.
type StdTx struct {
	swaptest.Tx
	Signatures []*StdSignature
}

var _ SignedTx = (*StdTx)(nil)
var _ tokenswap.Tx = (*StdTx)(nil)

func NewStdTx(payload []byte) *StdTx {
	return &StdTx{Tx: swaptest.Tx{Msg: &swaptest.Msg{RoutePath: string(payload)}}}
}

func (tx *StdTx) GetSignatures() []*StdSignature {
	return tx.Signatures
}

func (tx *StdTx) GetSignBytes() ([]byte, error) {
	msg, err := tx.GetMsg()
	if err != nil {
		return nil, err
	}
	return []byte(msg.Path()), nil
}

// SigCheckHandler stores the seen signers on each call
type SigCheckHandler struct {
	Signers []tokenswap.Address
}

var _ tokenswap.Handler = (*SigCheckHandler)(nil)

func (s *SigCheckHandler) Check(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.CheckResult, error) {
	s.Signers = Authenticate{}.GetSigners(ctx)
	return &tokenswap.CheckResult{}, nil
}

func (s *SigCheckHandler) Deliver(ctx tokenswap.Context, store tokenswap.KVStore, tx tokenswap.Tx) (*tokenswap.DeliverResult, error) {
	s.Signers = Authenticate{}.GetSigners(ctx)
	return &tokenswap.DeliverResult{}, nil
}
