package token

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

const (
	pathSendMsg        = "token/send"
	pathOpenAccountMsg = "token/open"

	sendTxCost int64 = 100
	openTxCost int64 = 50

	maxMemoSize int = 128
)

// SendMsg moves tokens between two accounts of the same token type.
type SendMsg struct {
	Token       tokenswap.Address `json:"token"`
	Source      tokenswap.Address `json:"source"`
	Destination tokenswap.Address `json:"destination"`
	Amount      uint64            `json:"amount" binary:"fixed64"`
	Memo        string            `json:"memo,omitempty"`
}

var _ tokenswap.Msg = (*SendMsg)(nil)

// Path returns the routing path for this message
func (SendMsg) Path() string {
	return pathSendMsg
}

// Validate makes sure that this is sensible
func (m *SendMsg) Validate() error {
	if m.Amount == 0 {
		return errors.Wrap(errors.ErrAmount, "non-positive SendMsg")
	}
	if err := m.Token.Validate(); err != nil {
		return errors.Wrap(err, "token")
	}
	if err := m.Source.Validate(); err != nil {
		return errors.Wrap(err, "source")
	}
	if err := m.Destination.Validate(); err != nil {
		return errors.Wrap(err, "destination")
	}
	if len(m.Memo) > maxMemoSize {
		return errors.Wrap(errors.ErrInput, "memo too long")
	}
	return nil
}

// OpenAccountMsg creates an empty account controlled by its owner.
type OpenAccountMsg struct {
	Token tokenswap.Address `json:"token"`
	Owner tokenswap.Address `json:"owner"`
}

var _ tokenswap.Msg = (*OpenAccountMsg)(nil)

func (OpenAccountMsg) Path() string {
	return pathOpenAccountMsg
}

func (m *OpenAccountMsg) Validate() error {
	if err := m.Token.Validate(); err != nil {
		return errors.Wrap(err, "token")
	}
	if err := m.Owner.Validate(); err != nil {
		return errors.Wrap(err, "owner")
	}
	return nil
}
