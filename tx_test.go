package tokenswap

import (
	"testing"

	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/swaptest/assert"
)

func TestLoadMsg(t *testing.T) {
	cases := map[string]struct {
		Tx      Tx
		Dest    interface{}
		WantMsg Msg
		WantErr *errors.Error
	}{
		"success, msgmock type message": {
			Tx:      &TxMock{Msg: &MsgMock{ID: 4219}},
			Dest:    &MsgMock{},
			WantMsg: &MsgMock{ID: 4219},
		},
		"transaction contains a nil message": {
			Tx:      &TxMock{Msg: nil},
			Dest:    &MsgMock{},
			WantErr: errors.ErrState,
		},
		"transaction contains a typed nil message": {
			Tx:      &TxMock{Msg: (*MsgMock)(nil)},
			Dest:    &MsgMock{},
			WantErr: errors.ErrState,
		},
		"invalid destination message, not a pointer": {
			Tx:      &TxMock{Msg: &MsgMock{ID: 81421}},
			Dest:    MsgMock{},
			WantErr: errors.ErrType,
		},
		"invalid destination message, wrong message type": {
			Tx:      &TxMock{Msg: &OtherMsgMock{}},
			Dest:    &MsgMock{},
			WantErr: errors.ErrType,
		},
		"invalid destination message, unaddressable": {
			Tx:      &TxMock{Msg: &MsgMock{ID: 91841231}},
			Dest:    (*MsgMock)(nil),
			WantErr: errors.ErrType,
		},
		"invalid destination message type, random value": {
			Tx:      &TxMock{Msg: &MsgMock{ID: 2914}},
			Dest:    "foobar",
			WantErr: errors.ErrType,
		},
		"invalid message in transaction, failed validation": {
			Tx:      &TxMock{Msg: &MsgMock{ID: 5, Err: errors.ErrExpired}},
			Dest:    &MsgMock{},
			WantErr: errors.ErrExpired,
		},
		"transaction cannot provide a message": {
			Tx:      &TxMock{Err: errors.ErrType},
			Dest:    &MsgMock{},
			WantErr: errors.ErrType,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			if err := LoadMsg(tc.Tx, tc.Dest); !tc.WantErr.Is(err) {
				t.Fatalf("want %q error, got %q", tc.WantErr, err)
			}
			if tc.WantErr == nil {
				assert.Equal(t, tc.WantMsg, tc.Dest)
			}
		})
	}
}

func TestGetPath(t *testing.T) {
	assert.Equal(t, "mock", GetPath(&TxMock{Msg: &MsgMock{}}))
	assert.Equal(t, "(missing)", GetPath(&TxMock{}))
	assert.Equal(t, "(missing)", GetPath(&TxMock{Err: errors.ErrType}))
}

type TxMock struct {
	Msg Msg
	Err error
}

func (tx *TxMock) GetMsg() (Msg, error) {
	return tx.Msg, tx.Err
}

type MsgMock struct {
	// ID is used only to compare instances if the content is the same.
	ID  int64
	Err error
}

func (mock *MsgMock) Path() string { return "mock" }

func (mock *MsgMock) Validate() error {
	return mock.Err
}

type OtherMsgMock struct{}

func (OtherMsgMock) Path() string { return "other" }

func (OtherMsgMock) Validate() error { return nil }
