package token

import (
	amino "github.com/tendermint/go-amino"
)

var cdc = amino.NewCodec()

func init() {
	RegisterCodec(cdc)
}

// RegisterCodec registers all messages of this package in given codec.
// Registered names are part of the transaction wire format.
func RegisterCodec(cdc *amino.Codec) {
	cdc.RegisterConcrete(&SendMsg{}, "token/send", nil)
	cdc.RegisterConcrete(&OpenAccountMsg{}, "token/open", nil)
}
