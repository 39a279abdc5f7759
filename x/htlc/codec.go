package htlc

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
	cdc.RegisterConcrete(&OpenMsg{}, pathOpenMsg, nil)
	cdc.RegisterConcrete(&RedeemMsg{}, pathRedeemMsg, nil)
	cdc.RegisterConcrete(&RefundAfterExpiryMsg{}, pathRefundAfterExpiryMsg, nil)
	cdc.RegisterConcrete(&RefundWithConsentMsg{}, pathRefundWithConsentMsg, nil)
}
