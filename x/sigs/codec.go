package sigs

import (
	amino "github.com/tendermint/go-amino"
)

// cdc encodes the nonce bucket content.
var cdc = amino.NewCodec()
