package swaptest

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/crypto"
)

// Key is a random ed25519 key that can sign and exposes its address.
type Key struct {
	crypto.PrivateKey
}

// NewKey returns a fresh random key.
func NewKey() Key {
	return Key{PrivateKey: crypto.GenPrivKeyEd25519()}
}

// Address returns the signer address of this key.
func (k Key) Address() tokenswap.Address {
	return k.PublicKey().Address()
}

// NewAddress returns the address of a fresh random key.
func NewAddress() tokenswap.Address {
	return NewKey().Address()
}
