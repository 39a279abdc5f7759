package tokenswap

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"

	"github.com/btcsuite/btcutil/bech32"
	"github.com/iov-one/tokenswap/errors"
)

const (
	// AddressLength is the length of all addresses. It matches the size of
	// an ed25519 public key, so that a derived address can be checked for
	// not being a valid curve point.
	AddressLength = 32

	// AddressHRP is the human readable part of a bech32 encoded address.
	AddressHRP = "swap"
)

// Address represents a 32 byte account identifier. It is either an ed25519
// public key of a signer or an address derived with FindDerivedAddress.
type Address []byte

// NewAddress hashes given data into an address. Use it for test fixtures and
// token type identifiers, never for accounts that must be signed for.
func NewAddress(data []byte) Address {
	h := sha256.Sum256(data)
	return h[:]
}

// Equals checks if two addresses are the same
func (a Address) Equals(b Address) bool {
	return bytes.Equal(a, b)
}

// Clone returns a copy of this address.
func (a Address) Clone() Address {
	if a == nil {
		return nil
	}
	cpy := make(Address, len(a))
	copy(cpy, a)
	return cpy
}

// Validate returns an error if the address is not the valid size
func (a Address) Validate() error {
	if len(a) == 0 {
		return errors.Wrap(errors.ErrEmpty, "address")
	}
	if len(a) != AddressLength {
		return errors.Wrapf(errors.ErrInput, "address length %d", len(a))
	}
	return nil
}

// String returns the bech32 representation of the address.
func (a Address) String() string {
	if len(a) == 0 {
		return "(nil)"
	}
	raw, err := encodeBech32(AddressHRP, a)
	if err != nil {
		return strings.ToUpper(hex.EncodeToString(a))
	}
	return raw
}

// MarshalJSON provides a bech32 representation for JSON,
// to override the standard base64 []byte encoding
func (a Address) MarshalJSON() ([]byte, error) {
	if len(a) == 0 {
		return json.Marshal("")
	}
	raw, err := encodeBech32(AddressHRP, a)
	if err != nil {
		return nil, err
	}
	return json.Marshal(raw)
}

// UnmarshalJSON accepts both bech32 and hex representation.
func (a *Address) UnmarshalJSON(src []byte) error {
	var raw string
	if err := json.Unmarshal(src, &raw); err != nil {
		return errors.Wrap(errors.ErrInput, "cannot decode json")
	}
	if raw == "" {
		*a = nil
		return nil
	}
	addr, err := ParseAddress(raw)
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// ParseAddress decodes an address from its bech32 or hex representation.
func ParseAddress(raw string) (Address, error) {
	if strings.HasPrefix(raw, AddressHRP+"1") {
		hrp, payload, err := decodeBech32(raw)
		if err != nil {
			return nil, errors.Wrap(errors.ErrInput, err.Error())
		}
		if hrp != AddressHRP {
			return nil, errors.Wrapf(errors.ErrInput, "invalid prefix %q", hrp)
		}
		addr := Address(payload)
		return addr, addr.Validate()
	}
	payload, err := hex.DecodeString(raw)
	if err != nil {
		return nil, errors.Wrap(errors.ErrInput, "cannot decode hex")
	}
	addr := Address(payload)
	return addr, addr.Validate()
}

func decodeBech32(raw string) (string, []byte, error) {
	hrp, payload, err := bech32.Decode(raw)
	if err != nil {
		return "", nil, errors.Wrap(err, "bech32 decode")
	}
	payload, err = bech32.ConvertBits(payload, 5, 8, false)
	if err != nil {
		return "", nil, errors.Wrap(err, "convert bits")
	}
	return hrp, payload, nil
}

func encodeBech32(hrp string, payload []byte) (string, error) {
	payload, err := bech32.ConvertBits(payload, 8, 5, true)
	if err != nil {
		return "", errors.Wrap(err, "convert bits")
	}
	raw, err := bech32.Encode(hrp, payload)
	if err != nil {
		return "", errors.Wrap(err, "bech32 encode")
	}
	return raw, nil
}
