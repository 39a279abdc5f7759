package tokenswap

import (
	"crypto/sha256"

	"filippo.io/edwards25519"
	"github.com/iov-one/tokenswap/errors"
)

const (
	// MaxSeeds is the maximum number of seeds accepted by the address
	// derivation.
	MaxSeeds = 16
	// MaxSeedLength is the maximum length of a single seed.
	MaxSeedLength = 32

	derivedAddressMarker = "DerivedAddress"
)

// ErrInvalidSeeds is returned when a set of seeds cannot produce a derived
// address.
var ErrInvalidSeeds = errors.Register(20, "invalid derivation seeds")

// CreateDerivedAddress computes the address owned by the program for the
// given seeds and bump. The result is
//
//	sha256(seed_1 || ... || seed_n || bump || program || "DerivedAddress")
//
// An address that happens to be a valid ed25519 point is rejected, because a
// private key for it may exist.
func CreateDerivedAddress(program Address, bump uint8, seeds ...[]byte) (Address, error) {
	if err := validateSeeds(seeds); err != nil {
		return nil, err
	}
	addr := deriveAddress(program, bump, seeds)
	if isOnCurve(addr) {
		return nil, errors.Wrap(ErrInvalidSeeds, "address on curve")
	}
	return addr, nil
}

// FindDerivedAddress searches the bumps from 255 down to 0 and returns the
// first address that is off the ed25519 curve, together with its bump.
func FindDerivedAddress(program Address, seeds ...[]byte) (Address, uint8, error) {
	if err := validateSeeds(seeds); err != nil {
		return nil, 0, err
	}
	for bump := 255; bump >= 0; bump-- {
		addr := deriveAddress(program, uint8(bump), seeds)
		if !isOnCurve(addr) {
			return addr, uint8(bump), nil
		}
	}
	return nil, 0, errors.Wrap(ErrInvalidSeeds, "no viable bump")
}

func validateSeeds(seeds [][]byte) error {
	if len(seeds) > MaxSeeds {
		return errors.Wrapf(ErrInvalidSeeds, "%d seeds, max %d", len(seeds), MaxSeeds)
	}
	for i, s := range seeds {
		if len(s) > MaxSeedLength {
			return errors.Wrapf(ErrInvalidSeeds, "seed %d is %d bytes long", i, len(s))
		}
	}
	return nil
}

func deriveAddress(program Address, bump uint8, seeds [][]byte) Address {
	h := sha256.New()
	for _, s := range seeds {
		h.Write(s)
	}
	h.Write([]byte{bump})
	h.Write(program)
	h.Write([]byte(derivedAddressMarker))
	return h.Sum(nil)
}

func isOnCurve(b []byte) bool {
	_, err := new(edwards25519.Point).SetBytes(b)
	return err == nil
}
