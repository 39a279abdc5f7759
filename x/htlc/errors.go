package htlc

import "github.com/iov-one/tokenswap/errors"

var (
	// ErrInvalidSecret is returned when the secret does not hash to the
	// secret hash of the swap.
	ErrInvalidSecret = errors.Register(1100, "invalid secret")

	// ErrRefundBeforeExpiry is returned when a refund without consent is
	// requested at or before the expiry point.
	ErrRefundBeforeExpiry = errors.Register(1101, "refund before expiry")

	// ErrInvalidRedeemer is returned when the consenting redeemer is not
	// the redeemer of the swap or did not sign.
	ErrInvalidRedeemer = errors.Register(1102, "invalid redeemer")

	// ErrInvalidRentSponsor is returned when the rent sponsor does not
	// match the one that opened the swap.
	ErrInvalidRentSponsor = errors.Register(1103, "invalid rent sponsor")

	// ErrAddressDerivationMismatch is returned when a supplied address
	// differs from the one derived from the swap terms.
	ErrAddressDerivationMismatch = errors.Register(1104, "address derivation mismatch")

	// ErrTimelockOverflow is returned when the expiry point cannot be
	// represented.
	ErrTimelockOverflow = errors.Register(1105, "timelock overflow")

	// ErrSwapAlreadyExists is returned when a swap with the same terms is
	// open.
	ErrSwapAlreadyExists = errors.Register(1106, "swap already exists")

	// ErrInvalidAmount is returned for a zero swap amount.
	ErrInvalidAmount = errors.Register(1107, "invalid swap amount")
)
