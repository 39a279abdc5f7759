package htlc

import (
	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/orm"
)

// Swap is the record of an open swap. It exists exactly as long as its
// funds are escrowed in the vault.
type Swap struct {
	IdentityBump uint8             `json:"identity_bump"`
	RecordBump   uint8             `json:"record_bump"`
	RentSponsor  tokenswap.Address `json:"rent_sponsor"`
	TokenType    tokenswap.Address `json:"token_type"`
	Redeemer     tokenswap.Address `json:"redeemer"`
	RefundParty  tokenswap.Address `json:"refund_party"`
	SecretHash   [32]byte          `json:"secret_hash"`
	SwapAmount   uint64            `json:"swap_amount" binary:"fixed64"`
	Timelock     uint64            `json:"timelock" binary:"fixed64"`
	// ExpiryPoint is the block height after which the swap can be
	// refunded without consent.
	ExpiryPoint uint64 `json:"expiry_point" binary:"fixed64"`
}

var _ orm.Model = (*Swap)(nil)

// Validate ensures the Swap is valid
func (s *Swap) Validate() error {
	if err := s.RentSponsor.Validate(); err != nil {
		return errors.Wrap(err, "rent sponsor")
	}
	if err := s.TokenType.Validate(); err != nil {
		return errors.Wrap(err, "token type")
	}
	if err := s.Redeemer.Validate(); err != nil {
		return errors.Wrap(err, "redeemer")
	}
	if err := s.RefundParty.Validate(); err != nil {
		return errors.Wrap(err, "refund party")
	}
	if s.SwapAmount == 0 {
		return errors.Wrap(ErrInvalidAmount, "zero")
	}
	if s.ExpiryPoint < s.Timelock {
		return errors.Wrap(errors.ErrState, "expiry point before timelock")
	}
	return nil
}

// Vault is the record of the shared vault of a token type. Its balance is
// kept by the token ledger under the vault address. A vault is never
// removed.
type Vault struct {
	TokenType tokenswap.Address `json:"token_type"`
	Bump      uint8             `json:"bump"`
	Authority tokenswap.Address `json:"authority"`
}

var _ orm.Model = (*Vault)(nil)

// Validate ensures the Vault is valid
func (v *Vault) Validate() error {
	if err := v.TokenType.Validate(); err != nil {
		return errors.Wrap(err, "token type")
	}
	if err := v.Authority.Validate(); err != nil {
		return errors.Wrap(err, "authority")
	}
	return nil
}

// NewSwapBucket returns a bucket of swap records keyed by their address.
func NewSwapBucket() orm.ModelBucket {
	return orm.NewModelBucket("swap", &Swap{}, cdc)
}

// NewVaultBucket returns a bucket of vaults keyed by their address.
func NewVaultBucket() orm.ModelBucket {
	return orm.NewModelBucket("vault", &Vault{}, cdc)
}
