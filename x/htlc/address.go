package htlc

import (
	"encoding/binary"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// ProgramID is mixed into every address derived by this package.
var ProgramID = tokenswap.NewAddress([]byte("tokenswap/htlc"))

var (
	authorityKind = []byte("authority")
	vaultKind     = []byte("vault")
	depositKind   = []byte("vault_deposit")
	swapKind      = []byte("swap")
)

func authoritySeeds() [][]byte {
	return [][]byte{authorityKind}
}

func vaultSeeds(token tokenswap.Address) [][]byte {
	return [][]byte{vaultKind, token}
}

func swapSeeds(token, redeemer, refundParty tokenswap.Address, secretHash [32]byte, amount, timelock uint64) [][]byte {
	return [][]byte{
		swapKind,
		token,
		redeemer,
		refundParty,
		secretHash[:],
		le64(amount),
		le64(timelock),
	}
}

func le64(v uint64) []byte {
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, v)
	return b
}

// AuthorityAddress returns the identity authority of this program and
// its bump. The authority controls all vaults.
func AuthorityAddress() (tokenswap.Address, uint8, error) {
	return tokenswap.FindDerivedAddress(ProgramID, authoritySeeds()...)
}

// VaultAddress returns the address of the vault holding all escrowed
// funds of given token type.
func VaultAddress(token tokenswap.Address) (tokenswap.Address, uint8, error) {
	return tokenswap.FindDerivedAddress(ProgramID, vaultSeeds(token)...)
}

// VaultDepositAddress returns the address keeping the vault deposits paid
// for the vault of given token type. It is apart from the vault so that
// the vault balance is always the sum of the open swaps.
func VaultDepositAddress(token tokenswap.Address) (tokenswap.Address, uint8, error) {
	return tokenswap.FindDerivedAddress(ProgramID, depositKind, token)
}

// SwapAddress returns the address of the swap record with given terms.
func SwapAddress(token, redeemer, refundParty tokenswap.Address, secretHash [32]byte, amount, timelock uint64) (tokenswap.Address, uint8, error) {
	return tokenswap.FindDerivedAddress(ProgramID, swapSeeds(token, redeemer, refundParty, secretHash, amount, timelock)...)
}

// verifyDerived fails with ErrAddressDerivationMismatch unless the
// address derived from given seeds and bump equals want.
func verifyDerived(name string, want tokenswap.Address, bump uint8, seeds [][]byte) error {
	got, err := tokenswap.CreateDerivedAddress(ProgramID, bump, seeds...)
	if err != nil {
		return errors.Wrapf(ErrAddressDerivationMismatch, "%s: %s", name, err)
	}
	if !got.Equals(want) {
		return errors.Wrapf(ErrAddressDerivationMismatch, "%s %s", name, want)
	}
	return nil
}

// verifyAddresses recomputes the swap, vault and authority addresses from
// the stored swap terms and bumps and compares them with the supplied ones.
func verifyAddresses(swap *Swap, vault *Vault, swapAddr, vaultAddr, authority tokenswap.Address) error {
	seeds := swapSeeds(swap.TokenType, swap.Redeemer, swap.RefundParty, swap.SecretHash, swap.SwapAmount, swap.Timelock)
	if err := verifyDerived("swap", swapAddr, swap.RecordBump, seeds); err != nil {
		return err
	}
	if !vault.TokenType.Equals(swap.TokenType) {
		return errors.Wrapf(ErrAddressDerivationMismatch, "vault %s holds another token", vaultAddr)
	}
	if err := verifyDerived("vault", vaultAddr, vault.Bump, vaultSeeds(swap.TokenType)); err != nil {
		return err
	}
	if err := verifyDerived("authority", authority, swap.IdentityBump, authoritySeeds()); err != nil {
		return err
	}
	if !vault.Authority.Equals(authority) {
		return errors.Wrapf(ErrAddressDerivationMismatch, "vault authority %s", vault.Authority)
	}
	return nil
}
