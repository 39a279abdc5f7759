/*
Package htlc implements a hash time locked escrow for fungible tokens.

A funder locks an amount of one token type behind the sha256 hash of a
secret and a timelock measured in blocks. The funds can then leave the
escrow exactly once, in one of three ways:

	redeem                 anybody presenting the secret, funds go to the redeemer
	refund after expiry    anybody, once the block height is past the expiry point
	refund with consent    signed by the redeemer, at any time

Redeem is not bounded by the expiry point. As long as nobody refunded an
expired swap, the redeemer can still claim it.

All state lives at derived addresses of this program (see ProgramID).
The identity authority is the only authority of every vault account. There
is one vault per token type, shared by all swaps of that token. Each swap
record lives at an address derived from all of its terms, so opening the
same swap twice fails until the first one is closed. A derived address is
never a valid ed25519 point, so nobody holds a key for it and only this
package can move funds out of a vault.

Storage deposits never mix with escrowed funds. The record deposit is held
at the swap address and returned to the rent sponsor on close. The vault
deposit is paid once per token type and kept at VaultDepositAddress. The
vault balance therefore always equals the sum of the open swap amounts.

Every operation recomputes the derived addresses from the stored swap
terms and bumps, and rejects a request whose addresses differ.

The same secret hash may be used by any number of swaps whose other terms
differ. Redeeming one of them reveals the secret for all. The secret hash
is tagged on every event, so observers can notice the reuse.
*/
package htlc
