package htlc_test

import (
	"crypto/sha256"
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/x/htlc"
	"pgregory.net/rapid"
)

// TestEscrowConservation runs random sequences of operations and checks
// that tokens are never created or lost and that the vault always holds
// exactly the sum of the open swaps.
func TestEscrowConservation(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		e := newEnv(t)
		vault, authority := addresses(t)
		parties := []tokenswap.Address{e.alice, e.bob, e.carl}

		type open struct {
			addr   tokenswap.Address
			secret [32]byte
			swap   htlc.Swap
		}
		var swaps []open
		height := int64(1)

		for i := rapid.IntRange(1, 30).Draw(t, "steps"); i > 0; i-- {
			height += int64(rapid.IntRange(0, 40).Draw(t, "advance"))

			switch op := rapid.IntRange(0, 3).Draw(t, "op"); {
			case op == 0 || len(swaps) == 0:
				var s [32]byte
				s[0] = byte(rapid.IntRange(0, 3).Draw(t, "secret"))
				msg := &htlc.OpenMsg{
					Funder:      rapid.SampledFrom(parties).Draw(t, "funder"),
					TokenType:   eth,
					Redeemer:    rapid.SampledFrom(parties).Draw(t, "redeemer"),
					RefundParty: rapid.SampledFrom(parties).Draw(t, "refund"),
					SecretHash:  sha256.Sum256(s[:]),
					SwapAmount:  rapid.Uint64Range(1, 300).Draw(t, "amount"),
					Timelock:    rapid.Uint64Range(0, 60).Draw(t, "timelock"),
				}
				msg.RentSponsor = msg.Funder
				res, err := e.deliver(e.ctx(height, msg.Funder), msg)
				if err != nil {
					continue
				}
				addr := tokenswap.Address(res.Data)
				var swap htlc.Swap
				if err := htlc.NewSwapBucket().One(e.db, addr, &swap); err != nil {
					t.Fatalf("stored swap: %s", err)
				}
				swaps = append(swaps, open{addr: addr, secret: s, swap: swap})

			default:
				idx := rapid.IntRange(0, len(swaps)-1).Draw(t, "swap")
				o := swaps[idx]
				var (
					msg  tokenswap.Msg
					ctx  = e.ctx(height)
					want bool
				)
				switch op {
				case 1:
					var s [32]byte
					s[0] = byte(rapid.IntRange(0, 3).Draw(t, "guess"))
					msg = &htlc.RedeemMsg{Swap: o.addr, Vault: vault, Authority: authority, RentSponsor: o.swap.RentSponsor, Secret: s}
					want = s == o.secret
				case 2:
					msg = &htlc.RefundAfterExpiryMsg{Swap: o.addr, Vault: vault, Authority: authority, RentSponsor: o.swap.RentSponsor}
					want = uint64(height) > o.swap.ExpiryPoint
				case 3:
					signer := rapid.SampledFrom(parties).Draw(t, "signer")
					ctx = e.ctx(height, signer)
					msg = &htlc.RefundWithConsentMsg{Swap: o.addr, Vault: vault, Authority: authority, RentSponsor: o.swap.RentSponsor, Redeemer: o.swap.Redeemer}
					want = signer.Equals(o.swap.Redeemer)
				}
				_, err := e.deliver(ctx, msg)
				if want != (err == nil) {
					t.Fatalf("operation %d on swap %s: want success %v, got %v", op, o.addr, want, err)
				}
				if err == nil {
					swaps = append(swaps[:idx], swaps[idx+1:]...)
				}
			}

			var total, escrowed uint64
			for _, p := range parties {
				total += e.balance(t, p)
			}
			for _, o := range swaps {
				escrowed += o.swap.SwapAmount
			}
			if len(swaps) > 0 {
				if got := e.balance(t, vault); got != escrowed {
					t.Fatalf("vault holds %d, swaps need %d", got, escrowed)
				}
			}
			if total+escrowed != 3000 {
				t.Fatalf("supply changed: %d held, %d escrowed", total, escrowed)
			}
		}
	})
}
