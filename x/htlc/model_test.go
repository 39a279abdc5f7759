package htlc

import (
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/swaptest"
	"github.com/iov-one/tokenswap/swaptest/assert"
)

func TestSwapValidate(t *testing.T) {
	valid := func() *Swap {
		return &Swap{
			RentSponsor: swaptest.NewAddress(),
			TokenType:   tokenswap.NewAddress([]byte("eth")),
			Redeemer:    swaptest.NewAddress(),
			RefundParty: swaptest.NewAddress(),
			SwapAmount:  1,
			Timelock:    10,
			ExpiryPoint: 15,
		}
	}

	cases := map[string]struct {
		mutate  func(*Swap)
		wantErr *errors.Error
	}{
		"valid":                {},
		"missing rent sponsor": {mutate: func(s *Swap) { s.RentSponsor = nil }, wantErr: errors.ErrEmpty},
		"short token type":     {mutate: func(s *Swap) { s.TokenType = s.TokenType[:5] }, wantErr: errors.ErrInput},
		"missing redeemer":     {mutate: func(s *Swap) { s.Redeemer = nil }, wantErr: errors.ErrEmpty},
		"missing refund party": {mutate: func(s *Swap) { s.RefundParty = nil }, wantErr: errors.ErrEmpty},
		"zero amount":          {mutate: func(s *Swap) { s.SwapAmount = 0 }, wantErr: ErrInvalidAmount},
		"expiry before lock":   {mutate: func(s *Swap) { s.ExpiryPoint = 9 }, wantErr: errors.ErrState},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			s := valid()
			if tc.mutate != nil {
				tc.mutate(s)
			}
			assert.IsErr(t, tc.wantErr, s.Validate())
		})
	}
}

func TestSwapBucketRoundTrip(t *testing.T) {
	db := store.MemStore()
	bucket := NewSwapBucket()
	key := swaptest.NewAddress()
	swap := &Swap{
		IdentityBump: 254,
		RecordBump:   251,
		RentSponsor:  swaptest.NewAddress(),
		TokenType:    tokenswap.NewAddress([]byte("eth")),
		Redeemer:     swaptest.NewAddress(),
		RefundParty:  swaptest.NewAddress(),
		SecretHash:   [32]byte{1, 2, 3},
		SwapAmount:   1 << 60,
		Timelock:     10,
		ExpiryPoint:  ^uint64(0),
	}
	assert.Nil(t, bucket.Put(db, key, swap))

	var got Swap
	assert.Nil(t, bucket.One(db, key, &got))
	assert.Equal(t, *swap, got)

	assert.Nil(t, bucket.Delete(db, key))
	assert.IsErr(t, errors.ErrNotFound, bucket.One(db, key, &got))

	// an invalid record is never written
	swap.SwapAmount = 0
	assert.IsErr(t, ErrInvalidAmount, bucket.Put(db, key, swap))
}

func TestVaultValidate(t *testing.T) {
	v := &Vault{TokenType: tokenswap.NewAddress([]byte("eth")), Bump: 255, Authority: swaptest.NewAddress()}
	assert.Nil(t, v.Validate())
	v.Authority = nil
	assert.IsErr(t, errors.ErrEmpty, v.Validate())
}
