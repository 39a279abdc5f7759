package token

import (
	"context"
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/app"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/swaptest"
	"github.com/iov-one/tokenswap/swaptest/assert"
)

func TestSendHandler(t *testing.T) {
	eth := tokenswap.NewAddress([]byte("eth"))
	alice, bob := swaptest.NewAddress(), swaptest.NewAddress()

	cases := map[string]struct {
		signer         tokenswap.Address
		msg            tokenswap.Msg
		wantCheckErr   *errors.Error
		wantDeliverErr *errors.Error
		wantAlice      uint64
		wantBob        uint64
	}{
		"successful send": {
			signer:    alice,
			msg:       &SendMsg{Token: eth, Source: alice, Destination: bob, Amount: 30},
			wantAlice: 70,
			wantBob:   30,
		},
		"source signature missing": {
			signer:         bob,
			msg:            &SendMsg{Token: eth, Source: alice, Destination: bob, Amount: 30},
			wantCheckErr:   errors.ErrUnauthorized,
			wantDeliverErr: errors.ErrUnauthorized,
			wantAlice:      100,
		},
		"zero amount": {
			signer:         alice,
			msg:            &SendMsg{Token: eth, Source: alice, Destination: bob},
			wantCheckErr:   errors.ErrAmount,
			wantDeliverErr: errors.ErrAmount,
			wantAlice:      100,
		},
		"insufficient funds": {
			signer:         alice,
			msg:            &SendMsg{Token: eth, Source: alice, Destination: bob, Amount: 101},
			wantDeliverErr: errors.ErrInsufficientAmount,
			wantAlice:      100,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			db := store.MemStore()
			ctrl := NewController()
			assert.Nil(t, ctrl.OpenAccount(db, eth, alice, alice))
			assert.Nil(t, ctrl.OpenAccount(db, eth, bob, bob))
			assert.Nil(t, ctrl.Issue(db, eth, alice, 100))

			auth := &swaptest.Auth{Signer: tc.signer}
			rt := app.NewRouter()
			RegisterRoutes(rt, auth, ctrl)

			tx := &swaptest.Tx{Msg: tc.msg}
			ctx := context.Background()

			cache := db.CacheWrap()
			_, err := rt.Check(ctx, cache, tx)
			assert.IsErr(t, tc.wantCheckErr, err)
			cache.Discard()

			_, err = rt.Deliver(ctx, db, tx)
			assert.IsErr(t, tc.wantDeliverErr, err)

			a, err := ctrl.Balance(db, eth, alice)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantAlice, a)
			b, err := ctrl.Balance(db, eth, bob)
			assert.Nil(t, err)
			assert.Equal(t, tc.wantBob, b)
		})
	}
}

func TestOpenAccountHandler(t *testing.T) {
	eth := tokenswap.NewAddress([]byte("eth"))
	owner := swaptest.NewAddress()
	db := store.MemStore()
	ctrl := NewController()
	h := NewOpenAccountHandler(&swaptest.Auth{Signer: owner}, ctrl)

	_, err := h.Deliver(context.Background(), db, &swaptest.Tx{Msg: &OpenAccountMsg{Token: eth, Owner: swaptest.NewAddress()}})
	assert.IsErr(t, errors.ErrUnauthorized, err)

	res, err := h.Deliver(context.Background(), db, &swaptest.Tx{Msg: &OpenAccountMsg{Token: eth, Owner: owner}})
	assert.Nil(t, err)
	assert.Equal(t, AccountKey(eth, owner), res.Data)

	bal, err := ctrl.Balance(db, eth, owner)
	assert.Nil(t, err)
	assert.Equal(t, uint64(0), bal)
}
