package app

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/app"
	"github.com/iov-one/tokenswap/crypto"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/x/htlc"
	"github.com/iov-one/tokenswap/x/sigs"
	"github.com/iov-one/tokenswap/x/token"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

const chainID = "test-net-22"

type testNode struct {
	t      *testing.T
	app    app.BaseApp
	height int64
}

func newTestNode(t *testing.T, appState map[string]interface{}) *testNode {
	t.Helper()
	myApp, err := Application("swapd", Stack(prometheus.NewRegistry()), TxDecoder, "", false)
	require.NoError(t, err)

	state, err := json.Marshal(appState)
	require.NoError(t, err)
	myApp.InitChain(abci.RequestInitChain{ChainId: chainID, AppStateBytes: state})
	return &testNode{t: t, app: myApp}
}

// block delivers all transactions in a new block and commits it.
func (n *testNode) block(txs ...*Tx) []abci.ResponseDeliverTx {
	n.t.Helper()
	n.height++
	n.app.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: n.height, ChainID: chainID}})
	var res []abci.ResponseDeliverTx
	for _, tx := range txs {
		bz, err := tx.Marshal()
		require.NoError(n.t, err)
		res = append(res, n.app.DeliverTx(bz))
	}
	n.app.EndBlock(abci.RequestEndBlock{Height: n.height})
	n.app.Commit()
	return res
}

func (n *testNode) balance(tok, owner tokenswap.Address) uint64 {
	n.t.Helper()
	b, err := token.NewController().Balance(app.NewABCIStore(n.app), tok, owner)
	require.NoError(n.t, err)
	return b
}

func tag(tags []abci.ResponseDeliverTx, i int, key string) string {
	for _, kv := range tags[i].Tags {
		if string(kv.Key) == key {
			return string(kv.Value)
		}
	}
	return ""
}

func TestSwapLifecycle(t *testing.T) {
	alice := crypto.GenPrivKeyEd25519()
	bob := crypto.GenPrivKeyEd25519()
	aliceAddr := alice.PublicKey().Address()
	bobAddr := bob.PublicKey().Address()
	eth := tokenswap.NewAddress([]byte("eth"))

	n := newTestNode(t, map[string]interface{}{
		"token": []token.GenesisAccount{
			{Token: eth, Owner: aliceAddr, Balance: 1000},
			{Token: eth, Owner: bobAddr},
		},
	})
	assert.Equal(t, chainID, n.app.GetChainID())

	secret := [32]byte{0xde, 0xad}
	open := &Tx{Msg: &htlc.OpenMsg{
		Funder:      aliceAddr,
		RentSponsor: aliceAddr,
		TokenType:   eth,
		Redeemer:    bobAddr,
		RefundParty: aliceAddr,
		SecretHash:  sha256.Sum256(secret[:]),
		SwapAmount:  250,
		Timelock:    10,
	}}
	require.NoError(t, open.Sign(alice, chainID, 0))

	res := n.block(open)
	require.Equal(t, uint32(0), res[0].Code, res[0].Log)
	swapAddr := tokenswap.Address(res[0].Data)
	assert.Equal(t, "opened", tag(res, 0, htlc.TagAction))
	assert.Equal(t, swapAddr.String(), tag(res, 0, htlc.TagSwap))
	assert.Equal(t, uint64(750), n.balance(eth, aliceAddr))

	// the same signature cannot be used twice
	res = n.block(open)
	assert.Equal(t, sigs.ErrInvalidSequence.ABCICode(), res[0].Code)

	vault, _, err := htlc.VaultAddress(eth)
	require.NoError(t, err)
	authority, _, err := htlc.AuthorityAddress()
	require.NoError(t, err)

	// refunding before the expiry fails
	refund := &Tx{Msg: &htlc.RefundAfterExpiryMsg{
		Swap:        swapAddr,
		Vault:       vault,
		Authority:   authority,
		RentSponsor: aliceAddr,
	}}
	res = n.block(refund)
	assert.Equal(t, htlc.ErrRefundBeforeExpiry.ABCICode(), res[0].Code)

	// redeem needs no signature
	redeem := &Tx{Msg: &htlc.RedeemMsg{
		Swap:        swapAddr,
		Vault:       vault,
		Authority:   authority,
		RentSponsor: aliceAddr,
		Secret:      secret,
	}}
	res = n.block(redeem)
	require.Equal(t, uint32(0), res[0].Code, res[0].Log)
	assert.Equal(t, hex.EncodeToString(secret[:]), tag(res, 0, htlc.TagSecret))
	assert.Equal(t, "htlc/redeem", tag(res, 0, "action"))

	assert.Equal(t, uint64(750), n.balance(eth, aliceAddr))
	assert.Equal(t, uint64(250), n.balance(eth, bobAddr))
	assert.Equal(t, uint64(0), n.balance(eth, vault))

	// the swap record is gone
	q := n.app.Query(abci.RequestQuery{Path: "/swaps", Data: swapAddr})
	require.Equal(t, uint32(0), q.Code, q.Log)
	var values app.ResultSet
	require.NoError(t, values.Unmarshal(q.Value))
	assert.Empty(t, values.Results)
}

func TestCheckTxRejectsGarbage(t *testing.T) {
	n := newTestNode(t, map[string]interface{}{})
	res := n.app.CheckTx([]byte("not a transaction"))
	assert.Equal(t, errors.ErrInput.ABCICode(), res.Code)

	res = n.app.CheckTx(mustMarshal(t, &Tx{}))
	assert.NotEqual(t, uint32(0), res.Code)
}

func TestGenInitOptions(t *testing.T) {
	owner := crypto.GenPrivKeyEd25519().PublicKey().Address()
	raw, err := GenInitOptions([]string{"eth", owner.String()})
	require.NoError(t, err)

	var opts tokenswap.Options
	require.NoError(t, json.Unmarshal(raw, &opts))

	n := newTestNode(t, map[string]interface{}{
		"token": opts["token"],
		"htlc":  opts["htlc"],
	})
	n.block()
	assert.Equal(t, uint64(123456789), n.balance(tokenswap.NewAddress([]byte("eth")), owner))

	_, err = GenInitOptions([]string{"eth", "not an address"})
	assert.True(t, errors.ErrInput.Is(err))
}

func mustMarshal(t *testing.T, tx *Tx) []byte {
	t.Helper()
	bz, err := tx.Marshal()
	require.NoError(t, err)
	return bz
}
