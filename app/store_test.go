package app

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store/iavl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	abci "github.com/tendermint/tendermint/abci/types"
)

// kvInit writes every entry of the "kv" genesis key into the store.
type kvInit struct{}

func (kvInit) FromGenesis(opts tokenswap.Options, db tokenswap.KVStore) error {
	var kv map[string]string
	if err := opts.ReadOptions("kv", &kv); err != nil {
		return err
	}
	for k, v := range kv {
		if err := db.Set([]byte(k), []byte(v)); err != nil {
			return err
		}
	}
	return nil
}

func newTestStoreApp(t *testing.T) *StoreApp {
	t.Helper()
	qr := tokenswap.NewQueryRouter()
	RegisterQuery(qr)
	s, err := NewStoreApp("test", iavl.NewCommitStore("", "test"), qr, context.Background())
	require.NoError(t, err)
	return s.WithInit(kvInit{})
}

func TestStoreAppGenesisAndQuery(t *testing.T) {
	s := newTestStoreApp(t)

	state, err := json.Marshal(map[string]interface{}{
		"kv": map[string]string{"alpha": "one"},
	})
	require.NoError(t, err)
	s.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: state})
	assert.Equal(t, "test-chain", s.GetChainID())

	// nothing is visible before the first commit
	val, err := NewABCIStore(s).Get([]byte("alpha"))
	require.NoError(t, err)
	assert.Nil(t, val)

	s.BeginBlock(abci.RequestBeginBlock{Header: abci.Header{Height: 1}})
	s.EndBlock(abci.RequestEndBlock{})
	res := s.Commit()
	assert.NotEmpty(t, res.Data)

	val, err = NewABCIStore(s).Get([]byte("alpha"))
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), val)

	ok, err := NewABCIStore(s).Has([]byte("beta"))
	require.NoError(t, err)
	assert.False(t, ok)

	info := s.Info(abci.RequestInfo{})
	assert.Equal(t, int64(1), info.LastBlockHeight)
	assert.Equal(t, res.Data, info.LastBlockAppHash)

	// genesis can only be loaded once
	assert.Panics(t, func() {
		s.InitChain(abci.RequestInitChain{ChainId: "test-chain", AppStateBytes: state})
	})
}

func TestStoreAppQueryErrors(t *testing.T) {
	s := newTestStoreApp(t)

	res := s.Query(abci.RequestQuery{Path: "/unknown"})
	assert.Equal(t, errors.ErrNotFound.ABCICode(), res.Code)

	res = s.Query(abci.RequestQuery{Path: "/"})
	assert.Equal(t, errors.ErrEmpty.ABCICode(), res.Code)
}

func TestStoreAppRejectsEmptyGenesis(t *testing.T) {
	s := newTestStoreApp(t)
	assert.Panics(t, func() {
		s.InitChain(abci.RequestInitChain{ChainId: "test-chain"})
	})
}

func TestResultsRoundTrip(t *testing.T) {
	models := []tokenswap.Model{
		tokenswap.Pair([]byte("a"), []byte("1")),
		tokenswap.Pair([]byte("b"), []byte("2")),
	}
	keys, err := ResultsFromKeys(models).Marshal()
	require.NoError(t, err)
	values, err := ResultsFromValues(models).Marshal()
	require.NoError(t, err)

	var k, v ResultSet
	require.NoError(t, k.Unmarshal(keys))
	require.NoError(t, v.Unmarshal(values))
	got, err := JoinResults(&k, &v)
	require.NoError(t, err)
	assert.Equal(t, models, got)

	_, err = JoinResults(&k, &ResultSet{})
	assert.True(t, errors.ErrState.Is(err))
}
