package app

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/iov-one/tokenswap/errors"
	"github.com/iov-one/tokenswap/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadGenesis(t *testing.T) {
	dir, err := ioutil.TempDir("", "genesis")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	write := func(name, content string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, ioutil.WriteFile(path, []byte(content), 0600))
		return path
	}

	good := write("good.json", `{"chain_id": "swap-chain", "app_state": {"kv": {"a": "b"}}}`)
	gen, err := LoadGenesis(good)
	require.NoError(t, err)
	assert.Equal(t, "swap-chain", gen.ChainID)

	db := store.MemStore()
	require.NoError(t, VerifyGenesis(gen, kvInit{}, db))
	// verification never writes
	v, err := db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = LoadGenesis(write("chain.json", `{"chain_id": "x"}`))
	assert.True(t, errors.ErrInput.Is(err))

	_, err = LoadGenesis(write("broken.json", `{`))
	assert.True(t, errors.ErrInput.Is(err))

	_, err = LoadGenesis(filepath.Join(dir, "missing.json"))
	assert.True(t, errors.ErrInput.Is(err))
}
