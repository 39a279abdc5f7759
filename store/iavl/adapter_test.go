package iavl

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/iov-one/tokenswap/store"
	"github.com/iov-one/tokenswap/swaptest/assert"
)

type Model = store.Model
type Op = store.Op

// makeBase returns the base layer
func makeBase() (store.CacheableKVStore, func()) {
	commit, close := makeCommitStore()
	return commit.Adapter(), close
}

func makeCommitStore() (CommitStore, func()) {
	tmpDir, err := ioutil.TempDir("", "iavl-adapter-")
	if err != nil {
		panic(err)
	}
	commit := NewCommitStore(tmpDir, "base")
	close := func() {
		commit.Close()
		os.RemoveAll(tmpDir)
	}
	return commit, close
}

func TestCacheGetSet(t *testing.T) {
	store.NewTestSuite(makeBase).GetSet(t)
}

func TestCacheConflicts(t *testing.T) {
	store.NewTestSuite(makeBase).CacheConflicts(t)
}

// TestCommitOverwrite checks that we commit properly
// and can add/overwrite/query in the next adapter
func TestCommitOverwrite(t *testing.T) {
	suite := store.NewTestSuite(makeBase)

	k1, k2, k3 := []byte("swap-1"), []byte("swap-2"), []byte("swap-3")
	v1, v2, v3, v4 := []byte("open"), []byte("locked"), []byte("fresh"), []byte("again")

	commit, close := makeCommitStore()
	defer close()
	// only one to trigger a cleanup
	commit.numHistory = 1

	id, err := commit.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, int64(0), id.Version)
	if len(id.Hash) != 0 {
		t.Fatal("hash is not empty")
	}

	parent := commit.CacheWrap()
	for _, op := range []Op{store.SetOp(k1, v1), store.SetOp(k2, v2)} {
		assert.Nil(t, op.Apply(parent))
	}
	assert.Nil(t, parent.Write())
	id, err = commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(1), id.Version)
	if len(id.Hash) == 0 {
		t.Fatal("hash is empty")
	}

	child := commit.CacheWrap()
	for _, op := range []Op{store.SetOp(k1, v4), store.SetOp(k3, v3), store.DelOp(k2)} {
		assert.Nil(t, op.Apply(child))
	}

	// and a side-cache wrap to see they are in parallel
	side := commit.CacheWrap()
	suite.AssertGetHas(t, side, k1, v1, true)
	suite.AssertGetHas(t, side, k2, v2, true)
	suite.AssertGetHas(t, side, k3, nil, false)

	suite.AssertGetHas(t, child, k1, v4, true)
	suite.AssertGetHas(t, child, k2, nil, false)

	// write child and make sure the side cache sees the working tree
	assert.Nil(t, child.Write())
	suite.AssertGetHas(t, side, k1, v4, true)
	suite.AssertGetHas(t, side, k2, nil, false)

	// committed state does not change before Commit
	got, err := commit.Get(k1)
	assert.Nil(t, err)
	assert.Equal(t, v1, got)

	id, err = commit.Commit()
	assert.Nil(t, err)
	assert.Equal(t, int64(2), id.Version)

	got, err = commit.Get(k1)
	assert.Nil(t, err)
	assert.Equal(t, v4, got)
}

func TestLoadLatestVersion(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "iavl-reload-")
	assert.Nil(t, err)
	defer os.RemoveAll(tmpDir)

	commit := NewCommitStore(tmpDir, "reload")
	assert.Nil(t, commit.LoadLatestVersion())
	cache := commit.CacheWrap()
	assert.Nil(t, cache.Set([]byte("vault"), []byte("usdc")))
	assert.Nil(t, cache.Write())
	first, err := commit.Commit()
	assert.Nil(t, err)
	commit.Close()

	reopened := NewCommitStore(tmpDir, "reload")
	defer reopened.Close()
	assert.Nil(t, reopened.LoadLatestVersion())
	id, err := reopened.LatestVersion()
	assert.Nil(t, err)
	assert.Equal(t, first, id)

	got, err := reopened.Get([]byte("vault"))
	assert.Nil(t, err)
	assert.Equal(t, []byte("usdc"), got)
}
