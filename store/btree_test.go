package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBTreeCacheGetSet(t *testing.T) {
	NewTestSuite(makeBase).GetSet(t)
}

func TestBTreeCacheConflicts(t *testing.T) {
	NewTestSuite(makeBase).CacheConflicts(t)
}

func makeBase() (CacheableKVStore, func()) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}
	return devnull.CacheWrap(), func() {}
}

func TestBTreeCacheDiscardDropsPendingWrites(t *testing.T) {
	base := MemStore()
	k, v := []byte("swap"), []byte("locked")

	cache := base.CacheWrap()
	require.NoError(t, cache.Set(k, v))
	cache.Discard()

	// A discarded cache must not leak writes even if written afterwards.
	require.NoError(t, cache.Write())
	got, err := base.Get(k)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestNestedCacheWrite(t *testing.T) {
	base := MemStore()
	outer := base.CacheWrap()
	inner := outer.CacheWrap()

	require.NoError(t, inner.Set([]byte("a"), []byte("1")))
	require.NoError(t, inner.Write())

	got, err := base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Nil(t, got, "outer cache not yet written")

	require.NoError(t, outer.Write())
	got, err = base.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), got)
}

func TestOpApply(t *testing.T) {
	kv := MemStore()
	require.NoError(t, SetOp([]byte("k"), []byte("v")).Apply(kv))
	has, err := kv.Has([]byte("k"))
	require.NoError(t, err)
	assert.True(t, has)

	require.NoError(t, DelOp([]byte("k")).Apply(kv))
	has, err = kv.Has([]byte("k"))
	require.NoError(t, err)
	assert.False(t, has)

	assert.Error(t, Op{}.Apply(kv))
}
