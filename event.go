package tokenswap

import (
	"github.com/tendermint/tendermint/libs/common"
)

// Event is an append-only notification about a completed state
// transition. Events are returned with the DeliverResult and are meant for
// off-chain observers only: no handler reads them back.
type Event interface {
	// EventKind returns the name of the transition, for example "opened".
	EventKind() string
	// Tags returns the key-value pairs tendermint indexes the
	// transaction under.
	Tags() []common.KVPair
}

// Tag builds a single tendermint tag.
func Tag(key string, value []byte) common.KVPair {
	return common.KVPair{Key: []byte(key), Value: value}
}

// AddressTag builds a tag with the textual form of the address as the value,
// so that it can be searched for with the same string a client displays.
func AddressTag(key string, addr Address) common.KVPair {
	return Tag(key, []byte(addr.String()))
}
