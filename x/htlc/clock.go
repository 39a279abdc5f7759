package htlc

import (
	"context"

	"github.com/iov-one/tokenswap"
	"github.com/iov-one/tokenswap/errors"
)

// Clock provides the position of the ledger sequence.
type Clock interface {
	CurrentPosition(ctx context.Context) (uint64, error)
}

// BlockClock reads the block height from the context.
type BlockClock struct{}

var _ Clock = BlockClock{}

func (BlockClock) CurrentPosition(ctx context.Context) (uint64, error) {
	height, ok := tokenswap.GetHeight(ctx)
	if !ok {
		return 0, errors.Wrap(errors.ErrHuman, "block height not in context")
	}
	if height < 0 {
		return 0, errors.Wrapf(errors.ErrState, "negative block height %d", height)
	}
	return uint64(height), nil
}
