package ports

import (
	"context"

	"github.com/lightwallet-tools/zecw/internal/core/domain"
)

// ChainClient is the subset of the chain-indexing service needed to
// resolve account birthdays.
type ChainClient interface {
	// LatestHeight returns the height of the chain tip as seen by the server.
	LatestHeight(ctx context.Context) (uint32, error)
	// TreeState returns the note commitment tree state at the end of the
	// block at the given height.
	TreeState(ctx context.Context, height uint64) (*domain.TreeState, error)
	Close() error
}
