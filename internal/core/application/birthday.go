package application

import (
	"context"
	"fmt"

	"github.com/lightwallet-tools/zecw/internal/core/domain"
	"github.com/lightwallet-tools/zecw/internal/core/ports"
	log "github.com/sirupsen/logrus"
)

// DefaultBirthdayOffset is how many blocks below the server's tip a new
// wallet's birthday is placed when none is given. It absorbs a lagging
// server view and short reorgs.
const DefaultBirthdayOffset = 100

// BirthdayResolver builds account birthdays from the tree states served by
// a chain-indexing server.
//
// Requesting the tree state of a specific height tells the server the
// wallet's birthday. Rounding, when enabled, requests the tree state of a
// coarser height instead, at the cost of scanning up to rounding-1 extra
// blocks. It is off by default and then the request targets exactly the
// block before the birthday.
type BirthdayResolver struct {
	client   ports.ChainClient
	rounding uint32
}

func NewBirthdayResolver(
	client ports.ChainClient, rounding uint32,
) *BirthdayResolver {
	return &BirthdayResolver{client, rounding}
}

// Resolve returns the birthday of a new account. requested overrides the
// default height of tip-100. For recovered wallets the birthday also
// records the current tip as the height until which scanning is recovery.
func (r *BirthdayResolver) Resolve(
	ctx context.Context, requested *uint32, recovering bool,
) (*domain.AccountBirthday, error) {
	tip, err := r.client.LatestHeight(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch chain tip: %w", err)
	}

	height := saturatingSub(tip, DefaultBirthdayOffset)
	if requested != nil {
		height = *requested
	}
	if r.rounding > 1 {
		height -= height % r.rounding
	}

	priorHeight := saturatingSub(height, 1)
	log.WithFields(log.Fields{
		"tip":      tip,
		"birthday": height,
	}).Debug("fetching tree state for account birthday")

	treeState, err := r.client.TreeState(ctx, uint64(priorHeight))
	if err != nil {
		return nil, fmt.Errorf(
			"failed to fetch tree state at height %d: %w", priorHeight, err,
		)
	}

	var recoverUntil *uint32
	if recovering {
		recoverUntil = &tip
	}
	return domain.NewAccountBirthday(*treeState, recoverUntil)
}

func saturatingSub(a, b uint32) uint32 {
	if a < b {
		return 0
	}
	return a - b
}
