package domain

import (
	"encoding/hex"
	"fmt"
	"math"
)

// ChainState is the state of the chain at the end of a block, used as the
// starting point of scanning.
type ChainState struct {
	BlockHeight uint32
	// BlockHash is in internal byte order (the reverse of the hex string
	// servers display).
	BlockHash   [32]byte
	BlockTime   uint32
	SaplingTree *CommitmentTree
	OrchardTree *CommitmentTree
}

// AccountBirthday is the checkpoint bounding how far back an account must
// be scanned. It is built from the tree state of the block right before the
// birthday height and is immutable once created.
type AccountBirthday struct {
	prior        ChainState
	recoverUntil *uint32
}

// NewAccountBirthday builds a birthday from the tree state of the last
// block before the birthday. recoverUntil, when set, is the chain height
// until which scanning is treated as historical recovery.
func NewAccountBirthday(
	treeState TreeState, recoverUntil *uint32,
) (*AccountBirthday, error) {
	if treeState.Height >= math.MaxUint32 {
		return nil, fmt.Errorf(
			"%w: height %d out of range", ErrInvalidTreeState, treeState.Height,
		)
	}

	hash, err := hex.DecodeString(treeState.Hash)
	if err != nil || len(hash) != 32 {
		return nil, fmt.Errorf(
			"%w: malformed block hash %q", ErrInvalidTreeState, treeState.Hash,
		)
	}
	var blockHash [32]byte
	for i := range hash {
		blockHash[i] = hash[len(hash)-1-i]
	}

	saplingTree, err := ParseCommitmentTree(treeState.SaplingTree)
	if err != nil {
		return nil, fmt.Errorf("%w: sapling %s", ErrInvalidTreeState, err)
	}
	orchardTree, err := ParseCommitmentTree(treeState.OrchardTree)
	if err != nil {
		return nil, fmt.Errorf("%w: orchard %s", ErrInvalidTreeState, err)
	}

	var until *uint32
	if recoverUntil != nil {
		v := *recoverUntil
		until = &v
	}

	return &AccountBirthday{
		prior: ChainState{
			BlockHeight: uint32(treeState.Height),
			BlockHash:   blockHash,
			BlockTime:   treeState.Time,
			SaplingTree: saplingTree,
			OrchardTree: orchardTree,
		},
		recoverUntil: until,
	}, nil
}

// Height returns the birthday height, the first block that may contain
// wallet activity.
func (b *AccountBirthday) Height() uint32 {
	return b.prior.BlockHeight + 1
}

// PriorChainState returns the chain state at the end of the block before
// the birthday.
func (b *AccountBirthday) PriorChainState() ChainState {
	return b.prior
}

// RecoverUntil returns the height up to which scanning counts as recovery.
func (b *AccountBirthday) RecoverUntil() (uint32, bool) {
	if b.recoverUntil == nil {
		return 0, false
	}
	return *b.recoverUntil, true
}
