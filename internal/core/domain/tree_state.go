package domain

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"math"
)

const (
	// commitmentTreeDepth is the depth of both the Sapling and Orchard note
	// commitment trees.
	commitmentTreeDepth = 32
	nodeSize            = 32
)

// TreeState is the checkpoint returned by a chain-indexing server for a
// given block: the block identity plus the hex encoded note commitment trees
// as of the end of that block.
type TreeState struct {
	Network     string
	Height      uint64
	Hash        string
	Time        uint32
	SaplingTree string
	OrchardTree string
}

// Node is a note commitment tree node.
type Node [nodeSize]byte

// CommitmentTree is the legacy incremental representation of a note
// commitment tree frontier: the two rightmost leaves and the ommers on the
// path from them to the root.
type CommitmentTree struct {
	Left    *Node
	Right   *Node
	Parents []*Node
}

// ParseCommitmentTree decodes the hex serialization used by lightwalletd
// tree states. An empty string is the empty tree.
func ParseCommitmentTree(encoded string) (*CommitmentTree, error) {
	if encoded == "" {
		return &CommitmentTree{}, nil
	}
	buf, err := hex.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("tree is not hex encoded: %w", err)
	}

	r := bytes.NewReader(buf)
	tree := &CommitmentTree{}
	if tree.Left, err = readOptionalNode(r); err != nil {
		return nil, fmt.Errorf("left leaf: %w", err)
	}
	if tree.Right, err = readOptionalNode(r); err != nil {
		return nil, fmt.Errorf("right leaf: %w", err)
	}

	count, err := readCompactSize(r)
	if err != nil {
		return nil, fmt.Errorf("parents length: %w", err)
	}
	if count >= commitmentTreeDepth {
		return nil, fmt.Errorf("tree has %d parents, max is %d", count, commitmentTreeDepth-1)
	}
	tree.Parents = make([]*Node, 0, count)
	for i := uint64(0); i < count; i++ {
		parent, err := readOptionalNode(r)
		if err != nil {
			return nil, fmt.Errorf("parent %d: %w", i, err)
		}
		tree.Parents = append(tree.Parents, parent)
	}

	if r.Len() > 0 {
		return nil, fmt.Errorf("%d trailing bytes after tree", r.Len())
	}
	if tree.Left == nil && !tree.IsEmpty() {
		return nil, fmt.Errorf("tree has nodes but no left leaf")
	}

	return tree, nil
}

// IsEmpty returns whether the tree holds no leaves.
func (t *CommitmentTree) IsEmpty() bool {
	return t.Size() == 0
}

// Size returns the number of leaves appended to the tree.
func (t *CommitmentTree) Size() uint64 {
	var size uint64
	if t.Left != nil {
		size++
	}
	if t.Right != nil {
		size++
	}
	for i, p := range t.Parents {
		if p != nil {
			size += 1 << uint(i+1)
		}
	}
	return size
}

func readOptionalNode(r *bytes.Reader) (*Node, error) {
	flag, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	switch flag {
	case 0:
		return nil, nil
	case 1:
		var n Node
		if _, err := io.ReadFull(r, n[:]); err != nil {
			return nil, err
		}
		return &n, nil
	default:
		return nil, fmt.Errorf("invalid optional flag %#x", flag)
	}
}

func readCompactSize(r *bytes.Reader) (uint64, error) {
	prefix, err := r.ReadByte()
	if err != nil {
		return 0, err
	}

	var size uint64
	switch prefix {
	case 0xfd:
		var v uint16
		err = binary.Read(r, binary.LittleEndian, &v)
		size = uint64(v)
		if err == nil && size < 0xfd {
			err = fmt.Errorf("non-canonical compact size")
		}
	case 0xfe:
		var v uint32
		err = binary.Read(r, binary.LittleEndian, &v)
		size = uint64(v)
		if err == nil && size <= math.MaxUint16 {
			err = fmt.Errorf("non-canonical compact size")
		}
	case 0xff:
		err = binary.Read(r, binary.LittleEndian, &size)
		if err == nil && size <= math.MaxUint32 {
			err = fmt.Errorf("non-canonical compact size")
		}
	default:
		size = uint64(prefix)
	}
	if err != nil {
		return 0, err
	}
	return size, nil
}
