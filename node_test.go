package avl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNode_HeightAndBalance(t *testing.T) {
	require.Equal(t, int8(0), Height(nil))
	require.Equal(t, 0, BalanceFactor(nil))
	require.Equal(t, int8(0), (*Node)(nil).Height())

	leaf := &Node{key: 1, height: 1}
	require.Equal(t, int8(1), Height(leaf))
	require.Equal(t, 0, BalanceFactor(leaf))

	node := &Node{key: 3, left: &Node{key: 2, height: 2, left: leaf}}
	node.calcHeight()
	require.Equal(t, int8(3), node.Height())
	require.Equal(t, 2, BalanceFactor(node))
	require.Equal(t, -1, BalanceFactor(&Node{key: 0, height: 2, right: leaf}))
}

func TestNode_RotateRight(t *testing.T) {
	tree, m := newTestTree()
	// the inner grandchild 25 moves across to 30
	x := &Node{key: 20, height: 2, left: &Node{key: 10, height: 1}, right: &Node{key: 25, height: 1}}
	y := &Node{key: 30, height: 3, left: x, right: &Node{key: 40, height: 1}}

	root, err := tree.rotateRight(y)
	require.NoError(t, err)
	require.Same(t, x, root)
	require.Same(t, y, root.right)
	require.Equal(t, int64(25), y.left.key)
	require.Equal(t, "(20:3 (10:1 - -) (30:2 (25:1 - -) (40:1 - -)))", shape(root))
	require.Equal(t, int64(1), m.RotateRight)
}

func TestNode_RotateLeft(t *testing.T) {
	tree, m := newTestTree()
	y := &Node{key: 20, height: 2, left: &Node{key: 15, height: 1}, right: &Node{key: 30, height: 1}}
	x := &Node{key: 10, height: 3, left: &Node{key: 5, height: 1}, right: y}

	root, err := tree.rotateLeft(x)
	require.NoError(t, err)
	require.Same(t, y, root)
	require.Same(t, x, root.left)
	require.Equal(t, "(20:3 (10:2 (5:1 - -) (15:1 - -)) (30:1 - -))", shape(root))
	require.Equal(t, int64(1), m.RotateLeft)
}

func TestNode_RotateMissingChild(t *testing.T) {
	tree, m := newTestTree()
	leaf := &Node{key: 1, height: 1}

	_, err := tree.rotateRight(leaf)
	require.ErrorIs(t, err, ErrInvariantViolation)
	_, err = tree.rotateLeft(leaf)
	require.ErrorIs(t, err, ErrInvariantViolation)
	_, err = tree.rotateLeft(nil)
	require.ErrorIs(t, err, ErrInvariantViolation)

	// nothing was touched
	require.Equal(t, "(1:1 - -)", shape(leaf))
	require.Equal(t, int64(0), m.Rotations())
}

func TestNode_String(t *testing.T) {
	require.Equal(t, "Node{nil}", (*Node)(nil).String())
	require.Equal(t, "Node{key: 7, height: 1, poolId: 0}", (&Node{key: 7, height: 1}).String())
}
