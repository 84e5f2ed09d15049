package avl

import (
	"fmt"

	"github.com/pkg/errors"
)

// Node represents a single key in a Tree. A node exclusively owns its
// children; there are no parent pointers.
type Node struct {
	key    int64
	height int8
	left   *Node
	right  *Node

	poolId uint64
}

func (node *Node) String() string {
	if node == nil {
		return "Node{nil}"
	}
	return fmt.Sprintf("Node{key: %d, height: %d, poolId: %d}", node.key, node.height, node.poolId)
}

func (node *Node) Key() int64 {
	return node.key
}

func (node *Node) Left() *Node {
	return node.left
}

func (node *Node) Right() *Node {
	return node.right
}

// Height returns the cached subtree height; nil-safe.
func (node *Node) Height() int8 {
	return Height(node)
}

// PoolId identifies the allocation that produced the node. It survives
// rotations and deletions of other keys and is reset once the node is released.
func (node *Node) PoolId() uint64 {
	return node.poolId
}

// Height returns 0 for a missing node, otherwise the cached height.
func Height(node *Node) int8 {
	if node == nil {
		return 0
	}
	return node.height
}

// BalanceFactor is height(left) - height(right), 0 for a missing node.
func BalanceFactor(node *Node) int {
	if node == nil {
		return 0
	}
	return int(Height(node.left)) - int(Height(node.right))
}

// NOTE: mutates height
func (node *Node) calcHeight() {
	node.height = maxInt8(Height(node.left), Height(node.right)) + 1
}

func maxInt8(a, b int8) int8 {
	if a > b {
		return a
	}
	return b
}

// Rotate right and return the new subtree root. The left child is required.
func (tree *Tree) rotateRight(node *Node) (*Node, error) {
	if node == nil || node.left == nil {
		return nil, errors.Wrapf(ErrInvariantViolation, "rotate right at %s: missing left child", node)
	}
	newNode := node.left
	node.left = newNode.right
	newNode.right = node

	node.calcHeight()
	newNode.calcHeight()

	tree.metrics.IncrCounter(1, metricsNamespace, "rotate_right")
	return newNode, nil
}

// Rotate left and return the new subtree root. The right child is required.
func (tree *Tree) rotateLeft(node *Node) (*Node, error) {
	if node == nil || node.right == nil {
		return nil, errors.Wrapf(ErrInvariantViolation, "rotate left at %s: missing right child", node)
	}
	newNode := node.right
	node.right = newNode.left
	newNode.left = node

	node.calcHeight()
	newNode.calcHeight()

	tree.metrics.IncrCounter(1, metricsNamespace, "rotate_left")
	return newNode, nil
}

// balanceInsert restores the invariant at node after key was inserted below
// it. The side of the imbalance is chosen by comparing key with the child.
// NOTE: assumes node height is up to date
func (tree *Tree) balanceInsert(node *Node, key int64) (*Node, error) {
	balance := BalanceFactor(node)
	switch {
	case balance > 1 && key < node.left.key:
		// Left Left Case
		return tree.rotateRight(node)
	case balance < -1 && key > node.right.key:
		// Right Right Case
		return tree.rotateLeft(node)
	case balance > 1 && key > node.left.key:
		// Left Right Case
		newLeftNode, err := tree.rotateLeft(node.left)
		if err != nil {
			return nil, err
		}
		node.left = newLeftNode
		return tree.rotateRight(node)
	case balance < -1 && key < node.right.key:
		// Right Left Case
		newRightNode, err := tree.rotateRight(node.right)
		if err != nil {
			return nil, err
		}
		node.right = newRightNode
		return tree.rotateLeft(node)
	}
	// Nothing changed
	return node, nil
}

// balance restores the invariant at node after a removal below it. There is
// no key to steer by, so the taller child's balance factor picks the case.
// NOTE: assumes node height is up to date
func (tree *Tree) balance(node *Node) (*Node, error) {
	balance := BalanceFactor(node)
	if balance > 1 {
		if BalanceFactor(node.left) >= 0 {
			// Left Left Case
			return tree.rotateRight(node)
		}
		// Left Right Case
		newLeftNode, err := tree.rotateLeft(node.left)
		if err != nil {
			return nil, err
		}
		node.left = newLeftNode
		return tree.rotateRight(node)
	}
	if balance < -1 {
		if BalanceFactor(node.right) <= 0 {
			// Right Right Case
			return tree.rotateLeft(node)
		}
		// Right Left Case
		newRightNode, err := tree.rotateRight(node.right)
		if err != nil {
			return nil, err
		}
		node.right = newRightNode
		return tree.rotateLeft(node)
	}
	// Nothing changed
	return node, nil
}
