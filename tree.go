package avl

import (
	"time"

	"github.com/laud222/AVL-map/metrics"
	"github.com/pkg/errors"
)

const metricsNamespace = "avl"

// Tree is an AVL tree of unique int64 keys.
//
// A Tree is not safe for concurrent use. Callers that share one between
// goroutines must serialize every call.
type Tree struct {
	root           *Node
	size           int64
	pool           *NodePool
	metrics        metrics.Proxy
	timeOperations bool
	logger         Logger

	// set once an invariant violation is detected; the tree refuses mutations after.
	// A leaf allocated by the failing insert stays linked and counted as live
	// in the pool, so the faulted tree can still be read.
	fault error
}

// NewTree returns an empty tree allocating from pool. A nil pool gets a
// private pool with default options reporting to the tree's metrics.
func NewTree(pool *NodePool, opts TreeOptions) *Tree {
	if opts.MetricsProxy == nil {
		opts.MetricsProxy = metrics.NilMetrics{}
	}
	if opts.Logger == nil {
		opts.Logger = NewNopLogger()
	}
	if pool == nil {
		poolOpts := DefaultPoolOptions()
		poolOpts.MetricsProxy = opts.MetricsProxy
		pool = NewNodePool(poolOpts)
	}
	return &Tree{
		pool:           pool,
		metrics:        opts.MetricsProxy,
		timeOperations: opts.TimeOperations,
		logger:         opts.Logger,
	}
}

// Insert adds key to the tree. It returns false without error when the key
// is already present. On error the tree is unchanged.
func (tree *Tree) Insert(key int64) (added bool, err error) {
	if tree.timeOperations {
		defer tree.metrics.MeasureSince(time.Now(), metricsNamespace, "tree_insert")
	}
	if tree.fault != nil {
		return false, tree.fault
	}

	newRoot, added, err := tree.insert(tree.root, key)
	if err != nil {
		return false, tree.fail(err, "insert", key)
	}
	if !added {
		tree.metrics.IncrCounter(1, metricsNamespace, "tree_duplicate")
		return false, nil
	}
	tree.root = newRoot
	tree.size++
	tree.metrics.IncrCounter(1, metricsNamespace, "tree_insert")
	return true, nil
}

// insert returns the new root of the subtree at node. A new node is only
// allocated at the bottom of the descent, before any height is touched.
func (tree *Tree) insert(node *Node, key int64) (newSelf *Node, added bool, err error) {
	if node == nil {
		leaf, err := tree.pool.Get(key)
		if err != nil {
			return nil, false, err
		}
		return leaf, true, nil
	}

	var child *Node
	switch {
	case key < node.key:
		child, added, err = tree.insert(node.left, key)
		if err != nil || !added {
			return node, false, err
		}
		node.left = child
	case key > node.key:
		child, added, err = tree.insert(node.right, key)
		if err != nil || !added {
			return node, false, err
		}
		node.right = child
	default:
		return node, false, nil
	}

	node.calcHeight()
	newNode, err := tree.balanceInsert(node, key)
	if err != nil {
		return node, false, err
	}
	return newNode, true, nil
}

// Has reports whether key is in the tree. It never mutates the tree.
func (tree *Tree) Has(key int64) bool {
	if tree.timeOperations {
		defer tree.metrics.MeasureSince(time.Now(), metricsNamespace, "tree_has")
	}
	return Search(tree.root, key)
}

// Search descends from root by key comparison.
func Search(root *Node, key int64) bool {
	node := root
	for node != nil {
		switch {
		case key < node.key:
			node = node.left
		case key > node.key:
			node = node.right
		default:
			return true
		}
	}
	return false
}

// Delete removes key from the tree. It returns false without error when the
// key is absent. The node released is always the one that held key.
func (tree *Tree) Delete(key int64) (removed bool, err error) {
	if tree.timeOperations {
		defer tree.metrics.MeasureSince(time.Now(), metricsNamespace, "tree_delete")
	}
	if tree.fault != nil {
		return false, tree.fault
	}

	newRoot, removed, err := tree.remove(tree.root, key)
	if err != nil {
		return false, tree.fail(err, "delete", key)
	}
	if !removed {
		tree.metrics.IncrCounter(1, metricsNamespace, "tree_delete_miss")
		return false, nil
	}
	tree.root = newRoot
	tree.size--
	tree.metrics.IncrCounter(1, metricsNamespace, "tree_delete")
	return true, nil
}

// removes the node holding key and rebalances every ancestor on the way back.
// It returns the node that replaces the subtree root after removal.
func (tree *Tree) remove(node *Node, key int64) (newSelf *Node, removed bool, err error) {
	if node == nil {
		return nil, false, nil
	}

	var child *Node
	switch {
	case key < node.key:
		child, removed, err = tree.remove(node.left, key)
		if err != nil || !removed {
			return node, removed, err
		}
		node.left = child
	case key > node.key:
		child, removed, err = tree.remove(node.right, key)
		if err != nil || !removed {
			return node, removed, err
		}
		node.right = child
	default:
		if node.left == nil || node.right == nil {
			// zero or one child: splice the node out
			replacement := node.left
			if replacement == nil {
				replacement = node.right
			}
			tree.pool.Put(node)
			return replacement, true, nil
		}
		// two children: detach the in-order successor and move it into
		// node's position, so the released node is the one holding key
		newRight, successor, err := tree.removeMin(node.right)
		if err != nil {
			return node, false, err
		}
		successor.left = node.left
		successor.right = newRight
		tree.pool.Put(node)
		node = successor
	}

	node.calcHeight()
	newNode, err := tree.balance(node)
	if err != nil {
		return node, false, err
	}
	return newNode, true, nil
}

// removeMin detaches the leftmost node of the subtree at node. It returns the
// rebalanced remainder and the detached node, whose children are cleared.
func (tree *Tree) removeMin(node *Node) (newSelf *Node, leftmost *Node, err error) {
	if node.left == nil {
		right := node.right
		node.right = nil
		return right, node, nil
	}
	newLeft, leftmost, err := tree.removeMin(node.left)
	if err != nil {
		return node, nil, err
	}
	node.left = newLeft
	node.calcHeight()
	newNode, err := tree.balance(node)
	if err != nil {
		return node, nil, err
	}
	return newNode, leftmost, nil
}

// fail records invariant violations so later mutations are refused. Pool
// exhaustion is passed through untouched since the tree was not modified.
func (tree *Tree) fail(err error, op string, key int64) error {
	if errors.Is(err, ErrPoolExhausted) {
		tree.logger.Debug("node pool exhausted", "op", op, "key", key, "size", tree.size)
		return err
	}
	tree.fault = errors.Wrapf(err, "%s %d", op, key)
	tree.logger.Error("tree invariant violated", "op", op, "key", key, "err", err)
	return tree.fault
}

func (tree *Tree) Root() *Node {
	return tree.root
}

func (tree *Tree) Size() int64 {
	return tree.size
}

func (tree *Tree) Height() int8 {
	return Height(tree.root)
}

func (tree *Tree) IsEmpty() bool {
	return tree.root == nil
}

// Pool returns the pool the tree allocates from.
func (tree *Tree) Pool() *NodePool {
	return tree.pool
}

// Min returns the smallest key, false if the tree is empty.
func (tree *Tree) Min() (int64, bool) {
	node := tree.root
	if node == nil {
		return 0, false
	}
	for node.left != nil {
		node = node.left
	}
	return node.key, true
}

// Max returns the largest key, false if the tree is empty.
func (tree *Tree) Max() (int64, bool) {
	node := tree.root
	if node == nil {
		return 0, false
	}
	for node.right != nil {
		node = node.right
	}
	return node.key, true
}

// Verify checks order, cached heights and balance of the whole tree.
func (tree *Tree) Verify() error {
	if tree.fault != nil {
		return tree.fault
	}
	return Verify(tree.root)
}
