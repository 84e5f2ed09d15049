package avl

// Iterator walks the keys of a tree in order using an explicit stack of the
// unvisited ancestors. The tree must not be mutated while iterating.
type Iterator struct {
	ascending bool
	stack     []*Node
	cur       *Node
	valid     bool
}

// Iterator returns an iterator positioned at the first key (smallest when
// ascending, largest otherwise).
func (tree *Tree) Iterator(ascending bool) *Iterator {
	i := &Iterator{
		ascending: ascending,
		stack:     make([]*Node, 0, int(tree.Height())),
	}
	i.pushEdge(tree.root)
	i.Next()
	return i
}

// pushEdge stacks node and its descendants along the edge iterated first.
func (i *Iterator) pushEdge(node *Node) {
	for node != nil {
		i.stack = append(i.stack, node)
		if i.ascending {
			node = node.left
		} else {
			node = node.right
		}
	}
}

func (i *Iterator) Valid() bool {
	return i.valid
}

// Next moves to the following key. Calling Next on an invalid iterator is a no-op.
func (i *Iterator) Next() {
	if len(i.stack) == 0 {
		i.cur = nil
		i.valid = false
		return
	}
	node := i.stack[len(i.stack)-1]
	i.stack = i.stack[:len(i.stack)-1]
	if i.ascending {
		i.pushEdge(node.right)
	} else {
		i.pushEdge(node.left)
	}
	i.cur = node
	i.valid = true
}

// Key returns the current key. Panics if the iterator is invalid.
func (i *Iterator) Key() int64 {
	if !i.valid {
		panic("iterator is invalid")
	}
	return i.cur.key
}

// Iterate calls fn for every key in ascending order until fn returns true.
// It returns true if fn stopped the iteration.
func (tree *Tree) Iterate(fn func(key int64) (stop bool)) bool {
	return iterate(tree.root, fn)
}

func iterate(node *Node, fn func(key int64) bool) bool {
	if node == nil {
		return false
	}
	if iterate(node.left, fn) {
		return true
	}
	if fn(node.key) {
		return true
	}
	return iterate(node.right, fn)
}

// Keys returns all keys in ascending order.
func (tree *Tree) Keys() []int64 {
	keys := make([]int64, 0, tree.size)
	tree.Iterate(func(key int64) bool {
		keys = append(keys, key)
		return false
	})
	return keys
}
