// Package avl implements an AVL tree of unique int64 keys.
//
// Basic usage:
//
//	tree := avl.NewTree(nil, avl.DefaultTreeOptions())
//	tree.Insert(3)
//	tree.Insert(1)
//	tree.Insert(2)   // left-right rotation at the root
//	tree.Has(2)      // true
//	tree.Delete(2)   // 1 and 3 keep their nodes
//
// Every Insert and Delete rebalances the ancestors of the changed node on the
// way back to the root, so at every node the heights of the two subtrees
// differ by at most one. Inserting a present key and deleting an absent key
// are no-ops.
//
// Deleting a key with two children moves the in-order successor node into the
// vacated position instead of copying its key, so a node keeps its identity
// (see Node.PoolId) for as long as its key is in the tree.
//
// Nodes come from a NodePool. A pool with a MaxNodes limit makes Insert fail
// with ErrPoolExhausted, leaving the tree untouched.
package avl
