package avl

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvariantViolation is returned when the tree structure contradicts the
	// AVL invariants, e.g. a rotation is requested around a missing child.
	// A tree that returned it rejects all further mutations.
	ErrInvariantViolation = errors.New("avl invariant violation")

	// ErrPoolExhausted is returned by Insert when no node can be allocated.
	// The tree is left unchanged.
	ErrPoolExhausted = errors.New("node pool exhausted")
)
