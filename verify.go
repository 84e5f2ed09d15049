package avl

import (
	"github.com/pkg/errors"
)

// Verify walks the subtree at root and returns an ErrInvariantViolation for
// the first node that breaks key order, has a stale cached height, or is out
// of balance.
func Verify(root *Node) error {
	_, err := verify(root, nil, nil)
	return err
}

// verify returns the actual height of node. lo and hi are exclusive key
// bounds inherited from the ancestors; nil means unbounded.
func verify(node *Node, lo, hi *int64) (int8, error) {
	if node == nil {
		return 0, nil
	}
	if lo != nil && node.key <= *lo {
		return 0, errors.Wrapf(ErrInvariantViolation, "key %d not greater than ancestor %d", node.key, *lo)
	}
	if hi != nil && node.key >= *hi {
		return 0, errors.Wrapf(ErrInvariantViolation, "key %d not less than ancestor %d", node.key, *hi)
	}

	lh, err := verify(node.left, lo, &node.key)
	if err != nil {
		return 0, err
	}
	rh, err := verify(node.right, &node.key, hi)
	if err != nil {
		return 0, err
	}

	h := maxInt8(lh, rh) + 1
	if node.height != h {
		return 0, errors.Wrapf(ErrInvariantViolation, "key %d: cached height %d, actual %d", node.key, node.height, h)
	}
	if bf := int(lh) - int(rh); bf > 1 || bf < -1 {
		return 0, errors.Wrapf(ErrInvariantViolation, "key %d: balance factor %d", node.key, bf)
	}
	return h, nil
}
