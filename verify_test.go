package avl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerify(t *testing.T) {
	cases := []struct {
		name string
		root *Node
		ok   bool
	}{
		{name: "empty", root: nil, ok: true},
		{name: "leaf", root: &Node{key: 1, height: 1}, ok: true},
		{
			name: "balanced",
			root: &Node{key: 2, height: 2, left: &Node{key: 1, height: 1}, right: &Node{key: 3, height: 1}},
			ok:   true,
		},
		{
			name: "order",
			root: &Node{key: 2, height: 2, left: &Node{key: 3, height: 1}},
		},
		{
			name: "order across levels",
			root: &Node{key: 10, height: 3,
				left:  &Node{key: 5, height: 2, right: &Node{key: 12, height: 1}},
				right: &Node{key: 15, height: 1}},
		},
		{
			name: "duplicate",
			root: &Node{key: 2, height: 2, right: &Node{key: 2, height: 1}},
		},
		{
			name: "stale height",
			root: &Node{key: 2, height: 3, left: &Node{key: 1, height: 1}},
		},
		{
			name: "unbalanced",
			root: &Node{key: 3, height: 3, left: &Node{key: 2, height: 2, left: &Node{key: 1, height: 1}}},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Verify(tc.root)
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrInvariantViolation)
			}
		})
	}
}
