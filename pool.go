package avl

import (
	"math"

	"github.com/laud222/AVL-map/metrics"
	"github.com/pkg/errors"
)

// NodePool hands out nodes carved from contiguous slabs and recycles released
// nodes through a free list threaded on the right pointer.
//
// A pool belongs to a single tree (or to trees used from one goroutine); it is
// not safe for concurrent use.
type NodePool struct {
	slabs    [][]Node
	next     int
	free     *Node
	slabSize int
	maxNodes int64

	live      int64
	freeCount int64
	poolId    uint64
	metrics   metrics.Proxy
}

func NewNodePool(opts PoolOptions) *NodePool {
	if opts.SlabSize <= 0 {
		opts.SlabSize = DefaultPoolOptions().SlabSize
	}
	if opts.MetricsProxy == nil {
		opts.MetricsProxy = metrics.NilMetrics{}
	}
	return &NodePool{
		slabSize: opts.SlabSize,
		maxNodes: opts.MaxNodes,
		metrics:  opts.MetricsProxy,
	}
}

// Get returns a fresh leaf holding key, or ErrPoolExhausted when MaxNodes
// nodes are already live.
func (np *NodePool) Get(key int64) (*Node, error) {
	if np.maxNodes > 0 && np.live >= np.maxNodes {
		np.metrics.IncrCounter(1, metricsNamespace, "pool_exhausted")
		return nil, errors.Wrapf(ErrPoolExhausted, "%d live nodes", np.live)
	}

	var node *Node
	if np.free != nil {
		node = np.free
		np.free = node.right
		node.right = nil
		np.freeCount--
		np.metrics.IncrCounter(1, metricsNamespace, "pool_reuse")
	} else {
		if len(np.slabs) == 0 || np.next == np.slabSize {
			np.slabs = append(np.slabs, make([]Node, np.slabSize))
			np.next = 0
		}
		node = &np.slabs[len(np.slabs)-1][np.next]
		np.next++
	}

	if np.poolId == math.MaxUint64 {
		np.poolId = 1
	} else {
		np.poolId++
	}
	node.key = key
	node.height = 1
	node.poolId = np.poolId
	np.live++
	np.metrics.IncrCounter(1, metricsNamespace, "pool_get")
	return node, nil
}

// Put releases node. The caller must hold no further references to it.
func (np *NodePool) Put(node *Node) {
	node.key = 0
	node.height = 0
	node.left = nil
	node.poolId = 0

	node.right = np.free
	np.free = node
	np.freeCount++
	np.live--
	np.metrics.IncrCounter(1, metricsNamespace, "pool_put")
}

// Live is the number of nodes handed out and not yet released.
func (np *NodePool) Live() int64 {
	return np.live
}

// Free is the number of released nodes waiting for reuse.
func (np *NodePool) Free() int64 {
	return np.freeCount
}

// Allocated is the number of nodes backed by slab memory.
func (np *NodePool) Allocated() int64 {
	if len(np.slabs) == 0 {
		return 0
	}
	return int64(len(np.slabs)-1)*int64(np.slabSize) + int64(np.next)
}
