package avl

import (
	"github.com/laud222/AVL-map/metrics"
)

type TreeOptions struct {
	// MetricsProxy receives operation counters. Defaults to metrics.NilMetrics.
	MetricsProxy metrics.Proxy
	// TimeOperations reports the latency of every Insert, Has and Delete to
	// MetricsProxy. It costs two clock reads per call, so benchmarks leave it off.
	TimeOperations bool
	Logger         Logger
}

func DefaultTreeOptions() TreeOptions {
	return TreeOptions{
		MetricsProxy: metrics.NilMetrics{},
		Logger:       NewNopLogger(),
	}
}

type PoolOptions struct {
	// SlabSize is the number of nodes allocated together in one contiguous block.
	SlabSize int
	// MaxNodes caps the number of live nodes; 0 means no limit.
	MaxNodes     int64
	MetricsProxy metrics.Proxy
}

func DefaultPoolOptions() PoolOptions {
	return PoolOptions{
		SlabSize:     1024,
		MetricsProxy: metrics.NilMetrics{},
	}
}
