package benchmarks

import (
	"context"
	"time"

	avl "github.com/laud222/AVL-map"
	"github.com/laud222/AVL-map/metrics"
	"github.com/pkg/errors"
)

// the context is polled once every cancelCheckMask+1 keys
const cancelCheckMask = 1<<12 - 1

const metricsNamespace = "bench"

type Pass string

const (
	InsertPass Pass = "insert"
	SearchPass Pass = "search"
	DeletePass Pass = "delete"
)

type PassResult struct {
	Pass     Pass
	Ops      int
	Hits     int // keys added, found or removed
	Duration time.Duration
	// Rotations performed during the pass.
	Rotations int64
}

func (p PassResult) OpsPerSecond() float64 {
	if p.Duration <= 0 {
		return 0
	}
	return float64(p.Ops) / p.Duration.Seconds()
}

type Result struct {
	Name string
	Keys int
	// Unique is the tree size after the insert pass.
	Unique int64
	// Height is the tree height after the insert pass.
	Height int8
	Passes []PassResult

	Metrics *metrics.StructMetrics
}

// Pass returns the result of pass p, false if it did not run.
func (r *Result) Pass(p Pass) (PassResult, bool) {
	for _, pr := range r.Passes {
		if pr.Pass == p {
			return pr, true
		}
	}
	return PassResult{}, false
}

// Runner feeds a key sequence through a fresh tree three times: insert,
// search, delete. Each pass is timed on its own.
type Runner struct {
	// Verify checks the tree invariants after the insert pass, outside the timed section.
	Verify bool
	// TimeOperations records per-call latencies into Result.Metrics.
	TimeOperations bool
	// MetricsProxy receives the tree's metrics and the pass gauges in
	// addition to Result.Metrics.
	MetricsProxy metrics.Proxy
	Logger       avl.Logger
}

func (r *Runner) Run(ctx context.Context, name string, keys []int64) (*Result, error) {
	logger := r.Logger
	if logger == nil {
		logger = avl.NewNopLogger()
	}
	m := metrics.NewStructMetrics()
	var proxy metrics.Proxy = m
	if r.MetricsProxy != nil {
		proxy = metrics.Tee{m, r.MetricsProxy}
	}

	tree := avl.NewTree(nil, avl.TreeOptions{
		MetricsProxy:   proxy,
		TimeOperations: r.TimeOperations,
		Logger:         logger,
	})
	res := &Result{Name: name, Keys: len(keys), Metrics: m}

	pass := func(p Pass, op func(key int64) (bool, error)) error {
		rotations := m.Rotations()
		hits := 0
		start := time.Now()
		for i, k := range keys {
			if i&cancelCheckMask == 0 {
				if err := ctx.Err(); err != nil {
					return err
				}
			}
			ok, err := op(k)
			if err != nil {
				return errors.Wrapf(err, "%s pass, key %d", p, k)
			}
			if ok {
				hits++
			}
		}
		dur := time.Since(start)
		res.Passes = append(res.Passes, PassResult{
			Pass:      p,
			Ops:       len(keys),
			Hits:      hits,
			Duration:  dur,
			Rotations: m.Rotations() - rotations,
		})
		proxy.SetGauge(float32(dur.Seconds()), metricsNamespace, string(p)+"_seconds")
		logger.Info("pass complete", "dataset", name, "pass", p, "dur", dur, "hits", hits)
		return nil
	}

	if err := pass(InsertPass, tree.Insert); err != nil {
		return nil, err
	}
	res.Unique = tree.Size()
	res.Height = tree.Height()
	proxy.SetGauge(float32(res.Unique), metricsNamespace, "tree_size")
	proxy.SetGauge(float32(res.Height), metricsNamespace, "tree_height")
	if r.Verify {
		if err := tree.Verify(); err != nil {
			return nil, errors.Wrapf(err, "dataset %s", name)
		}
	}

	search := func(k int64) (bool, error) {
		return tree.Has(k), nil
	}
	if err := pass(SearchPass, search); err != nil {
		return nil, err
	}

	if err := pass(DeletePass, tree.Delete); err != nil {
		return nil, err
	}
	if !tree.IsEmpty() {
		return nil, errors.Wrapf(avl.ErrInvariantViolation, "dataset %s: %d keys left after delete pass", name, tree.Size())
	}
	proxy.SetGauge(0, metricsNamespace, "tree_size")
	return res, nil
}
