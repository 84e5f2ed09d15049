package metrics

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStructMetrics_Counters(t *testing.T) {
	m := NewStructMetrics()
	m.IncrCounter(1, "avl", "tree_insert")
	m.IncrCounter(1, "avl", "tree_insert")
	m.IncrCounter(1, "avl", "tree_duplicate")
	m.IncrCounter(2, "avl", "rotate_left")
	m.IncrCounter(1, "avl", "rotate_right")
	m.IncrCounter(1, "avl", "unknown")

	require.Equal(t, int64(2), m.TreeInsert)
	require.Equal(t, int64(1), m.TreeDuplicate)
	require.Equal(t, int64(3), m.Rotations())

	var buf bytes.Buffer
	m.Report(&buf)
	require.Contains(t, buf.String(), "insert: 2, duplicate: 1")
	require.Contains(t, buf.String(), "rotations: 3 (left: 2, right: 1)")

	m.Reset()
	require.Equal(t, int64(0), m.Rotations())
}

func TestStructMetrics_MeasureSince(t *testing.T) {
	m := NewStructMetrics()
	start := time.Now().Add(-time.Microsecond)
	for i := 0; i < 10; i++ {
		m.MeasureSince(start, "avl", "tree_has")
	}
	m.SetGauge(42, "avl", "tree_size")

	op := m.Ops["tree_has"]
	require.NotNil(t, op)
	require.Equal(t, int64(10), op.Count)
	require.Len(t, op.Durations, 10)
	require.Equal(t, float32(42), m.Gauges["tree_size"])

	var buf bytes.Buffer
	require.NoError(t, m.QueryReport(&buf, 0))
	require.Contains(t, buf.String(), "tree_has: ops=10")
}

func TestOpMetrics_ReportEmpty(t *testing.T) {
	var (
		buf bytes.Buffer
		op  OpMetrics
	)
	require.NoError(t, op.Report(&buf, "tree_get", 10, 0))
	require.Empty(t, buf.String())
}

func TestOpMetrics_ReportHistogram(t *testing.T) {
	op := &OpMetrics{}
	for i := 1; i <= 100; i++ {
		op.add(time.Duration(i) * time.Microsecond)
	}
	var buf bytes.Buffer
	require.NoError(t, op.Report(&buf, "tree_insert", 5, 0))
	require.Contains(t, buf.String(), "tree_insert: ops=100")
	require.Greater(t, len(bytes.Split(buf.Bytes(), []byte("\n"))), 2)
}

func TestTee(t *testing.T) {
	a, b := NewStructMetrics(), NewStructMetrics()
	tee := Tee{a, b, NilMetrics{}}
	tee.IncrCounter(1, "avl", "tree_delete")
	tee.SetGauge(7, "avl", "tree_height")
	tee.MeasureSince(time.Now(), "avl", "tree_delete")

	for _, m := range []*StructMetrics{a, b} {
		require.Equal(t, int64(1), m.TreeDelete)
		require.Equal(t, float32(7), m.Gauges["tree_height"])
		require.Equal(t, int64(1), m.Ops["tree_delete"].Count)
	}
}

func TestOpMetrics_ReportZeroTime(t *testing.T) {
	m := &OpMetrics{}
	m.add(0)
	m.add(0)
	var buf bytes.Buffer
	require.NoError(t, m.Report(&buf, "tree_has", 0, 0))
	require.Equal(t, "tree_has: ops=2 ops/s=0 dur/op=0s dur=0s\n", buf.String())
}
