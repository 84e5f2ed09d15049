package metrics

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/dustin/go-humanize"
)

// Proxy is the sink the tree reports counters, gauges and timings to. The
// first key is a namespace, the last key names the metric.
type Proxy interface {
	IncrCounter(val float32, keys ...string)
	SetGauge(val float32, keys ...string)
	MeasureSince(start time.Time, keys ...string)
}

var (
	_ Proxy = NilMetrics{}
	_ Proxy = &StructMetrics{}
	_ Proxy = Tee{}
)

type NilMetrics struct{}

func (NilMetrics) IncrCounter(_ float32, _ ...string)    {}
func (NilMetrics) SetGauge(_ float32, _ ...string)       {}
func (NilMetrics) MeasureSince(_ time.Time, _ ...string) {}

// Tee fans every call out to all of its proxies.
type Tee []Proxy

func (t Tee) IncrCounter(val float32, keys ...string) {
	for _, p := range t {
		p.IncrCounter(val, keys...)
	}
}

func (t Tee) SetGauge(val float32, keys ...string) {
	for _, p := range t {
		p.SetGauge(val, keys...)
	}
}

func (t Tee) MeasureSince(start time.Time, keys ...string) {
	for _, p := range t {
		p.MeasureSince(start, keys...)
	}
}

type TreeMetrics struct {
	PoolGet       int64
	PoolPut       int64
	PoolReuse     int64
	PoolExhausted int64

	TreeInsert     int64
	TreeDuplicate  int64
	TreeDelete     int64
	TreeDeleteMiss int64

	RotateLeft  int64
	RotateRight int64
}

func (m *TreeMetrics) Rotations() int64 {
	return m.RotateLeft + m.RotateRight
}

func (m *TreeMetrics) Report(w io.Writer) {
	fmt.Fprintf(w, "Pool:\n gets: %s, puts: %s, reuses: %s, exhausted: %s\n",
		humanize.Comma(m.PoolGet),
		humanize.Comma(m.PoolPut),
		humanize.Comma(m.PoolReuse),
		humanize.Comma(m.PoolExhausted))

	fmt.Fprintf(w, "\nTree:\n insert: %s, duplicate: %s, delete: %s, delete miss: %s\n",
		humanize.Comma(m.TreeInsert),
		humanize.Comma(m.TreeDuplicate),
		humanize.Comma(m.TreeDelete),
		humanize.Comma(m.TreeDeleteMiss))

	fmt.Fprintf(w, " rotations: %s (left: %s, right: %s)\n",
		humanize.Comma(m.Rotations()),
		humanize.Comma(m.RotateLeft),
		humanize.Comma(m.RotateRight))
}

// OpMetrics accumulates the latencies of a single operation kind.
type OpMetrics struct {
	Durations []time.Duration
	Time      time.Duration
	Count     int64
}

func (m *OpMetrics) add(d time.Duration) {
	m.Durations = append(m.Durations, d)
	m.Time += d
	m.Count++
}

// Report prints a one line summary and, if bins > 0, a latency histogram of
// samples below cutoff. A zero cutoff keeps every sample.
func (m *OpMetrics) Report(w io.Writer, name string, bins int, cutoff time.Duration) error {
	if m.Count == 0 {
		return nil
	}

	var opsPerSec int64
	if m.Time > 0 {
		opsPerSec = int64(float64(m.Count) / m.Time.Seconds())
	}
	fmt.Fprintf(w, "%s: ops=%s ops/s=%s dur/op=%s dur=%s\n",
		name,
		humanize.Comma(m.Count),
		humanize.Comma(opsPerSec),
		time.Duration(int64(m.Time)/m.Count),
		m.Time.Round(time.Microsecond),
	)

	if bins > 0 {
		var histData []float64
		for _, d := range m.Durations {
			if cutoff > 0 && d > cutoff {
				continue
			}
			histData = append(histData, float64(d))
		}
		if len(histData) == 0 {
			return nil
		}
		hist := histogram.Hist(bins, histData)
		err := histogram.Fprintf(w, hist, histogram.Linear(10), func(v float64) string {
			return time.Duration(v).String()
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// StructMetrics is an in-memory Proxy. Counters are mapped onto TreeMetrics by
// their last key, timings are grouped per last key.
type StructMetrics struct {
	*TreeMetrics
	Ops    map[string]*OpMetrics
	Gauges map[string]float32
}

func NewStructMetrics() *StructMetrics {
	return &StructMetrics{
		TreeMetrics: &TreeMetrics{},
		Ops:         make(map[string]*OpMetrics),
		Gauges:      make(map[string]float32),
	}
}

func lastKey(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[len(keys)-1]
}

func (s *StructMetrics) IncrCounter(val float32, keys ...string) {
	v := int64(val)
	switch lastKey(keys) {
	case "pool_get":
		s.PoolGet += v
	case "pool_put":
		s.PoolPut += v
	case "pool_reuse":
		s.PoolReuse += v
	case "pool_exhausted":
		s.PoolExhausted += v
	case "tree_insert":
		s.TreeInsert += v
	case "tree_duplicate":
		s.TreeDuplicate += v
	case "tree_delete":
		s.TreeDelete += v
	case "tree_delete_miss":
		s.TreeDeleteMiss += v
	case "rotate_left":
		s.RotateLeft += v
	case "rotate_right":
		s.RotateRight += v
	}
}

func (s *StructMetrics) SetGauge(val float32, keys ...string) {
	s.Gauges[lastKey(keys)] = val
}

func (s *StructMetrics) MeasureSince(start time.Time, keys ...string) {
	d := time.Since(start)
	k := lastKey(keys)
	op, ok := s.Ops[k]
	if !ok {
		op = &OpMetrics{}
		s.Ops[k] = op
	}
	op.add(d)
}

// QueryReport reports every timed operation in name order.
func (s *StructMetrics) QueryReport(w io.Writer, bins int) error {
	names := make([]string, 0, len(s.Ops))
	for name := range s.Ops {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := s.Ops[name].Report(w, name, bins, 50*time.Microsecond); err != nil {
			return err
		}
	}
	return nil
}

func (s *StructMetrics) Reset() {
	s.TreeMetrics = &TreeMetrics{}
	s.Ops = make(map[string]*OpMetrics)
	s.Gauges = make(map[string]float32)
}
