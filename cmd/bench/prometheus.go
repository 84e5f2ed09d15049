package bench

import (
	"context"
	"net/http"
	"time"

	"github.com/laud222/AVL-map/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ metrics.Proxy = &prometheusMetricsProxy{}

// prometheusMetricsProxy exports tree counters, pass gauges and operation
// latencies on its own registry.
type prometheusMetricsProxy struct {
	registry *prometheus.Registry
	counters *prometheus.CounterVec
	gauges   *prometheus.GaugeVec
	latency  *prometheus.HistogramVec
	server   *http.Server
}

func newPrometheusMetricsProxy() *prometheusMetricsProxy {
	p := &prometheusMetricsProxy{registry: prometheus.NewRegistry()}
	factory := promauto.With(p.registry)
	p.counters = factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "avlmap",
		Name:      "events_total",
		Help:      "pool and tree events",
	}, []string{"event"})
	p.gauges = factory.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "avlmap",
		Name:      "bench",
		Help:      "benchmark pass durations and tree shape",
	}, []string{"name"})
	p.latency = factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "avlmap",
		Name:      "op_seconds",
		Help:      "tree operation latency",
		Buckets:   prometheus.ExponentialBuckets(50e-9, 2, 16),
	}, []string{"op"})
	return p
}

func (p *prometheusMetricsProxy) Serve(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{}))
	p.server = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := p.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server stopped")
		}
	}()
}

func (p *prometheusMetricsProxy) Close() error {
	if p.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return p.server.Shutdown(ctx)
}

func lastKey(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[len(keys)-1]
}

func (p *prometheusMetricsProxy) IncrCounter(val float32, keys ...string) {
	p.counters.WithLabelValues(lastKey(keys)).Add(float64(val))
}

func (p *prometheusMetricsProxy) SetGauge(val float32, keys ...string) {
	p.gauges.WithLabelValues(lastKey(keys)).Set(float64(val))
}

func (p *prometheusMetricsProxy) MeasureSince(start time.Time, keys ...string) {
	p.latency.WithLabelValues(lastKey(keys)).Observe(time.Since(start).Seconds())
}
