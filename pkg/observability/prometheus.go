package observability

import (
	"context"
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

const namespace = "claimviz"

// PrometheusHooks implements every hook interface with Prometheus metrics.
type PrometheusHooks struct {
	reg prometheus.Gatherer

	scenes        *prometheus.CounterVec
	renders       *prometheus.CounterVec
	renderSeconds *prometheus.HistogramVec
	markers       *prometheus.CounterVec
	snapSteps     prometheus.Histogram
	cacheOps      *prometheus.CounterVec
	cacheBytes    prometheus.Counter
	artifacts     *prometheus.CounterVec
}

// NewPrometheusHooks creates the metrics and registers them with reg.
func NewPrometheusHooks(reg *prometheus.Registry) *PrometheusHooks {
	h := &PrometheusHooks{
		reg: reg,
		scenes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scenes_loaded_total",
			Help:      "Scene files loaded, by outcome.",
		}, []string{"outcome"}),
		renders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "renders_total",
			Help:      "Overlay renders, by style and outcome.",
		}, []string{"style", "outcome"}),
		renderSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering one overlay request.",
			Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
		}, []string{"style"}),
		markers: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "markers_resolved_total",
			Help:      "Resolved markers, by style, role and snap reason.",
		}, []string{"style", "role", "reason"}),
		snapSteps: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snap_steps",
			Help:      "Voxels inspected per snapped marker.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 10),
		}),
		cacheOps: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_operations_total",
			Help:      "Cache operations, by key type and result.",
		}, []string{"key_type", "result"}),
		cacheBytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cache_written_bytes_total",
			Help:      "Bytes written to the cache.",
		}),
		artifacts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "artifacts_written_total",
			Help:      "Artifacts written, by format and outcome.",
		}, []string{"format", "outcome"}),
	}
	reg.MustRegister(h.scenes, h.renders, h.renderSeconds, h.markers,
		h.snapSteps, h.cacheOps, h.cacheBytes, h.artifacts)
	return h
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

func (h *PrometheusHooks) OnSceneLoad(_ context.Context, _ string, _ int, _ time.Duration, err error) {
	h.scenes.WithLabelValues(outcome(err)).Inc()
}

func (h *PrometheusHooks) OnRenderStart(context.Context, string, string) {}

func (h *PrometheusHooks) OnRenderComplete(_ context.Context, _ string, style string, _ int, d time.Duration, err error) {
	h.renders.WithLabelValues(style, outcome(err)).Inc()
	h.renderSeconds.WithLabelValues(style).Observe(d.Seconds())
}

func (h *PrometheusHooks) OnArtifactWrite(_ context.Context, format string, _ int, err error) {
	h.artifacts.WithLabelValues(format, outcome(err)).Inc()
}

func (h *PrometheusHooks) OnCacheHit(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "hit").Inc()
}

func (h *PrometheusHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.cacheOps.WithLabelValues(keyType, "miss").Inc()
}

func (h *PrometheusHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.cacheOps.WithLabelValues(keyType, "set").Inc()
	h.cacheBytes.Add(float64(size))
}

func (h *PrometheusHooks) OnMarkerResolved(_ context.Context, style, role, reason string, steps int) {
	if reason == "" {
		reason = "exact"
	} else {
		h.snapSteps.Observe(float64(steps))
	}
	h.markers.WithLabelValues(style, role, reason).Inc()
}

// WriteText writes every gathered metric family in the Prometheus text
// exposition format.
func (h *PrometheusHooks) WriteText(w io.Writer) error {
	mfs, err := h.reg.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ PipelineHooks = (*PrometheusHooks)(nil)
	_ CacheHooks    = (*PrometheusHooks)(nil)
	_ OverlayHooks  = (*PrometheusHooks)(nil)
)
