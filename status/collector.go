// Package status exposes frame pipeline metrics to Prometheus
package status

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lixenwraith/orrery/component"
	"github.com/lixenwraith/orrery/render"
)

// Collector records per-frame statistics
type Collector struct {
	gatherer prometheus.Gatherer

	Frames           prometheus.Counter
	FrameDuration    prometheus.Histogram
	Bodies           prometheus.Gauge
	Stars            prometheus.Gauge
	Skipped          prometheus.Counter
	Fallbacks        prometheus.Counter
	DroppedFallbacks prometheus.Counter
	Revolutions      *prometheus.CounterVec
}

// NewCollector registers metrics against reg, nil uses the global registry
// Registering twice on the same registry returns the existing collectors
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	c := &Collector{gatherer: gatherer}
	var err error
	if c.Frames, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_frames_total",
		Help: "Frames composed and presented.",
	})); err != nil {
		return nil, err
	}
	if c.FrameDuration, err = register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "orrery_frame_duration_seconds",
		Help:    "Time to advance, compose and present one frame.",
		Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
	})); err != nil {
		return nil, err
	}
	if c.Bodies, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_bodies",
		Help: "Bodies rasterized in the last frame.",
	})); err != nil {
		return nil, err
	}
	if c.Stars, err = register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "orrery_stars",
		Help: "Stars visible in the last frame.",
	})); err != nil {
		return nil, err
	}
	if c.Skipped, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_body_render_skipped_total",
		Help: "Frames whose body pass was skipped for an unusable x scale.",
	})); err != nil {
		return nil, err
	}
	if c.Fallbacks, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_fallback_pixels_total",
		Help: "Bodies drawn as a single nearest cell because no border cell qualified.",
	})); err != nil {
		return nil, err
	}
	if c.DroppedFallbacks, err = register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orrery_dropped_fallback_total",
		Help: "Nearest-cell fallbacks discarded because the cell was on the frame edge.",
	})); err != nil {
		return nil, err
	}
	if c.Revolutions, err = register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orrery_revolutions_total",
		Help: "Completed orbits, labeled by body.",
	}, []string{"body"})); err != nil {
		return nil, err
	}
	return c, nil
}

// ObserveFrame records one frame
func (c *Collector) ObserveFrame(stats render.FrameStats, took time.Duration) {
	if c == nil {
		return
	}
	c.Frames.Inc()
	c.FrameDuration.Observe(took.Seconds())
	c.Bodies.Set(float64(stats.Bodies))
	c.Stars.Set(float64(stats.Stars))
	if stats.BodiesSkipped {
		c.Skipped.Inc()
	}
	c.Fallbacks.Add(float64(stats.Fallbacks))
	c.DroppedFallbacks.Add(float64(stats.DroppedFallbacks))
}

// ObserveRevolution counts a completed orbit for body
func (c *Collector) ObserveRevolution(body string) {
	if c == nil {
		return
	}
	c.Revolutions.WithLabelValues(body).Inc()
}

// OrbitCompleted counts a revolution of b
func (c *Collector) OrbitCompleted(b *component.Body) {
	c.ObserveRevolution(b.Name())
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.gatherer, promhttp.HandlerOpts{})
}

// MetricsHandler mounts the collector on /metrics
func MetricsHandler(c *Collector) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())
	return mux
}

func register[T prometheus.Collector](reg prometheus.Registerer, col T) (T, error) {
	if err := reg.Register(col); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector already registered with incompatible type: %w", err)
		}
		var zero T
		return zero, err
	}
	return col, nil
}
