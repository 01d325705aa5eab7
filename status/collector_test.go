package status

import (
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/orrery/component"
	"github.com/lixenwraith/orrery/render"
)

func TestCollector_ObserveFrame(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	c.ObserveFrame(render.FrameStats{Bodies: 3, Stars: 40, Fallbacks: 1, DroppedFallbacks: 2}, 2*time.Millisecond)
	c.ObserveFrame(render.FrameStats{Stars: 38, BodiesSkipped: true}, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.Frames))
	assert.Equal(t, 0.0, testutil.ToFloat64(c.Bodies))
	assert.Equal(t, 38.0, testutil.ToFloat64(c.Stars))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Skipped))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Fallbacks))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.DroppedFallbacks))
	assert.Equal(t, 1, testutil.CollectAndCount(c.FrameDuration))
}

func TestCollector_ObserveRevolution(t *testing.T) {
	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)

	c.ObserveRevolution("earth")
	c.ObserveRevolution("earth")
	c.ObserveRevolution("mars")
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Revolutions.WithLabelValues("earth")))
	assert.Equal(t, 2, testutil.CollectAndCount(c.Revolutions))
}

func TestCollector_OrbitCompleted(t *testing.T) {
	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)
	b, err := component.NewBody(component.BodyOptions{Name: "io", Radius: 1, OrbitRadius: 4, Period: 1})
	require.NoError(t, err)

	c.OrbitCompleted(b)
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Revolutions.WithLabelValues("io")))
}

func TestCollector_RegisterTwice(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewCollector(reg)
	require.NoError(t, err)
	b, err := NewCollector(reg)
	require.NoError(t, err)

	a.Frames.Inc()
	assert.Equal(t, 1.0, testutil.ToFloat64(b.Frames), "second collector reuses registered metrics")
}

func TestCollector_Nil(t *testing.T) {
	var c *Collector
	assert.NotPanics(t, func() {
		c.ObserveFrame(render.FrameStats{}, 0)
		c.ObserveRevolution("x")
	})
}

func TestMetricsHandler(t *testing.T) {
	c, err := NewCollector(prometheus.NewRegistry())
	require.NoError(t, err)
	c.ObserveFrame(render.FrameStats{Bodies: 2}, time.Millisecond)

	srv := httptest.NewServer(MetricsHandler(c))
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "orrery_frames_total 1")
	assert.Contains(t, string(body), "orrery_bodies 2")
}
