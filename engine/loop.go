package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/orrery/component"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/render"
)

// Sink receives every composed frame
// The buffer is reused by the next tick; sinks that keep data must copy it before returning
type Sink interface {
	Present(buf *render.FrameBuffer) error
}

// Display is the primary sink and decides the frame size
type Display interface {
	Sink
	Size() (width, height int)
}

// FrameObserver receives per-frame statistics
type FrameObserver interface {
	ObserveFrame(stats render.FrameStats, took time.Duration)
}

// OrbitListener is notified when a body completes a revolution
type OrbitListener interface {
	OrbitCompleted(b *component.Body)
}

// LoopConfig is the per-tick rendering configuration
type LoopConfig struct {
	FPS    int
	Color  bool
	XScale float64
}

// Option customizes a Loop
type Option func(*Loop)

// WithClock sets the scene time source, default WallClock
func WithClock(c TimeProvider) Option {
	return func(l *Loop) { l.clock = c }
}

// WithSinks adds secondary sinks presented after the display
func WithSinks(sinks ...Sink) Option {
	return func(l *Loop) { l.sinks = append(l.sinks, sinks...) }
}

// WithObserver sets the frame statistics observer
func WithObserver(o FrameObserver) Option {
	return func(l *Loop) { l.observer = o }
}

// WithOrbitListener adds revolution listeners, notified in order
func WithOrbitListener(listeners ...OrbitListener) Option {
	return func(l *Loop) { l.orbits = append(l.orbits, listeners...) }
}

// WithLogger sets the loop logger, default discards
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loop) { l.logger = logger }
}

// WithComposer replaces the default composer, used to inject a seeded star rng
func WithComposer(c *render.Composer) Option {
	return func(l *Loop) { l.composer = c }
}

// Loop drives the scene at a fixed tick rate until stopped
// Tick work is single-threaded; Stop may be called from any goroutine
type Loop struct {
	scene    *Scene
	display  Display
	cfg      LoopConfig
	composer *render.Composer
	clock    TimeProvider
	sinks    []Sink
	observer FrameObserver
	orbits   []OrbitListener
	logger   *slog.Logger

	stopped atomic.Bool
	frames  atomic.Uint64

	width, height int
	warnedScale   bool
}

// NewLoop creates a loop rendering scene onto display
func NewLoop(scene *Scene, display Display, cfg LoopConfig, opts ...Option) *Loop {
	l := &Loop{
		scene:   scene,
		display: display,
		cfg:     cfg,
		clock:   WallClock{},
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.composer == nil {
		l.composer = render.NewComposer(nil)
	}
	return l
}

// Stop requests the loop to exit before the next tick
func (l *Loop) Stop() {
	l.stopped.Store(true)
}

// Stopped reports whether Stop was called
func (l *Loop) Stopped() bool {
	return l.stopped.Load()
}

// Frames returns the number of frames presented
func (l *Loop) Frames() uint64 {
	return l.frames.Load()
}

// Run ticks at the configured rate until Stop, context cancellation, or a sink error
// Missed ticks are dropped, not caught up
func (l *Loop) Run(ctx context.Context) error {
	interval := parameter.FrameInterval(l.cfg.FPS)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	l.logger.Info("loop started", "fps", l.cfg.FPS, "interval", interval, "bodies", len(l.scene.Bodies()), "stars", len(l.scene.Stars()))

	for {
		if l.stopped.Load() {
			l.logger.Info("loop stopped", "reason", "stop requested", "frames", l.Frames())
			return nil
		}
		if _, err := l.Tick(); err != nil {
			return err
		}
		select {
		case <-ctx.Done():
			l.logger.Info("loop stopped", "reason", context.Cause(ctx), "frames", l.Frames())
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Tick advances the scene to the clock's now, composes one frame and presents it to every sink
func (l *Loop) Tick() (render.FrameStats, error) {
	start := time.Now()
	now := l.clock.Now()

	width, height := l.display.Size()
	if width != l.width || height != l.height {
		l.logger.Debug("display resized", "width", width, "height", height)
		l.width, l.height = width, height
	}

	for _, b := range l.scene.Advance(now) {
		l.logger.Debug("revolution completed", "body", b.Name(), "revolutions", b.Revolutions())
		for _, o := range l.orbits {
			o.OrbitCompleted(b)
		}
	}

	buf, stats := l.composer.Compose(l.scene.Bodies(), l.scene.Stars(), width, height, l.cfg.Color, l.cfg.XScale)
	if stats.BodiesSkipped && !l.warnedScale {
		l.logger.Debug("body rendering skipped", "x_scale", l.cfg.XScale)
		l.warnedScale = true
	}

	if err := l.display.Present(buf); err != nil {
		return stats, fmt.Errorf("present frame: %w", err)
	}
	for _, s := range l.sinks {
		if err := s.Present(buf); err != nil {
			return stats, fmt.Errorf("present frame to sink: %w", err)
		}
	}
	l.frames.Add(1)

	if l.observer != nil {
		l.observer.ObserveFrame(stats, time.Since(start))
	}
	return stats, nil
}
