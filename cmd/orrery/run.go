package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/muesli/termenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/catalogue"
	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/logging"
	"github.com/lixenwraith/orrery/network"
	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/status"
	"github.com/lixenwraith/orrery/terminal"
)

// actionQueue buffers key actions until the loop exists to consume them
const actionQueue = 8

// screen is a display plus its input source and teardown
type screen struct {
	engine.Display
	restore func()
}

// openScreen starts the configured display and begins delivering key actions to emit
func openScreen(cfg *config.Config, emit func(terminal.Action)) (*screen, error) {
	switch cfg.Renderer {
	case config.RendererScreen:
		d, err := terminal.NewScreenDisplay(nil)
		if err != nil {
			return nil, fmt.Errorf("init screen: %w", err)
		}
		d.Watch(emit)
		return &screen{Display: d, restore: d.Close}, nil
	default:
		d := terminal.NewANSIDisplay(os.Stdout, cfg.Color)
		d.Start()
		restoreKeys, err := terminal.WatchKeys(os.Stdin, emit)
		if err != nil {
			d.Close()
			return nil, fmt.Errorf("raw mode: %w", err)
		}
		return &screen{Display: d, restore: func() {
			restoreKeys()
			d.Close()
		}}, nil
	}
}

// streamMarkup picks the markup for frames leaving the process
func streamMarkup(cfg *config.Config) render.Markup {
	if cfg.Markup == config.MarkupTags {
		return render.TagMarkup{}
	}
	return render.ANSIMarkup{Profile: termenv.TrueColor}
}

func run(ctx context.Context, cfg *config.Config) error {
	logger, logCloser, err := logging.Open(cfg.LogFile, cfg.Debug)
	if err != nil {
		return err
	}
	defer logCloser.Close()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rng := newRand(cfg.Seed)
	clock := engine.NewPausableClock(nil)
	now := clock.Now()

	bodies, err := buildBodies(cfg, rng, now)
	if err != nil {
		return err
	}

	actions := make(chan terminal.Action, actionQueue)
	emit := func(a terminal.Action) {
		select {
		case actions <- a:
		default:
		}
	}

	scr, err := openScreen(cfg, emit)
	if err != nil {
		return err
	}
	terminal.SetCrashReset(scr.restore)
	defer scr.restore()
	defer func() {
		if r := recover(); r != nil {
			terminal.HandleCrash(r)
		}
	}()

	width, height := scr.Size()
	stars, err := catalogue.Stars(rng, cfg.Stars, width, height, now)
	if err != nil {
		return err
	}
	scene, err := engine.NewScene(bodies, stars, cfg.Speed)
	if err != nil {
		return err
	}

	opts := []engine.Option{
		engine.WithClock(clock),
		engine.WithLogger(logger),
		engine.WithComposer(render.NewComposer(rng)),
	}

	if cfg.MetricsAddr != "" {
		collector, err := status.NewCollector(prometheus.NewRegistry())
		if err != nil {
			return err
		}
		_, errCh, err := network.Serve(ctx, cfg.MetricsAddr, status.MetricsHandler(collector), logger)
		if err != nil {
			return fmt.Errorf("metrics: %w", err)
		}
		go logServeError(logger, "metrics", errCh)
		opts = append(opts, engine.WithObserver(collector), engine.WithOrbitListener(collector))
	}

	if cfg.StreamAddr != "" {
		netCfg := network.DefaultConfig()
		netCfg.Address = cfg.StreamAddr
		hub := network.NewHub(netCfg, render.NewSerializer(streamMarkup(cfg)), cfg.Color, logger)
		defer hub.Close()
		_, errCh, err := network.Serve(ctx, netCfg.Address, network.StreamHandler(netCfg, hub), logger)
		if err != nil {
			return fmt.Errorf("stream: %w", err)
		}
		logger.Info("frame stream enabled", "path", netCfg.Path)
		go logServeError(logger, "stream", errCh)
		opts = append(opts, engine.WithSinks(hub))
	}

	var chime *audio.Chime
	if cfg.Sound {
		audioCfg := audio.DefaultConfig()
		player, err := audio.NewSpeakerPlayer(audioCfg.SampleRate)
		if err != nil {
			logger.Warn("sound disabled", "error", err)
		} else {
			defer player.Close()
			chime = audio.NewChime(player, audioCfg)
			opts = append(opts, engine.WithOrbitListener(chime))
		}
	}

	loop := engine.NewLoop(scene, scr, engine.LoopConfig{
		FPS:    cfg.FPS,
		Color:  cfg.Color,
		XScale: cfg.XScale,
	}, opts...)

	ctl := &controls{loop: loop, clock: clock, chime: chime, logger: logger}
	terminal.Go(func() {
		for {
			select {
			case <-ctx.Done():
				return
			case a := <-actions:
				ctl.handle(a)
			}
		}
	})

	return loop.Run(ctx)
}

// controls applies key actions to the running loop; chime is nil when sound is off
type controls struct {
	loop   *engine.Loop
	clock  *engine.PausableClock
	chime  *audio.Chime
	logger *slog.Logger
}

func (c *controls) handle(a terminal.Action) {
	switch a {
	case terminal.ActionQuit:
		c.loop.Stop()
	case terminal.ActionPause:
		if c.clock.Toggle() {
			c.logger.Info("paused")
		} else {
			c.logger.Info("resumed", "paused_total", c.clock.PausedFor())
		}
	case terminal.ActionMute:
		if c.chime == nil {
			return
		}
		c.logger.Info("sound toggled", "muted", c.chime.ToggleMute())
	}
}

func logServeError(logger *slog.Logger, name string, errCh <-chan error) {
	if err, ok := <-errCh; ok && err != nil {
		logger.Error("server failed", "server", name, "error", err)
	}
}
