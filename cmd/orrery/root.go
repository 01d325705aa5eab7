package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/orrery/catalogue"
	"github.com/lixenwraith/orrery/component"
	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/parameter"
)

// Version is set at build time with -ldflags "-X main.Version=..."
var Version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "orrery",
		Short: "Animated orbiting bodies and a twinkling starfield in the terminal",
		Long: `orrery renders a solar system as text: bodies orbit a central anchor with
perspective depth, optional rings and color, over a field of twinkling stars.
Press q, Esc or Ctrl-C to quit, space to pause and m to mute the chime.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			return run(cmd.Context(), cfg)
		},
	}

	fs := root.PersistentFlags()
	fs.String("config", "", "YAML configuration file")
	fs.Int("fps", parameter.DefaultFPS, "frames per second")
	fs.Bool("color", false, "enable colors")
	fs.Int("stars", parameter.DefaultStars, "number of stars")
	fs.Float64("x-scale", parameter.TerminalXScale, "terminal glyph height/width ratio")
	fs.Bool("random", false, "generate a random system instead of the default catalogue")
	fs.Int64("seed", 0, "random seed, 0 seeds from the clock")
	fs.Int("planets", parameter.DefaultPlanets, "planets in a random system")
	fs.Float64("speed", parameter.DefaultSpeed, "orbit time multiplier")
	fs.String("renderer", config.RendererANSI, "display: ansi or screen")
	fs.String("markup", config.MarkupANSI, "stream and frame color markup: ansi or tags")
	fs.String("scene", "", "YAML scene file with the bodies to render")
	fs.Bool("sound", false, "chime when a body completes an orbit")
	fs.String("metrics-addr", "", "serve Prometheus metrics on this address")
	fs.String("stream-addr", "", "stream frames over websocket on this address")
	fs.String("log-file", "", "write logs to this file")
	fs.Bool("debug", false, "debug logging, to logs/orrery.log unless --log-file is set")

	root.AddCommand(newCatalogueCmd(), newFrameCmd(), newConfigCmd(), newVersionCmd())
	return root
}

// resolveConfig loads the config file and applies explicitly set flags over it
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	fs := cmd.Flags()
	path, _ := fs.GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}

	if fs.Changed("fps") {
		cfg.FPS, _ = fs.GetInt("fps")
	}
	if fs.Changed("color") {
		cfg.Color, _ = fs.GetBool("color")
	}
	if fs.Changed("stars") {
		cfg.Stars, _ = fs.GetInt("stars")
	}
	if fs.Changed("x-scale") {
		cfg.XScale, _ = fs.GetFloat64("x-scale")
	}
	if fs.Changed("random") {
		cfg.Random, _ = fs.GetBool("random")
	}
	if fs.Changed("seed") {
		cfg.Seed, _ = fs.GetInt64("seed")
	}
	if fs.Changed("planets") {
		cfg.Planets, _ = fs.GetInt("planets")
	}
	if fs.Changed("speed") {
		cfg.Speed, _ = fs.GetFloat64("speed")
	}
	if fs.Changed("renderer") {
		cfg.Renderer, _ = fs.GetString("renderer")
	}
	if fs.Changed("markup") {
		cfg.Markup, _ = fs.GetString("markup")
	}
	if fs.Changed("scene") {
		cfg.Scene, _ = fs.GetString("scene")
	}
	if fs.Changed("sound") {
		cfg.Sound, _ = fs.GetBool("sound")
	}
	if fs.Changed("metrics-addr") {
		cfg.MetricsAddr, _ = fs.GetString("metrics-addr")
	}
	if fs.Changed("stream-addr") {
		cfg.StreamAddr, _ = fs.GetString("stream-addr")
	}
	if fs.Changed("log-file") {
		cfg.LogFile, _ = fs.GetString("log-file")
	}
	if fs.Changed("debug") {
		cfg.Debug, _ = fs.GetBool("debug")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// buildBodies picks the catalogue: scene file, then random, then the default system
func buildBodies(cfg *config.Config, rng *rand.Rand, now time.Time) ([]*component.Body, error) {
	switch {
	case cfg.Scene != "":
		scene, err := catalogue.LoadScene(cfg.Scene)
		if err != nil {
			return nil, err
		}
		return catalogue.Build(scene.Bodies, rng, now)
	case cfg.Random:
		return catalogue.Random(rng, cfg.Planets, now)
	default:
		return catalogue.Default(now)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "orrery %s\n", Version)
		},
	}
}
