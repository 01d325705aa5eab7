package main

import (
	"fmt"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/orrery/catalogue"
	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/render"
)

// frameEpoch anchors single-frame renders so a seed and time always give the same output
var frameEpoch = time.Unix(0, 0).UTC()

func newFrameCmd() *cobra.Command {
	var (
		width, height int
		at            time.Duration
	)

	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Render one frame to stdout",
		Long: `frame composes a single frame of the scene after --time of simulated motion
and prints it. With --color the output is wrapped in the --markup format.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if width < 1 || height < 1 {
				return fmt.Errorf("%w: frame size %dx%d", config.ErrInvalidConfig, width, height)
			}
			if at < 0 {
				return fmt.Errorf("%w: negative time %s", config.ErrInvalidConfig, at)
			}
			out, err := renderFrame(cfg, width, height, at, frameMarkup(cfg, cmd))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 80, "frame width in cells")
	cmd.Flags().IntVar(&height, "height", 24, "frame height in cells")
	cmd.Flags().DurationVar(&at, "time", 0, "simulated time since the scene started")
	return cmd
}

func frameMarkup(cfg *config.Config, cmd *cobra.Command) render.Markup {
	if cfg.Markup == config.MarkupTags {
		return render.TagMarkup{}
	}
	return render.ANSIMarkup{Profile: termenv.NewOutput(cmd.OutOrStdout()).EnvColorProfile()}
}

// renderFrame builds the configured scene at frameEpoch and serializes it at frameEpoch+at
func renderFrame(cfg *config.Config, width, height int, at time.Duration, markup render.Markup) (string, error) {
	rng := newRand(cfg.Seed)
	bodies, err := buildBodies(cfg, rng, frameEpoch)
	if err != nil {
		return "", err
	}
	stars, err := catalogue.Stars(rng, cfg.Stars, width, height, frameEpoch)
	if err != nil {
		return "", err
	}
	scene, err := engine.NewScene(bodies, stars, cfg.Speed)
	if err != nil {
		return "", err
	}
	scene.Advance(frameEpoch.Add(at))

	buf, _ := render.NewComposer(rng).Compose(scene.Bodies(), scene.Stars(), width, height, cfg.Color, cfg.XScale)
	return render.NewSerializer(markup).Serialize(buf, cfg.Color), nil
}
