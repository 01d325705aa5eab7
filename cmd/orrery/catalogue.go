package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/orrery/catalogue"
)

func newCatalogueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalogue",
		Short: "Print the selected bodies as a YAML scene file",
		Long: `catalogue writes the bodies the renderer would use, honoring --random, --seed,
--planets and --scene, in the format accepted by --scene.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			bodies, err := buildBodies(cfg, newRand(cfg.Seed), time.Now())
			if err != nil {
				return err
			}
			scene := &catalogue.Scene{Bodies: catalogue.Describe(bodies)}
			return scene.Encode(cmd.OutOrStdout())
		},
	}
}
