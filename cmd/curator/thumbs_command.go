package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/manifest"
	"curator/internal/thumbs"
)

func newThumbsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "thumbs",
		Short: "Generate thumbnails for the published manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			m, err := manifest.ReadManifest(cfg.ManifestPath())
			if err != nil {
				return fmt.Errorf("no manifest at %s (run `curator build` first): %w", cfg.ManifestPath(), err)
			}

			gen := thumbs.NewGenerator(cfg, logger)
			result, err := gen.Generate(m)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Thumbnails: %d generated, %d fresh, %d failed (under %s)\n",
				result.Generated, result.Skipped, result.Failed, cfg.Paths.ThumbnailDir)
			return nil
		},
	}
}
