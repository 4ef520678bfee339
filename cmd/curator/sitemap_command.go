package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"curator/internal/manifest"
	"curator/internal/sitemap"
)

func newSitemapCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sitemap",
		Short: "Write a sitemap for the published manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			m, err := manifest.ReadManifest(cfg.ManifestPath())
			if err != nil {
				return fmt.Errorf("no manifest at %s (run `curator build` first): %w", cfg.ManifestPath(), err)
			}

			path, err := sitemap.Write(cfg, m, time.Now())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s: %d URL(s)\n", path, len(m.Projects)+1)
			return nil
		},
	}
}
