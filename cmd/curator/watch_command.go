package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"curator/internal/history"
	"curator/internal/manifest"
	"curator/internal/thumbs"
	"curator/internal/watch"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Rebuild the manifest whenever the content directory changes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			store, err := ctx.metaStore()
			if err != nil {
				return err
			}

			histStore, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer histStore.Close()

			builder := manifest.NewBuilder(cfg, logger)
			build := func(buildCtx context.Context) error {
				started := time.Now()
				result, buildErr := builder.Build()
				recordRun(cmd, histStore, history.TriggerWatch, started, result, buildErr)
				if buildErr != nil {
					return buildErr
				}
				if cfg.Thumbnails.Enabled {
					gen := thumbs.NewGenerator(cfg, logger)
					if _, err := gen.Generate(&result.Manifest); err != nil {
						return err
					}
				}
				return nil
			}

			sigCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", cfg.ContentDir())
			daemon := watch.NewDaemon(cfg, store, build, logger)
			return daemon.Run(sigCtx)
		},
	}
}
