package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"curator/internal/history"
	"curator/internal/logging"
	"curator/internal/manifest"
	"curator/internal/thumbs"
)

func newBuildCommand(ctx *commandContext) *cobra.Command {
	var withThumbs bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Scan the content directory and write the gallery manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			started := time.Now()
			builder := manifest.NewBuilder(cfg, logger)
			result, buildErr := builder.Build()

			if store, err := history.Open(cfg); err == nil {
				defer store.Close()
				recordRun(cmd, store, history.TriggerManual, started, result, buildErr)
			} else {
				logger.Warn("history unavailable", logging.Error(err))
			}
			if buildErr != nil {
				return buildErr
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s: %d projects, %d skipped (%s)\n",
				result.Path, len(result.Manifest.Projects), len(result.Skips),
				result.Duration.Round(time.Millisecond))
			if len(result.Skips) > 0 {
				rows := make([][]string, 0, len(result.Skips))
				for _, skip := range result.Skips {
					rows = append(rows, []string{skip.Folder, skip.Reason.String(), skip.Detail})
				}
				fmt.Fprintln(out, renderTable([]string{"Folder", "Reason", "Detail"}, rows))
			}

			if withThumbs || cfg.Thumbnails.Enabled {
				gen := thumbs.NewGenerator(cfg, logger)
				thumbResult, err := gen.Generate(&result.Manifest)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Thumbnails: %d generated, %d fresh, %d failed\n",
					thumbResult.Generated, thumbResult.Skipped, thumbResult.Failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&withThumbs, "thumbs", false, "Generate thumbnails even when disabled in config")
	return cmd
}

// recordRun persists one build outcome. History failures are reported but
// never fail the build itself.
func recordRun(cmd *cobra.Command, store *history.Store, trigger history.Trigger, started time.Time, result *manifest.Result, buildErr error) {
	run := &history.Run{
		Trigger:    trigger,
		StartedAt:  started,
		FinishedAt: time.Now(),
		Success:    buildErr == nil,
	}
	var skips []history.Skip
	if result != nil {
		run.ProjectCount = len(result.Manifest.Projects)
		for _, skip := range result.Skips {
			skips = append(skips, history.Skip{
				Folder: skip.Folder,
				Reason: skip.Reason.String(),
				Detail: skip.Detail,
			})
		}
	}
	if buildErr != nil {
		run.ErrorMessage = buildErr.Error()
	}
	if err := store.RecordRun(cmd.Context(), run, skips); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "record build history: %v\n", err)
	}
}
