package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"curator/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history [run-id]",
		Short: "Show recorded build runs, or the skips of one run",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			if len(args) == 1 {
				return showRunSkips(cmd, store, args[0])
			}
			return listRuns(cmd, store, limit)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of runs to list")
	return cmd
}

func listRuns(cmd *cobra.Command, store *history.Store, limit int) error {
	runs, err := store.RecentRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No builds recorded yet")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		status := "ok"
		if !run.Success {
			status = "failed"
		}
		rows = append(rows, []string{
			run.ID,
			string(run.Trigger),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond).String(),
			strconv.Itoa(run.ProjectCount),
			strconv.Itoa(run.SkipCount),
			status,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Run", "Trigger", "Started", "Took", "Projects", "Skips", "Status"},
		rows, 5, 6))
	return nil
}

func showRunSkips(cmd *cobra.Command, store *history.Store, runID string) error {
	run, err := store.GetRun(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %s not found", runID)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s (%s) started %s\n",
		run.ID, run.Trigger, run.StartedAt.Local().Format("2006-01-02 15:04:05"))
	if run.ErrorMessage != "" {
		fmt.Fprintf(out, "Error: %s\n", run.ErrorMessage)
	}

	skips, err := store.SkipsForRun(cmd.Context(), runID)
	if err != nil {
		return err
	}
	if len(skips) == 0 {
		fmt.Fprintln(out, "No folders were skipped")
		return nil
	}
	rows := make([][]string, 0, len(skips))
	for _, skip := range skips {
		rows = append(rows, []string{skip.Folder, skip.Reason, skip.Detail})
	}
	fmt.Fprintln(out, renderTable([]string{"Folder", "Reason", "Detail"}, rows))
	return nil
}
