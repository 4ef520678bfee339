package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"curator/internal/editor"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Repair cover references that no longer match folder images",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := ctx.metaStore()
			if err != nil {
				return err
			}

			changes, err := editor.SyncCovers(cfg.ContentDir(), store)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(changes) == 0 {
				fmt.Fprintln(out, "All covers are valid")
				return nil
			}
			rows := make([][]string, 0, len(changes))
			for _, change := range changes {
				rows = append(rows, []string{change.Folder, change.Cover})
			}
			fmt.Fprintln(out, renderTable([]string{"Folder", "New Cover"}, rows))
			fmt.Fprintf(out, "%d cover(s) repaired\n", len(changes))
			return nil
		},
	}
}
