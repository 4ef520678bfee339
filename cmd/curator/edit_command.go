package main

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"curator/internal/editor"
)

func newEditCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "edit",
		Short: "Interactively author project metadata",
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

			var prompter editor.Prompter
			if isatty.IsTerminal(os.Stdin.Fd()) {
				liner := editor.NewLinerPrompter()
				defer liner.Close()
				prompter = liner
			} else {
				prompter = editor.NewIOPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			}

			session := editor.NewSession(cfg.ContentDir(), store, prompter, cmd.OutOrStdout(), logger)
			return session.Run()
		},
	}
}
