package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"curator/internal/manifest"
)

func newProjectsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "projects",
		Short: "List projects from the published manifest",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			m, err := manifest.ReadManifest(cfg.ManifestPath())
			if err != nil {
				return fmt.Errorf("no manifest at %s (run `curator build` first): %w", cfg.ManifestPath(), err)
			}

			out := cmd.OutOrStdout()
			if len(m.Projects) == 0 {
				fmt.Fprintln(out, "Manifest contains no projects")
				return nil
			}

			rows := make([][]string, 0, len(m.Projects))
			for _, project := range m.Projects {
				order := ""
				if project.Order != nil {
					order = strconv.FormatFloat(*project.Order, 'f', -1, 64)
				}
				rows = append(rows, []string{
					project.ID,
					project.Title,
					project.Categories[0],
					strconv.Itoa(len(project.Images)),
					order,
					project.GalleryGroup,
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"ID", "Title", "Category", "Images", "Order", "Group"},
				rows, 4, 5))
			fmt.Fprintf(out, "%d project(s)\n", len(m.Projects))
			return nil
		},
	}
}
