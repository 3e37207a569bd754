package main

import (
	"fmt"
	"path"

	"hugo-lint/pkg/config"
	"hugo-lint/pkg/services"

	"github.com/spf13/cobra"
)

func newNewCommand(root *rootOptions) *cobra.Command {
	var title, series, format string

	cmd := &cobra.Command{
		Use:   "new <section/file.md>",
		Short: "Scaffold a draft document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			overrides := map[string]interface{}{"title": title}
			if series != "" {
				overrides["series"] = []string{series}
			}
			created, err := services.CreateContent(cmd.Context(), args[0], overrides, format)
			if err != nil {
				return err
			}
			root.logger.Info("content created", "path", created)
			fmt.Fprintln(cmd.OutOrStdout(), path.Join(config.ContentDir, created))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Document title")
	cmd.Flags().StringVar(&series, "series", "", "Series the document belongs to")
	cmd.Flags().StringVar(&format, "format", "", "Front matter format: yaml, toml or json")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}
