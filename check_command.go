package main

import (
	"errors"
	"fmt"
	"strings"

	"hugo-lint/pkg/models"
	"hugo-lint/pkg/services"

	"github.com/spf13/cobra"
)

var errContentInvalid = errors.New("content check failed")

func newCheckCommand(root *rootOptions) *cobra.Command {
	var strict bool
	var format string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate front matter, links and series across the site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := services.Check(cmd.Context())
			if err != nil {
				return err
			}

			switch strings.ToLower(format) {
			case "json":
				if err := writeJSON(cmd, report); err != nil {
					return err
				}
			case "", "table":
				printIssues(cmd, report)
			default:
				return fmt.Errorf("unsupported format %q (want table or json)", format)
			}

			if report.Failed() || (strict && report.Warnings > 0) {
				return fmt.Errorf("%w: %d errors, %d warnings", errContentInvalid, report.Errors, report.Warnings)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as failures")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

func printIssues(cmd *cobra.Command, report *models.Report) {
	out := cmd.OutOrStdout()
	if len(report.Issues) == 0 {
		fmt.Fprintf(out, "%d documents checked, no issues\n", report.Documents)
		return
	}

	rows := make([][]string, 0, len(report.Issues))
	for _, issue := range report.Issues {
		rows = append(rows, []string{
			string(issue.Severity),
			issue.Code,
			issue.Path,
			issue.Field,
			issue.Message,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Severity", "Code", "Path", "Field", "Message"},
		rows,
		nil,
	))
	fmt.Fprintf(out, "%d documents checked: %d errors, %d warnings\n",
		report.Documents, report.Errors, report.Warnings)
}
