package main

import (
	"fmt"
	"strconv"
	"strings"

	"hugo-lint/pkg/models"
	"hugo-lint/pkg/services"

	"github.com/spf13/cobra"
)

func newIndexCommand(root *rootOptions) *cobra.Command {
	var tags, series bool
	var format string

	cmd := &cobra.Command{
		Use:   "index",
		Short: "List published posts, tags or series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if tags && series {
				return fmt.Errorf("--tags and --series are mutually exclusive")
			}
			var asJSON bool
			switch strings.ToLower(format) {
			case "table":
			case "json":
				asJSON = true
			default:
				return fmt.Errorf("unsupported format %q (want table or json)", format)
			}
			report, err := services.Check(cmd.Context())
			if err != nil {
				return err
			}

			switch {
			case tags:
				if asJSON {
					return writeJSON(cmd, report.Tags)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTagIndex(report.Tags))
			case series:
				if asJSON {
					return writeJSON(cmd, report.Series)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderSeries(report.Series))
			default:
				if asJSON {
					return writeJSON(cmd, report.Published)
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderPublished(report.Published))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&tags, "tags", false, "List tags with their published posts")
	cmd.Flags().BoolVar(&series, "series", false, "List series in reading order")
	cmd.Flags().StringVar(&format, "format", "table", "Output format: table or json")
	return cmd
}

func renderPublished(published []models.DocumentSummary) string {
	rows := make([][]string, 0, len(published))
	for _, doc := range published {
		rows = append(rows, []string{
			formatDate(doc),
			doc.Title,
			doc.Permalink,
			strings.Join(doc.Tags, ", "),
		})
	}
	return renderTable([]string{"Date", "Title", "URL", "Tags"}, rows, nil)
}

func renderTagIndex(index models.TagIndex) string {
	var rows [][]string
	for _, key := range services.SortedTagKeys(index) {
		entry := index[key]
		titles := make([]string, 0, len(entry.Documents))
		for _, doc := range entry.Documents {
			titles = append(titles, doc.Title)
		}
		rows = append(rows, []string{
			entry.Name,
			"/tags/" + key + "/",
			strconv.Itoa(len(entry.Documents)),
			strings.Join(titles, "; "),
		})
	}
	return renderTable(
		[]string{"Tag", "URL", "Posts", "Titles"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignRight, alignLeft},
	)
}

func renderSeries(series []models.Series) string {
	var rows [][]string
	for _, s := range series {
		for _, member := range s.Members {
			draft := ""
			if member.Draft {
				draft = "draft"
			}
			rows = append(rows, []string{
				s.Name,
				strconv.Itoa(member.Position),
				formatDate(member.DocumentSummary),
				member.Title,
				draft,
			})
		}
	}
	return renderTable(
		[]string{"Series", "#", "Date", "Title", ""},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignLeft, alignLeft, alignLeft},
	)
}

func formatDate(doc models.DocumentSummary) string {
	if doc.Date.IsZero() {
		return "-"
	}
	return doc.Date.Format("2006-01-02")
}
