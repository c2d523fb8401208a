package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trialviz/axisgoat/internal/store"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List imported studies",
	Long:  `List all imported studies with their status and view count.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	return withStore(func(s *store.SQLiteStore) error {
		studies, err := s.ListStudies(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list studies: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(studies) == 0 {
			fmt.Fprintln(out, "No studies yet.")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Import study metadata first:")
			fmt.Fprintln(out, "  axisgoat import study.json")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tSTATUS\tVIEWS\tUPDATED")
		for _, study := range studies {
			fmt.Fprintf(w, "%s\t%s\t%d\t%s\n",
				study.Name,
				studyStatus(study.Ongoing),
				len(study.Views),
				study.UpdatedAt.Format("2006-01-02"),
			)
		}
		return w.Flush()
	})
}

func studyStatus(ongoing bool) string {
	if ongoing {
		return "ONGOING"
	}
	return "COMPLETED"
}
