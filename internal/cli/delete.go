package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/trialviz/axisgoat/internal/store"
)

func init() {
	rootCmd.AddCommand(newDeleteCmd())
}

func newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <study>",
		Short: "Delete an imported study",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			return withStore(func(s *store.SQLiteStore) error {
				if err := s.DeleteStudy(context.Background(), name); err != nil {
					return notFound(err, fmt.Sprintf("study '%s'", name))
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted study '%s'\n", name)
				return nil
			})
		},
	}
}
