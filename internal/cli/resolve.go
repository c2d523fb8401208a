package cli

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trialviz/axisgoat/internal/resolve"
)

func init() {
	rootCmd.AddCommand(newResolveCmd())
}

func newResolveCmd() *cobra.Command {
	var (
		workers int
		asJSON  bool
	)

	cmd := &cobra.Command{
		Use:   "resolve <study>",
		Short: "Resolve the axis defaults of every view of a study",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Workers
			}
			name := args[0]

			return withResolver(func(r *resolve.Resolver) error {
				results, err := r.StudyDefaults(context.Background(), name, workers)
				if err != nil {
					return notFound(err, fmt.Sprintf("study '%s'", name))
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), results)
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "VIEW\tX\tY")
				for _, res := range results {
					fmt.Fprintf(w, "%s\t%s\t%s\n", res.View, res.X.Label(), res.Y.Label())
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().IntVarP(&workers, "workers", "w", cfg.Workers, "views resolved concurrently")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
