package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trialviz/axisgoat/internal/axis"
	"github.com/trialviz/axisgoat/internal/resolve"
)

func init() {
	rootCmd.AddCommand(newOptionsCmd())
	rootCmd.AddCommand(newDefaultCmd())
	rootCmd.AddCommand(newReconcileCmd())
}

func newOptionsCmd() *cobra.Command {
	var (
		axisName string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "options <study> <view>",
		Short: "List the selectable options of an axis",
		Long: `List the options an axis selector offers for a view of a study, with
timestamp options expanded into their variants.

Examples:
  axisgoat options STUDY0001 LABS_BOXPLOT
  axisgoat options STUDY0001 PK_RESULTS_BOXPLOT --axis y --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseRequest(args[0], args[1], axisName)
			if err != nil {
				return err
			}

			return withResolver(func(r *resolve.Resolver) error {
				opts, err := r.Options(context.Background(), req)
				if err != nil {
					return notFound(err, req.String())
				}
				if asJSON {
					return printJSON(cmd.OutOrStdout(), opts)
				}

				w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
				fmt.Fprintln(w, "LABEL\tGROUP BY\tPARAMS")
				for _, o := range opts {
					fmt.Fprintf(w, "%s\t%s\t%s\n", o.DisplayLabel, o.GroupByKey, formatParams(o.Params))
				}
				return w.Flush()
			})
		},
	}

	cmd.Flags().StringVarP(&axisName, "axis", "a", "x", "axis: x or y")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func newDefaultCmd() *cobra.Command {
	var axisName string

	cmd := &cobra.Command{
		Use:   "default <study> <view>",
		Short: "Show the default option of an axis",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseRequest(args[0], args[1], axisName)
			if err != nil {
				return err
			}

			return withResolver(func(r *resolve.Resolver) error {
				d, err := r.Default(context.Background(), req)
				if err != nil {
					return notFound(err, req.String())
				}
				return printJSON(cmd.OutOrStdout(), d)
			})
		},
	}

	cmd.Flags().StringVarP(&axisName, "axis", "a", "x", "axis: x or y")
	return cmd
}

func newReconcileCmd() *cobra.Command {
	var (
		axisName string
		groupBy  string
		params   string
	)

	cmd := &cobra.Command{
		Use:   "reconcile <study> <view>",
		Short: "Restore a persisted selection",
		Long: `Rebuild the displayable option of a persisted selection. Without --params
the selection is treated as stored without parameters.

Examples:
  axisgoat reconcile STUDY0001 LABS_BOXPLOT --group-by MEASUREMENT_TIME_POINT
  axisgoat reconcile STUDY0001 LABS_BOXPLOT --group-by MEASUREMENT_TIME_POINT \
    --params '{"timestampType":"WEEKS_SINCE_RANDOMISATION","binSize":7}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseRequest(args[0], args[1], axisName)
			if err != nil {
				return err
			}
			if groupBy == "" {
				return fmt.Errorf("--group-by is required")
			}

			sel := axis.SelectedOption{GroupByKey: groupBy}
			if params != "" {
				var p axis.Params
				if err := json.Unmarshal([]byte(params), &p); err != nil {
					return fmt.Errorf("invalid --params: %w", err)
				}
				sel.Params = &p
			}

			return withResolver(func(r *resolve.Resolver) error {
				opt, err := r.Reconcile(context.Background(), req, sel)
				if err != nil {
					return notFound(err, req.String())
				}
				return printJSON(cmd.OutOrStdout(), opt)
			})
		},
	}

	cmd.Flags().StringVarP(&axisName, "axis", "a", "x", "axis: x or y")
	cmd.Flags().StringVar(&groupBy, "group-by", "", "persisted group-by key")
	cmd.Flags().StringVar(&params, "params", "", "persisted params as JSON")
	return cmd
}

func formatParams(p axis.Params) string {
	if p.IsZero() {
		return "-"
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "?"
	}
	return string(data)
}
