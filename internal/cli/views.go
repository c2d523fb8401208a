package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/trialviz/axisgoat/internal/axis"
)

var viewsCmd = &cobra.Command{
	Use:   "views",
	Short: "List views and their default rules",
	Long: `List every supported view with its X preferences for ongoing and completed
studies and its Y preferences.`,
	Args: cobra.NoArgs,
	RunE: runViews,
}

func init() {
	rootCmd.AddCommand(viewsCmd)
}

func runViews(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VIEW\tKIND\tX (ONGOING)\tX (COMPLETED)\tY")

	for _, v := range axis.AllViews() {
		p := axis.PolicyFor(v)
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			v,
			viewKind(p),
			strings.Join(p.XPreferences(true), ","),
			strings.Join(p.XPreferences(false), ","),
			strings.Join(p.Y, ","),
		)
	}
	return w.Flush()
}

func viewKind(p axis.Policy) string {
	switch {
	case p.Legacy:
		return "legacy"
	case p.Trellised():
		return "trellis"
	case p.NoneOption:
		return "none"
	default:
		return "rules"
	}
}
