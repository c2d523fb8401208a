package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/trialviz/axisgoat/internal/axis"
	"github.com/trialviz/axisgoat/internal/resolve"
)

func init() {
	rootCmd.AddCommand(newPickCmd())
}

func newPickCmd() *cobra.Command {
	var axisName string

	cmd := &cobra.Command{
		Use:   "pick <study> <view>",
		Short: "Pick an axis option interactively",
		Long: `Show the axis selector of a view with the default pre-selected and print
the request setting for the chosen option.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := parseRequest(args[0], args[1], axisName)
			if err != nil {
				return err
			}

			return withResolver(func(r *resolve.Resolver) error {
				ctx := context.Background()
				opts, err := r.Options(ctx, req)
				if err != nil {
					return notFound(err, req.String())
				}
				if len(opts) == 0 {
					return fmt.Errorf("%s has no options", req)
				}
				d, err := r.Default(ctx, req)
				if err != nil {
					return err
				}

				opt, err := promptOption(opts, d)
				if err != nil {
					return err
				}

				setting, ok := opt.Setting()
				if !ok {
					fmt.Fprintln(cmd.OutOrStdout(), "NONE selected, no axis setting is sent")
					return nil
				}
				return printJSON(cmd.OutOrStdout(), setting)
			})
		},
	}

	cmd.Flags().StringVarP(&axisName, "axis", "a", "x", "axis: x or y")
	return cmd
}

func promptOption(opts []axis.DisplayableOption, d resolve.Default) (axis.DisplayableOption, error) {
	items := make([]string, len(opts))
	for i, o := range opts {
		items[i] = o.DisplayLabel
	}

	prompt := promptui.Select{
		Label:     fmt.Sprintf("%s %s axis", d.View, d.Axis),
		Items:     items,
		Size:      10,
		CursorPos: defaultIndex(opts, d),
	}

	idx, _, err := prompt.Run()
	if err != nil {
		if err == promptui.ErrInterrupt {
			os.Exit(0)
		}
		return axis.DisplayableOption{}, err
	}
	return opts[idx], nil
}

// defaultIndex locates the default among opts, falling back to the first
// entry when the default was synthesised. Trellised options are listed per
// measurement, so a trellis default matches on its measurement.
func defaultIndex(opts []axis.DisplayableOption, d resolve.Default) int {
	for i, o := range opts {
		switch {
		case d.Option == nil:
			if o.GroupByKey == d.Value {
				return i
			}
		case d.Option.Params.Trellising != nil:
			if o.GroupByKey == d.Option.Params.Trellising.Measurement {
				return i
			}
		case o.DisplayLabel == d.Option.DisplayLabel && o.GroupByKey == d.Option.GroupByKey:
			return i
		}
	}
	return 0
}
