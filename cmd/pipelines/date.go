package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amishk599/pipelines/internal/datefmt"
)

var dateCmd = &cobra.Command{
	Use:   "date",
	Short: "Convert between month input values and display dates",
}

var dateDisplayCmd = &cobra.Command{
	Use:     "display <YYYY-MM>",
	Short:   "Convert a month value to its display form, e.g. 2023-03 to March 2023",
	Args:    cobra.ExactArgs(1),
	Example: "  pipelines date display 2023-03",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := datefmt.ToDisplay(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

var dateISOCmd = &cobra.Command{
	Use:     "iso <Month YYYY>",
	Short:   "Convert a display date to its month value, e.g. March 2023 to 2023-03",
	Args:    cobra.RangeArgs(1, 2),
	Example: "  pipelines date iso March 2023\n  pipelines date iso \"March 2023\"",
	RunE: func(cmd *cobra.Command, args []string) error {
		display := args[0]
		if len(args) == 2 {
			display = args[0] + " " + args[1]
		}
		out, err := datefmt.ToISO(display)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	dateCmd.AddCommand(dateDisplayCmd, dateISOCmd)
	rootCmd.AddCommand(dateCmd)
}
