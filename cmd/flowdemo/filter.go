package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/syncflow/flow"
)

func newFilterCmd(a *app) *cobra.Command {
	var threshold, to uint64
	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Send a few single values and a range through a threshold filter",
		Long: "Streams 1, 99 and 1..5, followed by the range 1..to, through a filter\n" +
			"that only lets values above the threshold reach the printer.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("threshold") {
				threshold = a.cfg.Demo.Threshold
			}
			out := cmd.OutOrStdout()

			f := flow.New[uint64](a.flowOptions("range-filter")...)
			f.Filter(func(n uint64) bool { return n > threshold }).
				Peep(func(n uint64) { fmt.Fprintln(out, n) })
			f.Freeze()

			src := flow.Concat(
				flow.FromSlice([]uint64{1, 99, 1, 2, 3, 4, 5}),
				flow.FromSeq(flow.Range(1, to)),
			)
			return f.Drain(cmd.Context(), src)
		},
	}
	cmd.Flags().Uint64Var(&threshold, "threshold", 0, "Values must exceed this to pass (default: demo.threshold)")
	cmd.Flags().Uint64Var(&to, "to", 499, "Last value of the streamed range")
	return cmd
}
