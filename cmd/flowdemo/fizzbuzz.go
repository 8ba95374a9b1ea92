package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kbukum/syncflow/flow"
)

// FizzBuzz labels in routing order.
var fizzBuzzLabels = []string{"fb", "f", "b", "n"}

func classifyFizzBuzz(n uint64) []string {
	switch {
	case n%15 == 0:
		return []string{"fb"}
	case n%3 == 0:
		return []string{"f"}
	case n%5 == 0:
		return []string{"b"}
	default:
		return []string{"n"}
	}
}

// buildFizzBuzz segregates numbers into four sub-pipelines that print their
// word to out and count how many values they saw.
func buildFizzBuzz(out io.Writer, counts map[string]int, opts ...flow.Option) *flow.Flow[uint64] {
	f := flow.New[uint64](opts...)
	classes := flow.SegregateByLabel(f.Root(), classifyFizzBuzz, fizzBuzzLabels)

	words := map[string]string{"fb": "FizzBuzz", "f": "Fizz", "b": "Buzz"}
	for _, label := range fizzBuzzLabels {
		classes[label].Peep(func(uint64) { counts[label]++ })
	}
	for label, word := range words {
		classes[label].Peep(func(uint64) { fmt.Fprintln(out, word) })
	}
	classes["n"].Peep(func(n uint64) { fmt.Fprintln(out, strconv.FormatUint(n, 10)) })

	f.Freeze()
	return f
}

func newFizzBuzzCmd(a *app) *cobra.Command {
	var (
		maxValue uint64
		summary  bool
	)
	cmd := &cobra.Command{
		Use:   "fizzbuzz",
		Short: "Print FizzBuzz for 1..max using a four-way classifier",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if maxValue == 0 {
				maxValue = a.cfg.Demo.MaxValue
			}
			out := cmd.OutOrStdout()
			counts := make(map[string]int, len(fizzBuzzLabels))
			f := buildFizzBuzz(out, counts, a.flowOptions("fizzbuzz")...)

			if err := f.SendMany(cmd.Context(), flow.Range(1, maxValue)); err != nil {
				return err
			}
			if summary {
				for _, label := range fizzBuzzLabels {
					fmt.Fprintf(out, "%s=%d\n", label, counts[label])
				}
			}
			return nil
		},
	}
	cmd.Flags().Uint64Var(&maxValue, "max", 0, "Last number to send (default: demo.max_value)")
	cmd.Flags().BoolVar(&summary, "summary", false, "Print the number of values each class received")
	return cmd
}
