package main

import (
	"fmt"
	"io"

	"github.com/kbukum/syncflow/blueprint"
)

// builtinRegistry returns the integer capabilities blueprints can name.
// Observers write to out.
func builtinRegistry(out io.Writer) *blueprint.Registry[int] {
	reg := blueprint.NewRegistry[int]()

	reg.RegisterFilter("even", func(v int) bool { return v%2 == 0 })
	reg.RegisterFilter("odd", func(v int) bool { return v%2 != 0 })
	reg.RegisterFilter("positive", func(v int) bool { return v > 0 })

	reg.RegisterMap("double", func(v int) int { return v * 2 })
	reg.RegisterMap("square", func(v int) int { return v * v })
	reg.RegisterMap("negate", func(v int) int { return -v })
	reg.RegisterMap("inc", func(v int) int { return v + 1 })

	reg.RegisterTransform("halve-even", func(v int) (int, bool) {
		if v%2 != 0 {
			return 0, false
		}
		return v / 2, true
	})

	reg.RegisterClassifier("parity", func(v int) []string {
		if v%2 == 0 {
			return []string{"even"}
		}
		return []string{"odd"}
	})
	reg.RegisterClassifier("sign", func(v int) []string {
		switch {
		case v < 0:
			return []string{"negative"}
		case v > 0:
			return []string{"positive"}
		default:
			return []string{"zero"}
		}
	})
	reg.RegisterClassifier("fizzbuzz", func(v int) []string {
		if v < 0 {
			v = -v
		}
		return classifyFizzBuzz(uint64(v))
	})
	// Every divisor of v in 2..5, so a value may take several routes.
	reg.RegisterClassifier("divisors", func(v int) []string {
		var labels []string
		for d := 2; d <= 5; d++ {
			if v%d == 0 {
				labels = append(labels, fmt.Sprint(d))
			}
		}
		return labels
	})

	reg.RegisterObserver("print", func(v int) { fmt.Fprintln(out, v) })
	for _, word := range []string{"fizz", "buzz", "fizzbuzz"} {
		reg.RegisterObserver("print-"+word, func(int) { fmt.Fprintln(out, word) })
	}
	return reg
}
