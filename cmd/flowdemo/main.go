// flowdemo runs value streams through flow trees.
//
// Usage:
//
//	flowdemo fizzbuzz [--max=100] [--summary]
//	flowdemo filter [--threshold=300] [--to=499]
//	flowdemo run (--file=<path> | <name> [--dir=<dir>...]) [--from=1] [--to=20]
//	flowdemo describe (--file=<path> | <name> [--dir=<dir>...]) [--yaml]
//	flowdemo version
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
