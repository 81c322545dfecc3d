// Package main is the entry point for the apigen CLI.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/apigenlab/apigen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if errors.Is(err, cli.ErrUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
