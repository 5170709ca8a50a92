// Package main is the entry point for the loancalc CLI.
package main

import (
	"os"

	"github.com/warp/loan-engine/cmd/loancalc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
