// Package main is the entry point for the partquote CLI.
package main

import (
	"os"

	"partquote/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
