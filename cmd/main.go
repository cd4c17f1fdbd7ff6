package main

// Main entry point of the application
// Executes the Cobra command tree and reports the first error

import (
	"fmt"
	"os"

	"gdp-chart/cmd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
