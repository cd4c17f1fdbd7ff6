package commands

// Root command for Cobra CLI
// Registers render, serve, inspect and publish

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "gdpchart",
	Short: "GDP Chart - renders US GDP over time as an SVG bar chart",
	Long: `GDP Chart fetches the quarterly US GDP dataset and renders it as a bar chart
page with axes, hover tooltips, an optional color switcher and an optional entrance animation.`,
	Version:       "1.0.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default ./config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error (env: LOG_LEVEL)")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(publishCmd)
}
