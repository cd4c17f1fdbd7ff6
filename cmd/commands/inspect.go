package commands

// Command to print the dataset and bar geometry as a table

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"gdp-chart/internal/features/barchart"
	"gdp-chart/internal/features/summary"
	"gdp-chart/internal/infra/log"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Print the dataset and computed bar geometry",
	RunE:  runInspect,
}

func init() {
	addSourceFlags(inspectCmd)
	addChartFlags(inspectCmd)
	inspectCmd.Flags().Int("rows", 5, "Bars shown from each end of the series, 0 for all")
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	rows, err := cmd.Flags().GetInt("rows")
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	series, err := source(cfg).Load(ctx)
	if err != nil {
		log.LogError("Failed to load dataset", zap.Error(err))
		return err
	}
	if cfg.Chart.Validate {
		if err := series.Validate(); err != nil {
			return err
		}
	}

	layout, err := barchart.NewLayout(series, cfg.ChartOptions())
	if err != nil {
		return err
	}
	return summary.Write(cmd.OutOrStdout(), layout, summary.Options{Rows: rows, UseColors: !color.NoColor})
}
