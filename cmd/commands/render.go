package commands

// Command to render the chart page to disk
// Writes index.html and optionally chart.svg and chart.png into the output directory

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"gdp-chart/internal/infra/fs"
	"gdp-chart/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Fetch the dataset and write the chart page",
	Long:  `Fetch the GDP dataset once and write index.html with the chart mounted under #chart. Use --svg and --png for standalone files.`,
	RunE:  runRender,
}

func init() {
	addSourceFlags(renderCmd)
	addChartFlags(renderCmd)
	renderCmd.Flags().String("out", "public", "Output directory")
	renderCmd.Flags().Bool("svg", false, "Also write chart.svg")
	renderCmd.Flags().Bool("png", false, "Also write chart.png")
	renderCmd.Flags().Bool("snapshot", true, "Save the fetched dataset for --offline runs")
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	start := time.Now()
	page, h, err := mountChart(ctx, cfg)
	if err != nil {
		return err
	}
	defer h.Close()

	html, err := page.Bytes()
	if err != nil {
		return err
	}
	written := []string{filepath.Join(cfg.Output.Dir, "index.html")}
	if err := fs.WriteFile(written[0], html); err != nil {
		return err
	}

	if cfg.Output.SVG {
		path := filepath.Join(cfg.Output.Dir, "chart.svg")
		if err := fs.WriteFile(path, h.SVG()); err != nil {
			return err
		}
		written = append(written, path)
	}

	if cfg.Output.PNG {
		data, err := encodePNG(h)
		if err != nil {
			return err
		}
		path := filepath.Join(cfg.Output.Dir, "chart.png")
		if err := fs.WriteFile(path, data); err != nil {
			return err
		}
		written = append(written, path)
	}

	log.LogSuccess("Chart rendered",
		zap.Int("bars", len(h.Layout.Bars)),
		zap.Strings("files", written),
		zap.Duration("took", time.Since(start)))
	return nil
}
