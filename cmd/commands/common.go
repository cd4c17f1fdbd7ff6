package commands

// Shared command plumbing
// Loads configuration, sets up logging and picks the dataset source

import (
	"bytes"
	"context"
	"fmt"

	"gdp-chart/internal/clients_api/gdp"
	"gdp-chart/internal/config"
	"gdp-chart/internal/dataset"
	"gdp-chart/internal/features/barchart"
	"gdp-chart/internal/infra/fs"
	logging "gdp-chart/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("url", gdp.DefaultURL, "Dataset URL (env: GDP_DATA_URL)")
	cmd.Flags().String("file", "", "Read the dataset from a local JSON file instead of the URL")
	cmd.Flags().Bool("offline", false, "Use the last saved dataset snapshot instead of the URL")
	cmd.Flags().Int("retries", 0, "Retries for failed requests (env: GDPCHART_SOURCE_MAX_RETRIES)")
	cmd.Flags().Int("timeout", 30, "Request timeout in seconds (env: GDPCHART_SOURCE_REQUEST_TIMEOUT)")
}

func addChartFlags(cmd *cobra.Command) {
	cmd.Flags().Int("width", 800, "Chart width in pixels")
	cmd.Flags().Int("height", 400, "Chart height in pixels")
	cmd.Flags().String("palette", "green", "Bar gradient: green, blue or red")
	cmd.Flags().Bool("animated", false, "Grow bars from zero height on load")
	cmd.Flags().Bool("color-switcher", false, "Add gradient swatches that recolor the bars")
	cmd.Flags().Bool("validate", false, "Reject unordered dates and negative values")
}

// setup loads the configuration for cmd and starts logging.
func setup(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logging.Setup(cfg.LogOptions()); err != nil {
		return nil, fmt.Errorf("failed to set up logging: %w", err)
	}
	logging.LogDebug("Configuration loaded",
		zap.String("command", cmd.Name()),
		zap.String("source", cfg.Source.URL),
		zap.String("palette", cfg.Chart.Palette))
	return cfg, nil
}

// source picks where the dataset comes from: --file, --offline or the URL.
func source(cfg *config.Config) barchart.Source {
	switch {
	case cfg.Source.File != "":
		return dataset.FileSource{Path: cfg.Source.File}
	case cfg.Source.Offline:
		return fs.SnapshotSource{Path: fs.SnapshotPath(cfg.Output.DataDir)}
	}

	client := gdp.NewClient(cfg.ClientConfig())
	if !cfg.Output.Snapshot {
		return client
	}
	return &snapshotWriter{src: client, path: fs.SnapshotPath(cfg.Output.DataDir)}
}

// snapshotWriter saves every successfully fetched series for later --offline runs.
type snapshotWriter struct {
	src  barchart.Source
	path string
}

func (s *snapshotWriter) Load(ctx context.Context) (dataset.Series, error) {
	series, err := s.src.Load(ctx)
	if err != nil {
		return series, err
	}
	if err := fs.SaveSeries(s.path, series); err != nil {
		logging.LogWarn("Failed to save dataset snapshot", zap.String("file", s.path), zap.Error(err))
	}
	return series, nil
}

// mountChart renders the chart into a fresh page.
func mountChart(ctx context.Context, cfg *config.Config) (*barchart.Page, *barchart.Handle, error) {
	page := barchart.NewPage("US GDP", barchart.MountID)
	h, err := barchart.Render(ctx, page, source(cfg), cfg.ChartOptions())
	if err != nil {
		logging.LogError("Failed to render chart", zap.Error(err))
		return nil, nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return page, h, nil
}

func encodePNG(h *barchart.Handle) ([]byte, error) {
	var buf bytes.Buffer
	if err := h.PNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
