package commands

// Command to serve the chart over HTTP
// Renders once at startup and serves the same bytes until shutdown

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gdp-chart/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the chart page over HTTP",
	Long:  `Render the chart once and serve it at /, with the standalone chart at /chart.svg and a snapshot at /chart.png.`,
	RunE:  runServe,
}

func init() {
	addSourceFlags(serveCmd)
	addChartFlags(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Listen address (env: ADDR)")
}

type renderedChart struct {
	html []byte
	svg  []byte
	png  []byte
}

func (c renderedChart) handler() http.Handler {
	mux := http.NewServeMux()
	serve := func(contentType string, body []byte) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", contentType)
			w.Header().Set("Cache-Control", "no-cache")
			if r.Method == http.MethodHead {
				return
			}
			w.Write(body)
		}
	}
	mux.Handle("GET /{$}", serve("text/html; charset=utf-8", c.html))
	mux.Handle("GET /chart.svg", serve("image/svg+xml", c.svg))
	mux.Handle("GET /chart.png", serve("image/png", c.png))
	return mux
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	page, h, err := mountChart(ctx, cfg)
	if err != nil {
		return err
	}
	defer h.Close()

	var chart renderedChart
	if chart.html, err = page.Bytes(); err != nil {
		return err
	}
	chart.svg = h.SVG()
	if chart.png, err = encodePNG(h); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.App.Addr,
		Handler:           chart.handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	log.LogSuccess("Chart server is running", zap.String("addr", cfg.App.Addr))

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			log.LogError("Chart server failed", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	log.LogInfo("Shutdown signal received, gracefully stopping...")
	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.LogWarn("Timeout waiting for server to stop", zap.Error(err))
		return err
	}
	log.LogSuccess("Chart server stopped gracefully")
	return nil
}
