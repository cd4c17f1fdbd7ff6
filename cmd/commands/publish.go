package commands

// Command to render a PNG snapshot and send it to Telegram

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"gdp-chart/internal/features/publish"
	"gdp-chart/internal/infra/fs"
	"gdp-chart/internal/infra/log"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Send a chart snapshot to a Telegram chat",
	Long:  `Render the chart as PNG and send it to the configured Telegram chat (env: TELEGRAM_BOT_TOKEN, TELEGRAM_CHAT_ID).`,
	RunE:  runPublish,
}

func init() {
	addSourceFlags(publishCmd)
	addChartFlags(publishCmd)
	publishCmd.Flags().String("out", "public", "Directory for chart.png")
	publishCmd.Flags().String("chat-id", "", "Telegram chat id (env: TELEGRAM_CHAT_ID)")
	publishCmd.Flags().String("caption", "", "Caption title, defaults to the chart title")
}

func runPublish(cmd *cobra.Command, args []string) error {
	cfg, err := setup(cmd)
	if err != nil {
		return err
	}
	defer log.Sync()

	if err := cfg.RequireTelegram(); err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	_, h, err := mountChart(ctx, cfg)
	if err != nil {
		return err
	}
	defer h.Close()

	data, err := encodePNG(h)
	if err != nil {
		return err
	}
	path := filepath.Join(cfg.Output.Dir, "chart.png")
	if err := fs.WriteFile(path, data); err != nil {
		return err
	}

	tg := publish.Telegram{Token: cfg.Telegram.BotToken, ChatID: cfg.Telegram.ChatID}
	id, err := tg.SendChart(ctx, path, publish.Caption(h.Layout, cfg.Telegram.Caption))
	if err != nil {
		return err
	}

	log.LogSuccess("Chart published", zap.String("file", path), zap.Int("message_id", id))
	return nil
}
