package publish

// Telegram delivery of chart snapshots
// The PNG is uploaded from disk as a photo with an HTML caption

import (
	"context"
	"errors"
	"fmt"
	"html"
	"strconv"
	"strings"

	"gdp-chart/internal/features/barchart"
	"gdp-chart/internal/infra/log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

var ErrNotConfigured = errors.New("telegram publisher is not configured")

type Telegram struct {
	Token  string
	ChatID string
	// APIEndpoint overrides tgbotapi.APIEndpoint, a format string taking the token and method.
	APIEndpoint string
}

func (t Telegram) chatID() (int64, error) {
	if t.Token == "" {
		return 0, fmt.Errorf("%w: missing bot token", ErrNotConfigured)
	}
	if t.ChatID == "" {
		return 0, fmt.Errorf("%w: missing chat id", ErrNotConfigured)
	}
	id, err := strconv.ParseInt(strings.TrimSpace(t.ChatID), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: chat id %q is not numeric", ErrNotConfigured, t.ChatID)
	}
	return id, nil
}

// SendChart uploads the PNG at pngPath and returns the sent message id.
func (t Telegram) SendChart(ctx context.Context, pngPath, caption string) (int, error) {
	chatID, err := t.chatID()
	if err != nil {
		return 0, err
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	endpoint := t.APIEndpoint
	if endpoint == "" {
		endpoint = tgbotapi.APIEndpoint
	}
	bot, err := tgbotapi.NewBotAPIWithAPIEndpoint(t.Token, endpoint)
	if err != nil {
		return 0, fmt.Errorf("failed to initialize telegram bot: %w", err)
	}
	log.LogInfo("Telegram bot authorized", zap.String("username", bot.Self.UserName))

	photo := tgbotapi.NewPhoto(chatID, tgbotapi.FilePath(pngPath))
	photo.Caption = caption
	photo.ParseMode = tgbotapi.ModeHTML

	msg, err := bot.Send(photo)
	if err != nil {
		log.LogError("Failed to send chart", zap.String("chatID", t.ChatID), zap.Error(err))
		return 0, fmt.Errorf("failed to send chart: %w", err)
	}

	log.LogSuccess("Chart sent to Telegram",
		zap.String("chatID", t.ChatID),
		zap.Int("message_id", msg.MessageID))
	return msg.MessageID, nil
}

// Caption describes the chart in Telegram HTML. A non-empty title replaces the layout title.
func Caption(l *barchart.Layout, title string) string {
	if title == "" {
		title = l.Title
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "<b>%s</b>", html.EscapeString(title))

	n := l.Series.Len()
	if n == 0 {
		return sb.String()
	}
	last := l.Series.Points[n-1]
	fmt.Fprintf(&sb, "\nLatest: %s Billion (%s)", barchart.FormatValue(last.Value), barchart.FormatMonthYear(last.Date))
	fmt.Fprintf(&sb, "\nPeak: %s Billion", barchart.FormatValue(l.Series.MaxValue()))
	fmt.Fprintf(&sb, "\n<i>%d data points</i>", n)
	return sb.String()
}
