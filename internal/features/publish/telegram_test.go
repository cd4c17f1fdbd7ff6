package publish

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gdp-chart/internal/dataset"
	"gdp-chart/internal/features/barchart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLayout(t *testing.T) *barchart.Layout {
	t.Helper()
	s := dataset.Series{Points: []dataset.DataPoint{
		{Date: time.Date(1947, time.January, 1, 0, 0, 0, 0, time.UTC), Value: 243.1},
		{Date: time.Date(1947, time.April, 1, 0, 0, 0, 0, time.UTC), Value: 246.3},
	}}
	l, err := barchart.NewLayout(s, barchart.DefaultOptions())
	require.NoError(t, err)
	return l
}

func TestSendChartRequiresConfig(t *testing.T) {
	cases := map[string]Telegram{
		"no token":    {ChatID: "42"},
		"no chat":     {Token: "123:abc"},
		"bad chat id": {Token: "123:abc", ChatID: "@channel"},
	}
	for name, tg := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := tg.SendChart(context.Background(), "chart.png", "")
			assert.ErrorIs(t, err, ErrNotConfigured)
		})
	}
}

func TestSendChartCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Telegram{Token: "123:abc", ChatID: "42"}.SendChart(ctx, "chart.png", "")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSendChart(t *testing.T) {
	pngPath := filepath.Join(t.TempDir(), "chart.png")
	var buf bytes.Buffer
	require.NoError(t, barchart.EncodePNG(sampleLayout(t), &buf))
	require.NoError(t, os.WriteFile(pngPath, buf.Bytes(), 0644))

	var sent struct {
		chatID  string
		caption string
		mode    string
		size    int
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch {
		case strings.HasSuffix(r.URL.Path, "/getMe"):
			io.WriteString(w, `{"ok":true,"result":{"id":1,"is_bot":true,"first_name":"GDP","username":"gdp_chart_bot"}}`)
		case strings.HasSuffix(r.URL.Path, "/sendPhoto"):
			assert.NoError(t, r.ParseMultipartForm(10<<20))
			sent.chatID = r.FormValue("chat_id")
			sent.caption = r.FormValue("caption")
			sent.mode = r.FormValue("parse_mode")
			if f, _, err := r.FormFile("photo"); err == nil {
				data, _ := io.ReadAll(f)
				sent.size = len(data)
			}
			io.WriteString(w, `{"ok":true,"result":{"message_id":7,"date":0,"chat":{"id":42,"type":"private"}}}`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	tg := Telegram{Token: "123:abc", ChatID: "42", APIEndpoint: srv.URL + "/bot%s/%s"}
	id, err := tg.SendChart(context.Background(), pngPath, "<b>GDP</b>")
	require.NoError(t, err)

	assert.Equal(t, 7, id)
	assert.Equal(t, "42", sent.chatID)
	assert.Equal(t, "<b>GDP</b>", sent.caption)
	assert.Equal(t, "HTML", sent.mode)
	assert.Equal(t, buf.Len(), sent.size)
}

func TestCaption(t *testing.T) {
	l := sampleLayout(t)

	c := Caption(l, "")
	assert.True(t, strings.HasPrefix(c, "<b>Gross Domestic Product, USA (1947 - 1947)</b>"))
	assert.Contains(t, c, "Latest: 246.3 Billion (April 1947)")
	assert.Contains(t, c, "Peak: 246.3 Billion")
	assert.Contains(t, c, "<i>2 data points</i>")

	assert.Equal(t, "<b>GDP &amp; friends</b>", Caption(&barchart.Layout{Title: "x"}, "GDP & friends"))
}
