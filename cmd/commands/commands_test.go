package commands

import (
	"bytes"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"gdp-chart/internal/config"
	"gdp-chart/internal/dataset"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const gdpDoc = `{"name":"Gross Domestic Product","data":[["1947-01-01",243.1],["1947-04-01",246.3]]}`

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRenderAndInspectOffline(t *testing.T) {
	t.Chdir(t.TempDir())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(gdpDoc))
	}))
	defer srv.Close()

	_, err := execute(t, "render", "--url", srv.URL, "--out", "site", "--svg", "--png", "--color-switcher")
	require.NoError(t, err)

	html, err := os.ReadFile(filepath.Join("site", "index.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), `<div id="chart"><svg`)
	assert.Contains(t, string(html), "data-gradient=")

	svg, err := os.ReadFile(filepath.Join("site", "chart.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<?xml")

	f, err := os.Open(filepath.Join("site", "chart.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())

	assert.FileExists(t, filepath.Join("data_out", "gdp.json"))

	out, err := execute(t, "inspect", "--offline", "--rows", "0")
	require.NoError(t, err)
	assert.Contains(t, out, "Gross Domestic Product")
	assert.Contains(t, out, "1947-04-01")
	assert.Contains(t, out, "246.3")
}

func TestRenderFetchFailure(t *testing.T) {
	t.Chdir(t.TempDir())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := execute(t, "render", "--url", srv.URL, "--out", "failed")
	require.Error(t, err)
	assert.ErrorIs(t, err, dataset.ErrFetch)
	assert.NoFileExists(t, filepath.Join("failed", "index.html"))
}

func TestPublishRequiresTelegram(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("GDPCHART_TELEGRAM_BOT_TOKEN", "")
	require.NoError(t, os.WriteFile("gdp.json", []byte(gdpDoc), 0644))

	_, err := execute(t, "publish", "--file", "gdp.json")
	assert.ErrorIs(t, err, config.ErrInvalid)
}

func TestServeHandler(t *testing.T) {
	chart := renderedChart{html: []byte("<!DOCTYPE html>"), svg: []byte("<svg/>"), png: []byte("\x89PNG")}
	h := chart.handler()

	cases := []struct {
		path, contentType, body string
	}{
		{"/", "text/html; charset=utf-8", "<!DOCTYPE html>"},
		{"/chart.svg", "image/svg+xml", "<svg/>"},
		{"/chart.png", "image/png", "\x89PNG"},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, tc.path)
		assert.Equal(t, tc.contentType, rec.Header().Get("Content-Type"), tc.path)
		assert.Equal(t, tc.body, rec.Body.String(), tc.path)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
