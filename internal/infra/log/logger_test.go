package log

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestSetupWritesFileLog(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Setup(Options{Dir: dir, Level: "debug"}))
	t.Cleanup(func() { require.NoError(t, Setup(Options{})) })

	LogInfo("Chart mounted", zap.Int("bars", 2))
	LogDebug("Configuration loaded")
	LogSuccess("Chart rendered", zap.Int64("duration_ms", 12))
	LogError("Failed to render chart", zap.String("reason", "boom"))
	Sync()

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 4)

	assert.Contains(t, lines[0], "     INFO Chart mounted\t{\"bars\":2}")
	assert.Contains(t, lines[1], "DEBUG Configuration loaded")
	assert.NotContains(t, lines[1], "\t")
	assert.Contains(t, lines[2], `"duration_ms":12`)
	assert.Contains(t, lines[3], "ERROR Failed to render chart")
}

func TestSetupLevelFilters(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Setup(Options{Dir: dir, Level: "warn"}))
	t.Cleanup(func() { require.NoError(t, Setup(Options{})) })

	LogInfo("hidden")
	LogWarn("shown")
	Sync()

	data, err := os.ReadFile(filepath.Join(dir, "app.log"))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
	assert.Contains(t, string(data), "WARN shown")
}

func TestSetupRejectsUnknownLevel(t *testing.T) {
	assert.Error(t, Setup(Options{Level: "loud"}))
}

func TestHelpers(t *testing.T) {
	id := GenerateRequestID()
	assert.Len(t, id, 16)
	assert.NotEqual(t, id, GenerateRequestID())

	assert.Equal(t, "1.5 kB", ByteSize("size", 1500).String)
	assert.Equal(t, "0 B", ByteSize("size", -1).String)

	assert.Equal(t, int64(40), durationField([]zap.Field{zap.String("a", "b"), zap.Int64("duration_ms", 40)}))
	assert.Equal(t, "https://example.com", endpointField([]zap.Field{zap.String("endpoint", "https://example.com")}))
}

func TestLoggersAreSilentBeforeSetup(t *testing.T) {
	require.NoError(t, Setup(Options{}))
	assert.NotPanics(t, func() {
		LogSuccess("nothing")
		LogRequest(GenerateRequestID(), "GET", "https://example.com")
		LogResponse("id", 503, 10, zap.String("endpoint", "https://example.com"))
	})
}
