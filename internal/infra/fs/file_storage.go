package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gdp-chart/internal/dataset"
	logging "gdp-chart/internal/infra/log"

	"go.uber.org/zap"
)

const (
	DataDir      = "data_out"
	SnapshotFile = "gdp.json"
)

// SnapshotPath is where the last fetched dataset is kept under dir.
func SnapshotPath(dir string) string {
	if dir == "" {
		dir = DataDir
	}
	return filepath.Join(dir, SnapshotFile)
}

// WriteFile writes data next to path and renames it into place, so readers
// never see a partial file.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tempFilePath := path + ".tmp"
	if err := os.WriteFile(tempFilePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary file %s: %w", tempFilePath, err)
	}

	if err := os.Rename(tempFilePath, path); err != nil {
		_ = os.Remove(tempFilePath)
		return fmt.Errorf("failed to rename temporary file to %s: %w", path, err)
	}

	logging.LogDebug("File written", zap.String("file", path), logging.ByteSize("size", int64(len(data))))
	return nil
}

// SaveSeries stores the series in the same document shape it was fetched in.
func SaveSeries(path string, series dataset.Series) error {
	data, err := json.MarshalIndent(series, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal dataset snapshot: %w", err)
	}
	if err := WriteFile(path, data); err != nil {
		return err
	}

	logging.LogInfo("Saved dataset snapshot",
		zap.String("file", path),
		zap.Int("points", series.Len()))
	return nil
}

// LoadSeries reads a snapshot written by SaveSeries. A missing or empty file
// matches os.ErrNotExist.
func LoadSeries(path string) (dataset.Series, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return dataset.Series{}, fmt.Errorf("failed to read dataset snapshot: %w", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		logging.LogDebug("Dataset snapshot is empty", zap.String("file", path))
		return dataset.Series{}, fmt.Errorf("dataset snapshot %s is empty: %w", path, os.ErrNotExist)
	}

	series, err := dataset.Decode(bytes.NewReader(data))
	if err != nil {
		return dataset.Series{}, fmt.Errorf("failed to parse dataset snapshot: %w", err)
	}

	logging.LogDebug("Loaded dataset snapshot",
		zap.String("file", path),
		zap.Int("points", series.Len()))
	return series, nil
}

// HasSnapshot reports whether a non-empty snapshot exists at path.
func HasSnapshot(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Size() > 0
}

// SnapshotSource serves a saved snapshot as a chart data source.
type SnapshotSource struct {
	Path string
}

func (s SnapshotSource) Load(ctx context.Context) (dataset.Series, error) {
	if err := ctx.Err(); err != nil {
		return dataset.Series{}, err
	}
	series, err := LoadSeries(s.Path)
	if err != nil {
		return dataset.Series{}, &dataset.FetchError{Source: s.String(), Op: "load snapshot", Err: err}
	}
	return series, nil
}

func (s SnapshotSource) String() string { return "snapshot://" + s.Path }
