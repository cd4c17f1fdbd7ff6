package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gdp-chart/internal/dataset"
	"gdp-chart/internal/features/barchart"
	"gdp-chart/internal/infra/fs"
)

// go run etc/tools/test_chart.go [dataset.json]
// in etc/charts/gdp_chart.png and etc/charts/gdp_chart.svg
func main() {
	path := fs.SnapshotPath("")
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	fmt.Printf("Generating test chart from %s...\n", path)

	opts := barchart.DefaultOptions()
	opts.ColorSwitcher = true
	opts.Animated = true

	page := barchart.NewPage("US GDP", barchart.MountID)
	h, err := barchart.Render(context.Background(), page, dataset.FileSource{Path: path}, opts)
	if err != nil {
		fmt.Printf("Error generating chart: %v\n", err)
		os.Exit(1)
	}
	defer h.Close()

	var png bytes.Buffer
	if err := h.PNG(&png); err != nil {
		fmt.Printf("Error encoding chart: %v\n", err)
		os.Exit(1)
	}

	outDir := filepath.Join("etc", "charts")
	for name, data := range map[string][]byte{"gdp_chart.png": png.Bytes(), "gdp_chart.svg": h.SVG()} {
		if err := fs.WriteFile(filepath.Join(outDir, name), data); err != nil {
			fmt.Printf("Error writing %s: %v\n", name, err)
			os.Exit(1)
		}
	}

	fmt.Printf("Chart generated successfully: %s (%d bars)\n", outDir, len(h.Layout.Bars))
	fmt.Println("Open the files to see the result!")
}
