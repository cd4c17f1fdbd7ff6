// Package summary prints a terminal report of a laid out chart.
package summary

import (
	"fmt"
	"io"
	"strconv"

	"gdp-chart/internal/features/barchart"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

type Options struct {
	Rows      int // bars shown from each end, 0 shows all
	UseColors bool
}

// Write prints the dataset header and a table of bars. With Rows set, only
// the first and last Rows bars are listed.
func Write(w io.Writer, l *barchart.Layout, opts Options) error {
	bold, dim := fmt.Sprint, fmt.Sprint
	if opts.UseColors {
		bold = color.New(color.FgGreen, color.Bold).SprintFunc()
		dim = color.New(color.FgHiBlack).SprintFunc()
	}

	name := l.Series.Name
	if name == "" {
		name = "GDP dataset"
	}
	fmt.Fprintln(w, bold(name))
	if l.Series.Description != "" {
		fmt.Fprintln(w, dim(l.Series.Description))
	}

	n := l.Series.Len()
	if n == 0 {
		fmt.Fprintln(w, "No data points")
		return nil
	}
	lo, hi := l.Series.Extent()
	fmt.Fprintf(w, "%s points, %s to %s, max %s Billion\n",
		bold(strconv.Itoa(n)),
		barchart.FormatMonthYear(lo), barchart.FormatMonthYear(hi),
		bold(barchart.FormatValue(l.Series.MaxValue())))

	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Date", "Value", "X", "Y", "Height"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, i := range visibleRows(n, opts.Rows) {
		if i < 0 {
			data = append(data, []string{"…", "", "", "", "", ""})
			continue
		}
		b := l.Bars[i]
		data = append(data, []string{
			strconv.Itoa(b.Index + 1),
			b.Point.Date.Format("2006-01-02"),
			barchart.FormatValue(b.Point.Value),
			strconv.Itoa(b.X),
			strconv.Itoa(b.Y),
			strconv.Itoa(b.Height),
		})
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintf(w, "Bar width %dpx, plot %dx%d, palette %s\n",
		widthOf(l), l.InnerWidth, l.InnerHeight, l.Fill().Name)
	return nil
}

// visibleRows returns bar indexes to print; -1 marks the elided middle.
func visibleRows(n, rows int) []int {
	if rows <= 0 || 2*rows >= n {
		out := make([]int, n)
		for i := range out {
			out[i] = i
		}
		return out
	}
	out := make([]int, 0, 2*rows+1)
	for i := 0; i < rows; i++ {
		out = append(out, i)
	}
	out = append(out, -1)
	for i := n - rows; i < n; i++ {
		out = append(out, i)
	}
	return out
}

func widthOf(l *barchart.Layout) int {
	if len(l.Bars) == 0 {
		return 0
	}
	return l.Bars[0].Width
}
