package view

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jrsteele09/bbdap-client/dashboard"
)

// DefaultChartHeight is the number of rows used for the plot area
const DefaultChartHeight = 10

const (
	pointRune = '*'
	lineRune  = '|'
)

// RenderLineChart draws points as a text line chart, one column per point, in the order given.
// The y axis runs from min(0, lowest) to the highest value; vertical gaps between neighbouring
// points are joined so the series reads as a line.
func RenderLineChart(w io.Writer, points []dashboard.ChartPoint, height int) error {
	if len(points) == 0 {
		_, err := fmt.Fprintln(w, "(no sales data)")
		return err
	}
	if height < 2 {
		height = 2
	}

	lo, hi := math.Min(0, points[0].Y), points[0].Y
	for _, p := range points {
		lo = math.Min(lo, p.Y)
		hi = math.Max(hi, p.Y)
	}
	// Halved so hi-lo cannot overflow for values near the float64 limits
	halfSpan := hi/2 - lo/2
	if halfSpan == 0 {
		halfSpan = 1
	}

	rowOf := func(v float64) int {
		f := math.Round((v/2 - lo/2) / halfSpan * float64(height-1))
		if math.IsNaN(f) || f < 0 {
			return 0
		}
		return min(int(f), height-1)
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", len(points)))
	}
	for x, p := range points {
		row := rowOf(p.Y)
		if x > 0 {
			prev := rowOf(points[x-1].Y)
			for r := min(prev, row) + 1; r < max(prev, row); r++ {
				grid[r][x] = lineRune
			}
		}
		grid[row][x] = pointRune
	}

	labelWidth := len(formatNumber(hi))
	if l := len(formatNumber(lo)); l > labelWidth {
		labelWidth = l
	}

	for r := height - 1; r >= 0; r-- {
		label := ""
		switch r {
		case height - 1:
			label = formatNumber(hi)
		case 0:
			label = formatNumber(lo)
		}
		if _, err := fmt.Fprintf(w, "%*s |%s\n", labelWidth, label, strings.TrimRight(string(grid[r]), " ")); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "%*s +%s\n", labelWidth, "", strings.Repeat("-", len(points))); err != nil {
		return err
	}
	first, last := points[0].X, points[len(points)-1].X
	footer := first
	if len(points) > 1 {
		footer = fmt.Sprintf("%s .. %s", first, last)
	}
	_, err := fmt.Fprintf(w, "%*s  %s\n", labelWidth, "", footer)
	return err
}

// formatNumber prints whole numbers without decimals and everything else with two
func formatNumber(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.2f", v)
}
