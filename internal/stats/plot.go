package stats

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// Series represents a named data series for plotting.
type Series struct {
	Name   string
	Values []float64
}

const (
	defaultPlotHeight = 10
	minPlotWidth      = 10
	fallbackWidth     = 80
	axisLabelTop      = "max"
	axisLabelBottom   = "min"
	axisSeparator     = " │ "
	scaleNote         = "Scaled per series; see min/max below."
	colorReset        = "\x1b[0m"
)

var seriesColors = []string{"\x1b[36m", "\x1b[35m", "\x1b[33m", "\x1b[32m"}

// canvas is a grid of braille cells, each holding 2×4 dots.
type canvas struct {
	width, height int
	cells         [][]uint8
}

func newCanvas(width, height int) *canvas {
	cells := make([][]uint8, height)
	for y := range cells {
		cells[y] = make([]uint8, width)
	}
	return &canvas{width: width, height: height, cells: cells}
}

var dotBits = [2][4]uint8{{0x01, 0x02, 0x04, 0x40}, {0x08, 0x10, 0x20, 0x80}}

func (c *canvas) set(x, y int) {
	cx, cy := x/2, y/4
	if x < 0 || y < 0 || cy >= c.height || cx >= c.width {
		return
	}
	c.cells[cy][cx] |= dotBits[x%2][y%4]
}

// line draws between two dot coordinates with Bresenham's algorithm.
func (c *canvas) line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	e := dx + dy
	for {
		c.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// PlotSeries renders a multi-line braille plot for the provided series.
func PlotSeries(w io.Writer, title string, series []Series, width, height int) error {
	return PlotSeriesWithColor(w, title, series, width, height, false)
}

// PlotSeriesWithColor renders a braille plot, colouring each series when
// forced or when w is a terminal.
func PlotSeriesWithColor(w io.Writer, title string, series []Series, width, height int, forceColor bool) error {
	var plotted []Series
	for _, s := range series {
		if len(s.Values) > 0 {
			plotted = append(plotted, s)
		}
	}
	if len(plotted) == 0 {
		return nil
	}
	if height <= 0 {
		height = defaultPlotHeight
	}
	if width <= 0 {
		width = PlotWidthFor(terminalWidth())
	}
	width = max(width, minPlotWidth)

	layers := make([]*canvas, len(plotted))
	lows := make([]float64, len(plotted))
	highs := make([]float64, len(plotted))
	dotsY := height * 4
	for i, s := range plotted {
		values := resample(s.Values, width)
		lo, hi := bounds(values)
		lows[i], highs[i] = lo, hi
		layer := newCanvas(width, height)
		prevX, prevY := -1, -1
		for x, v := range values {
			y := int(math.Round((1 - (v-lo)/(hi-lo)) * float64(dotsY-1)))
			y = max(0, min(y, dotsY-1))
			if prevX < 0 {
				layer.set(x*2, y)
			} else {
				layer.line(prevX, prevY, x*2, y)
			}
			prevX, prevY = x*2, y
		}
		layers[i] = layer
	}

	colored := shouldUseColor(w, forceColor)
	var b strings.Builder
	if title != "" {
		b.WriteString(title + "\n")
	}
	b.WriteString(scaleNote + "\n")
	for i, s := range plotted {
		fmt.Fprintf(&b, "%s: min=%.2f max=%.2f\n", s.Name, lows[i], highs[i])
	}
	for y := 0; y < height; y++ {
		label := ""
		switch y {
		case 0:
			label = axisLabelTop
		case height - 1:
			label = axisLabelBottom
		}
		fmt.Fprintf(&b, "%*s%s", len(axisLabelTop), label, axisSeparator)
		for x := 0; x < width; x++ {
			var mask uint8
			owner := -1
			for i, layer := range layers {
				if m := layer.cells[y][x]; m != 0 {
					mask |= m
					if owner < 0 {
						owner = i
					}
				}
			}
			ch := rune(0x2800 + int(mask))
			if colored && owner >= 0 {
				b.WriteString(seriesColors[owner%len(seriesColors)] + string(ch) + colorReset)
				continue
			}
			b.WriteRune(ch)
		}
		b.WriteByte('\n')
	}
	legend := make([]string, len(plotted))
	for i, s := range plotted {
		legend[i] = "⠉ " + s.Name
		if colored {
			legend[i] = seriesColors[i%len(seriesColors)] + legend[i] + colorReset
		}
	}
	b.WriteString("Legend: " + strings.Join(legend, "  ") + "\n\n")
	_, err := io.WriteString(w, b.String())
	return err
}

// PlotWidthFor computes a plot width that fits within the total available width.
func PlotWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minPlotWidth
	}
	axis := runewidth.StringWidth(axisLabelTop) + runewidth.StringWidth(axisSeparator)
	return max(totalWidth-axis, minPlotWidth)
}

// resample averages down or interpolates up to exactly width points.
func resample(values []float64, width int) []float64 {
	out := make([]float64, width)
	n := len(values)
	switch {
	case n == width:
		copy(out, values)
	case n == 1 || width == 1:
		for i := range out {
			out[i] = values[0]
		}
	case n > width:
		for i := range out {
			start := i * n / width
			end := max((i+1)*n/width, start+1)
			var sum float64
			for _, v := range values[start:end] {
				sum += v
			}
			out[i] = sum / float64(end-start)
		}
	default:
		for i := range out {
			pos := float64(i) * float64(n-1) / float64(width-1)
			idx := int(pos)
			if idx >= n-1 {
				out[i] = values[n-1]
				continue
			}
			frac := pos - float64(idx)
			out[i] = values[idx]*(1-frac) + values[idx+1]*frac
		}
	}
	return out
}

func bounds(values []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi-lo < 1e-9 {
		lo--
		hi++
	}
	return lo, hi
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return fallbackWidth
	}
	return width
}

// TerminalWidth reports the width of stdout, or a fallback when it is not a terminal.
func TerminalWidth() int {
	return terminalWidth()
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	return ok && term.IsTerminal(int(file.Fd()))
}
