package imp

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"strings"

	"github.com/disintegration/imaging"
)

// ChartScaling selects how bar heights are normalized.
type ChartScaling int

const (
	// ScaleToMax makes the tallest bin span the whole drawable height.
	ScaleToMax ChartScaling = iota
	// ScaleFixed divides every bin by ChartOptions.FixedDivisor. Bars for
	// large images may run off the top of the chart and get clipped.
	ScaleFixed
)

// ParseChartScaling parses "max" or "fixed".
func ParseChartScaling(s string) (ChartScaling, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "max", "":
		return ScaleToMax, nil
	case "fixed":
		return ScaleFixed, nil
	}
	return ScaleToMax, fmt.Errorf("unknown chart scaling %q (want max or fixed)", s)
}

func (s ChartScaling) String() string {
	if s == ScaleFixed {
		return "fixed"
	}
	return "max"
}

// ChartOptions describes the histogram bar chart.
type ChartOptions struct {
	Width        int
	Height       int
	Margin       int // Space kept free above the tallest bar
	Scaling      ChartScaling
	FixedDivisor float64
}

// DefaultChartOptions returns an 800x400 chart scaled to its tallest bin.
func DefaultChartOptions() ChartOptions {
	return ChartOptions{
		Width:        800,
		Height:       400,
		Margin:       20,
		Scaling:      ScaleToMax,
		FixedDivisor: 1000,
	}
}

// RenderHistogram draws h as black bars on a white background. Each bin
// gets Width/256 columns, so the right edge of the chart stays blank when
// Width isn't a multiple of 256.
func RenderHistogram(h Histogram, opts ChartOptions) *image.NRGBA {
	dst := imaging.New(opts.Width, opts.Height, color.White)
	bounds := dst.Bounds()

	barWidth := opts.Width / Levels
	maxHeight := float64(opts.Height - opts.Margin)

	var scale float64
	switch opts.Scaling {
	case ScaleFixed:
		scale = opts.FixedDivisor
	default:
		scale = float64(h.Max())
	}
	if scale <= 0 || barWidth <= 0 {
		return dst
	}

	black := image.NewUniform(color.Black)
	for i, v := range h {
		barHeight := int(float64(v) / scale * maxHeight)
		if barHeight <= 0 {
			continue
		}
		bar := image.Rect(i*barWidth, opts.Height-barHeight, (i+1)*barWidth, opts.Height)
		draw.Draw(dst, bar.Intersect(bounds), black, image.Point{}, draw.Src)
	}
	return dst
}
