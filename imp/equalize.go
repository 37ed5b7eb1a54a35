package imp

import (
	"fmt"
	"image"
)

// DefaultQuality is the JPEG quality used when writing results.
const DefaultQuality = 75

// Stage identifies a step of an equalization pass.
type Stage int

// Equalization stages, in the order they are entered.
const (
	Idle Stage = iota
	ExtractingHistogram
	RenderingBefore
	BuildingMapping
	Remapping
	RenderingAfter
	Done
)

var stageNames = [...]string{
	Idle:                "idle",
	ExtractingHistogram: "extracting histogram",
	RenderingBefore:     "rendering before",
	BuildingMapping:     "building mapping",
	Remapping:           "remapping",
	RenderingAfter:      "rendering after",
	Done:                "done",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// Options control an equalization pass.
type Options struct {
	Workers     int  // <= 0 means one per CPU
	Quality     int  // JPEG quality of written files
	Diagnostics bool // Render before/after charts
	Chart       ChartOptions

	// OnStage, if set, is called every time a new stage is entered.
	OnStage func(Stage)
}

// DefaultOptions returns options with diagnostics enabled.
func DefaultOptions() Options {
	return Options{
		Quality:     DefaultQuality,
		Diagnostics: true,
		Chart:       DefaultChartOptions(),
	}
}

// Result is what remains of an equalization pass once the buffer has been
// remapped.
type Result struct {
	Before  Histogram
	After   Histogram
	Mapping MappingTable

	// Only set when diagnostics were requested.
	BeforeChart *image.NRGBA
	AfterChart  *image.NRGBA
}

// Equalize performs global histogram equalization of buf, in place.
// On error the buffer is either untouched or fully remapped.
func Equalize(buf *Buffer, opts Options) (*Result, error) {
	enter := func(s Stage) {
		if opts.OnStage != nil {
			opts.OnStage(s)
		}
	}

	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if buf.PixelCount() < 2 {
		return nil, fmt.Errorf("%w (got %dx%d)", ErrDegenerateImage, buf.Width, buf.Height)
	}

	res := &Result{}
	var err error

	enter(ExtractingHistogram)
	if res.Before, err = BuildHistogramParallel(buf, opts.Workers); err != nil {
		return nil, err
	}

	if opts.Diagnostics {
		enter(RenderingBefore)
		res.BeforeChart = RenderHistogram(res.Before, opts.Chart)
	}

	enter(BuildingMapping)
	if res.Mapping, err = BuildMapping(res.Before, buf.PixelCount()); err != nil {
		return nil, err
	}

	enter(Remapping)
	if err = ApplyMapping(buf, &res.Mapping, opts.Workers); err != nil {
		return nil, err
	}
	if res.After, err = BuildHistogramParallel(buf, opts.Workers); err != nil {
		return nil, err
	}

	if opts.Diagnostics {
		enter(RenderingAfter)
		res.AfterChart = RenderHistogram(res.After, opts.Chart)
	}

	enter(Done)
	return res, nil
}
