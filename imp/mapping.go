package imp

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDegenerateImage is returned for images with fewer than two pixels,
	// for which the cumulative distribution can't be normalized.
	ErrDegenerateImage = errors.New("degenerate image: at least 2 pixels are required")

	// ErrPixelCountMismatch is returned when a histogram doesn't account for
	// the number of pixels it's supposed to describe.
	ErrPixelCountMismatch = errors.New("histogram total doesn't match pixel count")
)

// A MappingTable translates an input intensity into its equalized value.
type MappingTable [Levels]uint8

// BuildMapping computes the equalization table of a histogram:
//
//	mapping[i] = round((cdf[i] - cdf[0]) / (pixelCount - 1) * 255)
//
// clamped to [0, 255]. mapping[0] is always 0, which is what the formula
// yields for i = 0.
func BuildMapping(h Histogram, pixelCount int) (MappingTable, error) {
	var m MappingTable
	if pixelCount < 2 {
		return m, fmt.Errorf("%w (got %d)", ErrDegenerateImage, pixelCount)
	}
	if total := h.Total(); total != pixelCount {
		return m, fmt.Errorf("%w: %d != %d", ErrPixelCountMismatch, total, pixelCount)
	}

	cdf := h.Cumulative()
	denom := float64(pixelCount - 1)
	for i := 1; i < Levels; i++ {
		v := math.Round(float64(cdf[i]-cdf[0]) / denom * 255)
		// When bin 0 is empty the top of the range overshoots 255.
		if v > 255 {
			v = 255
		}
		m[i] = uint8(v)
	}
	return m, nil
}
