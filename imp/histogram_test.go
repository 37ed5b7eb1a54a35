package imp

import (
	"math"
	"runtime"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLuma(t *testing.T) {
	assert.Equal(t, uint8(0), Luma(0, 0, 0))
	assert.Equal(t, uint8(76), Luma(255, 0, 0))  // 76.245
	assert.Equal(t, uint8(149), Luma(0, 255, 0)) // 149.685
	assert.Equal(t, uint8(29), Luma(0, 0, 255))  // 29.07
	assert.Equal(t, uint8(102), Luma(100, 100, 120))

	// Truncation, not rounding: a neutral gray may lose one level.
	assert.Equal(t, uint8(127), Luma(128, 128, 128))
	assert.Equal(t, uint8(255), Luma(255, 255, 255))
	assert.Equal(t, uint8(100), Luma(100, 100, 100))
}

func TestIntensity(t *testing.T) {
	gray := grayBuffer(2, 1, 7, 9)
	assert.Equal(t, uint8(9), gray.Intensity(1, 0))

	rgb := NewBuffer(2, 2, RGB)
	copy(rgb.Pix[9:], []uint8{255, 0, 0})
	assert.Equal(t, uint8(76), rgb.Intensity(1, 1))
	assert.Equal(t, uint8(0), rgb.Intensity(0, 1))
}

func TestBuildHistogramScenario(t *testing.T) {
	h, err := BuildHistogram(grayBuffer(2, 2, 0, 85, 170, 255))
	require.NoError(t, err)

	for i, v := range h {
		switch i {
		case 0, 85, 170, 255:
			assert.Equal(t, 1, v, "bin %d", i)
		default:
			assert.Equal(t, 0, v, "bin %d", i)
		}
	}

	c := h.Cumulative()
	assert.Equal(t, 1, c[0])
	assert.Equal(t, 1, c[84])
	assert.Equal(t, 2, c[85])
	assert.Equal(t, 2, c[169])
	assert.Equal(t, 3, c[170])
	assert.Equal(t, 3, c[254])
	assert.Equal(t, 4, c[255])
}

func TestBuildHistogramConservation(t *testing.T) {
	for _, cs := range []ColorSpace{Grayscale, RGB} {
		buf := randomBuffer(t, 37, 23, cs, 1)
		h, err := BuildHistogram(buf)
		require.NoError(t, err)
		assert.Equal(t, 37*23, h.Total(), cs.String())
	}
}

func TestBuildHistogramRGBUsesLuma(t *testing.T) {
	buf := NewBuffer(1, 2, RGB)
	copy(buf.Pix, []uint8{255, 0, 0, 0, 255, 0})
	h, err := BuildHistogram(buf)
	require.NoError(t, err)
	assert.Equal(t, 1, h[76])
	assert.Equal(t, 1, h[149])
	assert.Equal(t, 2, h.Total())
}

func TestBuildHistogramParallelMatchesSerial(t *testing.T) {
	sizes := []struct{ w, h int }{{1, 1}, {3, 1}, {1, 17}, {64, 48}, {101, 67}}
	for _, cs := range []ColorSpace{Grayscale, RGB} {
		for _, sz := range sizes {
			buf := randomBuffer(t, sz.w, sz.h, cs, int64(sz.w*sz.h))
			want, err := BuildHistogram(buf)
			require.NoError(t, err)

			for _, workers := range []int{-1, 0, 1, 2, 3, 7, 16, 1000} {
				got, err := BuildHistogramParallel(buf, workers)
				require.NoError(t, err)
				assert.Equal(t, want, got, "%v %dx%d workers=%d", cs, sz.w, sz.h, workers)
			}
		}
	}
}

func TestBuildHistogramParallelLeavesBufferUntouched(t *testing.T) {
	buf := randomBuffer(t, 50, 50, RGB, 3)
	before := append([]uint8(nil), buf.Pix...)
	_, err := BuildHistogramParallel(buf, 8)
	require.NoError(t, err)
	assert.Equal(t, before, buf.Pix)
}

func TestBuildHistogramInvalid(t *testing.T) {
	_, err := BuildHistogram(&Buffer{Pix: []uint8{1, 2}, Width: 1, Height: 1, ColorSpace: ColorSpace(4)})
	assert.ErrorIs(t, err, ErrUnsupportedColorSpace)

	_, err = BuildHistogramParallel(&Buffer{Pix: []uint8{1, 2}, Width: 3, Height: 1}, 2)
	assert.ErrorIs(t, err, ErrInvalidBuffer)
}

func TestEmptyImageHistogram(t *testing.T) {
	h, err := BuildHistogramParallel(NewBuffer(0, 0, Grayscale), 4)
	require.NoError(t, err)
	assert.Equal(t, 0, h.Total())
	assert.Zero(t, h.Entropy())
}

func TestHistogramAddIsOrderIndependent(t *testing.T) {
	var a, b, c Histogram
	for i := range a {
		a[i], b[i], c[i] = i, 2*i+1, 255-i
	}

	var x, y Histogram
	x.Add(&a)
	x.Add(&b)
	x.Add(&c)
	y.Add(&c)
	y.Add(&a)
	y.Add(&b)
	assert.Equal(t, x, y)
}

func TestEntropy(t *testing.T) {
	var h Histogram
	h[10] = 100
	assert.Zero(t, h.Entropy())

	h[20] = 100
	assert.InDelta(t, 1.0, h.Entropy(), 1e-12)

	var uniform Histogram
	for i := range uniform {
		uniform[i] = 3
	}
	assert.InDelta(t, 8.0, uniform.Entropy(), 1e-9)
	assert.False(t, math.IsNaN(uniform.Entropy()))
}

func TestParallelRowsCoversEveryRowOnce(t *testing.T) {
	for _, rows := range []int{1, 2, 5, 64, 99} {
		for _, workers := range []int{0, 1, 2, 3, 8, 200} {
			seen := make([]int, rows)
			err := parallelRows(rows, workers, func(start, end int) error {
				for i := start; i < end; i++ {
					seen[i]++
				}
				return nil
			})
			require.NoError(t, err)
			for i, n := range seen {
				assert.Equal(t, 1, n, "rows=%d workers=%d row=%d", rows, workers, i)
			}
		}
	}
}

func TestWorkerCount(t *testing.T) {
	procs := runtime.GOMAXPROCS(0)
	assert.Equal(t, procs, workerCount(1000, 10000))
	assert.Equal(t, procs, workerCount(0, 10000))
	assert.Equal(t, 1, workerCount(1, 10000))
	assert.Equal(t, 1, workerCount(8, 1))
	assert.Equal(t, 1, workerCount(4, 0))
	if procs >= 2 {
		assert.Equal(t, 2, workerCount(2, 10000))
	}
}

func TestParallelRowsNeverExceedsGOMAXPROCS(t *testing.T) {
	var blocks int32
	err := parallelRows(10000, 1000, func(start, end int) error {
		atomic.AddInt32(&blocks, 1)
		return nil
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, int(blocks), runtime.GOMAXPROCS(0))
}

func TestParallelRowsPropagatesErrors(t *testing.T) {
	boom := assert.AnError
	err := parallelRows(10, 4, func(start, end int) error {
		if start == 0 {
			return boom
		}
		return nil
	})
	assert.ErrorIs(t, err, boom)
}
