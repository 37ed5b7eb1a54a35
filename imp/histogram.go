package imp

import (
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"
)

// Levels is the number of intensity levels of an 8-bit sample.
const Levels = 256

// A Histogram counts pixels per intensity level.
type Histogram [Levels]int

// A CumulativeHistogram holds running totals of a Histogram.
type CumulativeHistogram [Levels]int

// Total returns the number of pixels counted.
func (h *Histogram) Total() int {
	total := 0
	for _, v := range h {
		total += v
	}
	return total
}

// Max returns the largest bin value.
func (h *Histogram) Max() int {
	m := 0
	for _, v := range h {
		if v > m {
			m = v
		}
	}
	return m
}

// Add merges other into h.
func (h *Histogram) Add(other *Histogram) {
	for i := range h {
		h[i] += other[i]
	}
}

// Cumulative returns the prefix sums of h.
func (h *Histogram) Cumulative() CumulativeHistogram {
	var c CumulativeHistogram
	c[0] = h[0]
	for i := 1; i < Levels; i++ {
		c[i] = c[i-1] + h[i]
	}
	return c
}

// Entropy returns the Shannon entropy of the intensity distribution, in bits.
// An empty histogram has zero entropy.
func (h *Histogram) Entropy() float64 {
	total := h.Total()
	if total == 0 {
		return 0
	}
	p := make([]float64, Levels)
	for i, v := range h {
		p[i] = float64(v) / float64(total)
	}
	// stat.Entropy works in nats.
	return stat.Entropy(p) / math.Ln2
}

// BuildHistogram counts the intensities of every pixel in a single pass.
func BuildHistogram(buf *Buffer) (Histogram, error) {
	var h Histogram
	if err := buf.Validate(); err != nil {
		return h, err
	}
	buf.countRows(&h, 0, buf.Height)
	return h, nil
}

// BuildHistogramParallel counts intensities using one private table per
// block of rows, then merges the tables. The result doesn't depend on the
// number of workers. workers <= 0 means one per available CPU.
func BuildHistogramParallel(buf *Buffer, workers int) (Histogram, error) {
	var h Histogram
	if err := buf.Validate(); err != nil {
		return h, err
	}

	var mu sync.Mutex
	err := parallelRows(buf.Height, workers, func(start, end int) error {
		var local Histogram
		buf.countRows(&local, start, end)

		mu.Lock()
		h.Add(&local)
		mu.Unlock()
		return nil
	})
	return h, err
}
