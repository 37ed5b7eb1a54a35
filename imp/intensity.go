package imp

// Luma weights (ITU-R BT.601).
const (
	lumaR = 0.299
	lumaG = 0.587
	lumaB = 0.114
)

// Luma returns the truncated weighted sum of the three channels.
func Luma(r, g, b uint8) uint8 {
	// Explicit conversions keep each product rounded on its own, so the
	// compiler can't fuse them into an FMA and shift results by one.
	return uint8(float64(lumaR*float64(r)) + float64(lumaG*float64(g)) + float64(lumaB*float64(b)))
}

// Intensity returns the 8-bit intensity of the pixel at (x, y): the sample
// itself for grayscale buffers, its luma for RGB ones.
func (b *Buffer) Intensity(x, y int) uint8 {
	if b.ColorSpace == Grayscale {
		return b.Pix[y*b.Width+x]
	}
	i := (y*b.Width + x) * 3
	return Luma(b.Pix[i], b.Pix[i+1], b.Pix[i+2])
}

// countRows accumulates the intensities of rows [start, end) into h.
func (b *Buffer) countRows(h *Histogram, start, end int) {
	stride := b.rowStride()
	row := b.Pix[start*stride : end*stride]
	if b.ColorSpace == Grayscale {
		for _, v := range row {
			h[v]++
		}
		return
	}
	for i := 0; i < len(row); i += 3 {
		h[Luma(row[i], row[i+1], row[i+2])]++
	}
}
