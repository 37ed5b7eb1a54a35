package imp

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

var (
	// ErrUnsupportedColorSpace is returned for anything that isn't 8-bit
	// grayscale or 8-bit RGB.
	ErrUnsupportedColorSpace = errors.New("unsupported color space")

	// ErrInvalidBuffer is returned when a buffer's samples don't match its
	// declared geometry.
	ErrInvalidBuffer = errors.New("invalid pixel buffer")
)

// ColorSpace tells how the samples of a Buffer are laid out.
type ColorSpace int

// Supported color spaces
const (
	Grayscale ColorSpace = iota
	RGB
)

// ColorSpaceFromChannels returns the color space matching a channel count.
func ColorSpaceFromChannels(n int) (ColorSpace, error) {
	switch n {
	case 1:
		return Grayscale, nil
	case 3:
		return RGB, nil
	}
	return 0, fmt.Errorf("%w: %d channels", ErrUnsupportedColorSpace, n)
}

// Channels returns the number of samples per pixel, or 0 if cs is unknown.
func (cs ColorSpace) Channels() int {
	switch cs {
	case Grayscale:
		return 1
	case RGB:
		return 3
	}
	return 0
}

func (cs ColorSpace) String() string {
	switch cs {
	case Grayscale:
		return "grayscale"
	case RGB:
		return "rgb"
	}
	return fmt.Sprintf("ColorSpace(%d)", int(cs))
}

// A Buffer holds 8-bit samples in row-major order, channels interleaved.
type Buffer struct {
	Pix        []uint8
	Width      int
	Height     int
	ColorSpace ColorSpace
}

// NewBuffer allocates a zeroed buffer.
func NewBuffer(width, height int, cs ColorSpace) *Buffer {
	return &Buffer{
		Pix:        make([]uint8, width*height*cs.Channels()),
		Width:      width,
		Height:     height,
		ColorSpace: cs,
	}
}

// Validate checks that the buffer is usable by the equalization engine.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidBuffer)
	}
	ch := b.ColorSpace.Channels()
	if ch == 0 {
		return fmt.Errorf("%w: %v", ErrUnsupportedColorSpace, b.ColorSpace)
	}
	if b.Width < 0 || b.Height < 0 {
		return fmt.Errorf("%w: negative size %dx%d", ErrInvalidBuffer, b.Width, b.Height)
	}
	if len(b.Pix) != b.Width*b.Height*ch {
		return fmt.Errorf("%w: %d samples for %dx%dx%d",
			ErrInvalidBuffer, len(b.Pix), b.Width, b.Height, ch)
	}
	return nil
}

// PixelCount returns the number of pixels (not samples) in the buffer.
func (b *Buffer) PixelCount() int {
	return b.Width * b.Height
}

// rowStride returns the number of samples in a row.
func (b *Buffer) rowStride() int {
	return b.Width * b.ColorSpace.Channels()
}

// FromImage converts any image into a buffer. Grayscale images (8-bit,
// 16-bit, or paletted with gray entries only) keep a single channel,
// everything else is flattened to RGB (alpha is dropped).
func FromImage(src image.Image) *Buffer {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	switch img := src.(type) {
	case *image.Gray:
		dst := NewBuffer(w, h, Grayscale)
		for y := 0; y < h; y++ {
			off := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			copy(dst.Pix[y*w:(y+1)*w], img.Pix[off:off+w])
		}
		return dst
	case *image.Gray16:
		// Keep the high byte of each big-endian sample.
		dst := NewBuffer(w, h, Grayscale)
		for y := 0; y < h; y++ {
			off := img.PixOffset(bounds.Min.X, bounds.Min.Y+y)
			for x := 0; x < w; x++ {
				dst.Pix[y*w+x] = img.Pix[off+2*x]
			}
		}
		return dst
	}

	if isGray(src) {
		dst := NewBuffer(w, h, Grayscale)
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				c := color.GrayModel.Convert(src.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.Gray)
				dst.Pix[y*w+x] = c.Y
			}
		}
		return dst
	}

	// Clone always yields a tightly packed NRGBA with a zero origin.
	nrgba := imaging.Clone(src)
	dst := NewBuffer(w, h, RGB)
	for i, j := 0, 0; i < len(nrgba.Pix); i, j = i+4, j+3 {
		dst.Pix[j+0] = nrgba.Pix[i+0]
		dst.Pix[j+1] = nrgba.Pix[i+1]
		dst.Pix[j+2] = nrgba.Pix[i+2]
	}
	return dst
}

// isGray reports whether every color src can hold is an opaque gray.
func isGray(src image.Image) bool {
	palette, ok := src.ColorModel().(color.Palette)
	if !ok {
		m := src.ColorModel()
		return m == color.GrayModel || m == color.Gray16Model
	}
	for _, c := range palette {
		r, g, b, a := c.RGBA()
		if r != g || g != b || a != 0xffff {
			return false
		}
	}
	return len(palette) > 0
}

// ToImage wraps the buffer into a standard image so it can be encoded.
// Grayscale buffers share their samples with the returned image.
func (b *Buffer) ToImage() image.Image {
	rect := image.Rect(0, 0, b.Width, b.Height)
	if b.ColorSpace == Grayscale {
		return &image.Gray{Pix: b.Pix, Stride: b.Width, Rect: rect}
	}

	dst := image.NewNRGBA(rect)
	for i, j := 0, 0; j < len(b.Pix); i, j = i+4, j+3 {
		dst.Pix[i+0] = b.Pix[j+0]
		dst.Pix[i+1] = b.Pix[j+1]
		dst.Pix[i+2] = b.Pix[j+2]
		dst.Pix[i+3] = 0xff
	}
	return dst
}
