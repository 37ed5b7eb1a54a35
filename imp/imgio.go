package imp

import (
	"errors"
	"fmt"
	"image"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// Names of the files written by a diagnostic run.
const (
	EqualizedPrefix     = "equalized_image"
	HistogramBeforeFile = "histogram_before.jpg"
	HistogramAfterFile  = "histogram_after.jpg"
)

// ErrUnsupportedExtension is returned for file names we can't encode to.
var ErrUnsupportedExtension = errors.New("unsupported file extension")

// SupportedExtensions lists the extensions accepted for input and output.
var SupportedExtensions = []string{".jpg", ".jpeg", ".png", ".gif", ".tif", ".tiff", ".bmp"}

// CheckExtension returns the lowercased extension of filename, or an error
// suggesting the closest supported one.
func CheckExtension(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return "", fmt.Errorf("%w: %q has no extension", ErrUnsupportedExtension, filename)
	}
	for _, e := range SupportedExtensions {
		if ext == e {
			return ext, nil
		}
	}
	return "", fmt.Errorf("%w %q (did you mean %q?)", ErrUnsupportedExtension, ext, closestExtension(ext))
}

func closestExtension(ext string) string {
	best, bestDist := "", -1
	for _, e := range SupportedExtensions {
		d := levenshtein.DistanceForStrings([]rune(ext), []rune(e), levenshtein.DefaultOptions)
		if bestDist < 0 || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

// EqualizedName returns the name of the equalized output for an extension.
func EqualizedName(ext string) string {
	return EqualizedPrefix + ext
}

// ReadFile decodes an image file into a buffer.
func ReadFile(filename string) (*Buffer, error) {
	img, err := imaging.Open(filename)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

// Read decodes an image from a io.Reader.
func Read(r io.Reader) (*Buffer, error) {
	img, err := imaging.Decode(r)
	if err != nil {
		return nil, err
	}
	return FromImage(img), nil
}

// Save writes a buffer to a file. Image format is decided based upon its
// extension.
func Save(filename string, buf *Buffer, quality int) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	return SaveImage(filename, buf.ToImage(), quality)
}

// SaveImage writes any image to a file, e.g. a histogram chart.
func SaveImage(filename string, img image.Image, quality int) error {
	if _, err := CheckExtension(filename); err != nil {
		return err
	}
	return imaging.Save(img, filename, imaging.JPEGQuality(quality))
}

// Encode writes a buffer to w, in the format matching ext.
func Encode(w io.Writer, buf *Buffer, ext string, quality int) error {
	if err := buf.Validate(); err != nil {
		return err
	}
	return EncodeImage(w, buf.ToImage(), ext, quality)
}

// EncodeImage writes any image to w, in the format matching ext.
func EncodeImage(w io.Writer, img image.Image, ext string, quality int) error {
	format, err := imaging.FormatFromExtension(ext)
	if err != nil {
		return fmt.Errorf("%w %q", ErrUnsupportedExtension, ext)
	}
	return imaging.Encode(w, img, format, imaging.JPEGQuality(quality))
}
