package bot

import (
	"bytes"
	"testing"

	"github.com/ArnaudCalmettes/histeq/imp"
	"github.com/ArnaudCalmettes/histeq/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodedGradient(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	buf := imp.NewBuffer(w, h, imp.RGB)
	for i := range buf.Pix {
		buf.Pix[i] = uint8(64 + i%64)
	}
	var b bytes.Buffer
	require.NoError(t, imp.Encode(&b, buf, ".png", imp.DefaultQuality))
	return &b
}

func TestEqualizeImage(t *testing.T) {
	out, err := equalizeImage(encodedGradient(t, 16, 8), "shot.PNG", imp.DefaultOptions())
	require.NoError(t, err)

	require.Len(t, out.files, 3)
	assert.Equal(t, "equalized_image.png", out.files[0].Name)
	assert.Equal(t, imp.HistogramBeforeFile, out.files[1].Name)
	assert.Equal(t, imp.HistogramAfterFile, out.files[2].Name)

	assert.Equal(t, "shot.PNG", out.run.Input)
	assert.Equal(t, models.SourceDiscord, out.run.Source)
	assert.Equal(t, 16, out.run.Width)
	assert.Equal(t, 8, out.run.Height)
	assert.Equal(t, "rgb", out.run.ColorSpace)
	assert.NoError(t, out.run.BeforeSave())

	result, err := imp.Read(out.files[0].Reader)
	require.NoError(t, err)
	for i := 0; i < len(result.Pix); i += 3 {
		require.Equal(t, result.Pix[i], result.Pix[i+1])
		require.Equal(t, result.Pix[i], result.Pix[i+2])
	}
}

func TestEqualizeImageWithoutDiagnostics(t *testing.T) {
	opts := imp.DefaultOptions()
	opts.Diagnostics = false
	out, err := equalizeImage(encodedGradient(t, 4, 4), "a.png", opts)
	require.NoError(t, err)
	assert.Len(t, out.files, 1)
}

func TestEqualizeImageErrors(t *testing.T) {
	_, err := equalizeImage(encodedGradient(t, 4, 4), "a.webp", imp.DefaultOptions())
	assert.ErrorIs(t, err, imp.ErrUnsupportedExtension)

	_, err = equalizeImage(encodedGradient(t, 1, 1), "a.png", imp.DefaultOptions())
	assert.ErrorIs(t, err, imp.ErrDegenerateImage)

	_, err = equalizeImage(bytes.NewBufferString("not an image"), "a.png", imp.DefaultOptions())
	assert.Error(t, err)
}

func TestFormatRuns(t *testing.T) {
	s := formatRuns([]models.Run{
		{Input: "a.jpg", Width: 640, Height: 480, ColorSpace: "rgb", EntropyBefore: 6.5, EntropyAfter: 5.25},
	})
	assert.Contains(t, s, "INPUT")
	assert.Contains(t, s, "640x480")
	assert.Contains(t, s, "6.500 → 5.250")
}
