package imp

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// randomBuffer returns a buffer filled with reproducible noise.
func randomBuffer(t *testing.T, w, h int, cs ColorSpace, seed int64) *Buffer {
	t.Helper()
	buf := NewBuffer(w, h, cs)
	rng := rand.New(rand.NewSource(seed))
	_, err := rng.Read(buf.Pix)
	require.NoError(t, err)
	return buf
}

// grayBuffer builds a grayscale buffer from its samples.
func grayBuffer(w, h int, pix ...uint8) *Buffer {
	return &Buffer{Pix: pix, Width: w, Height: h, ColorSpace: Grayscale}
}
