package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, w, h int) string {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 64, A: 255})
		}
	}
	path := filepath.Join(t.TempDir(), "src.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestEncodeBoundsLargestDimension(t *testing.T) {
	t.Parallel()
	codec := New()

	for _, dims := range [][2]int{{900, 600}, {600, 900}, {2000, 100}} {
		blob := codec.Encode(writePNG(t, dims[0], dims[1]))
		require.NotNil(t, blob)

		decoded, err := jpeg.Decode(bytes.NewReader(blob))
		require.NoError(t, err)
		b := decoded.Bounds()
		require.LessOrEqual(t, b.Dx(), codec.MaxDim)
		require.LessOrEqual(t, b.Dy(), codec.MaxDim)
	}
}

func TestEncodeKeepsAspectRatio(t *testing.T) {
	t.Parallel()
	codec := New()

	blob := codec.Encode(writePNG(t, 900, 600))
	require.NotNil(t, blob)

	decoded, err := jpeg.Decode(bytes.NewReader(blob))
	require.NoError(t, err)
	b := decoded.Bounds()
	require.Equal(t, 300, b.Dx())
	require.Equal(t, 200, b.Dy())
}

func TestEncodeDoesNotUpscale(t *testing.T) {
	t.Parallel()
	codec := New()

	blob := codec.Encode(writePNG(t, 120, 80))
	require.NotNil(t, blob)

	decoded, err := jpeg.Decode(bytes.NewReader(blob))
	require.NoError(t, err)
	b := decoded.Bounds()
	require.Equal(t, 120, b.Dx())
	require.Equal(t, 80, b.Dy())
}

func TestEncodeFailuresReturnNil(t *testing.T) {
	t.Parallel()
	codec := New()

	require.Nil(t, codec.Encode(filepath.Join(t.TempDir(), "missing.png")))

	corrupt := filepath.Join(t.TempDir(), "corrupt.png")
	require.NoError(t, os.WriteFile(corrupt, []byte("not an image"), 0o600))
	require.Nil(t, codec.Encode(corrupt))
}
