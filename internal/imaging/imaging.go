// Package imaging turns arbitrary raster images into the bounded JPEG blobs
// stored alongside items.
package imaging

import (
	"bytes"
	"image"
	"image/jpeg"
	"log/slog"
	"os"

	_ "image/gif"
	_ "image/png"

	"golang.org/x/image/draw"
)

// Codec re-encodes source images for storage. A failure at any stage is
// non-fatal: Encode returns nil and the item is stored without an image.
type Codec struct {
	MaxDim  int // largest output dimension, in pixels
	Quality int // JPEG quality
}

// New returns a codec with the default bounds (300px, quality 85).
func New() Codec {
	return Codec{MaxDim: 300, Quality: 85}
}

// Encode reads the image at path, scales it so the largest dimension is at
// most MaxDim (never upscaling), and re-encodes it as JPEG. It returns nil
// when the file is missing, unreadable or not a decodable image.
func (c Codec) Encode(path string) []byte {
	f, err := os.Open(path)
	if err != nil {
		slog.Debug("image open failed", "path", path, "err", err)
		return nil
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		slog.Debug("image decode failed", "path", path, "err", err)
		return nil
	}

	dst := c.bound(src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: c.Quality}); err != nil {
		slog.Debug("image encode failed", "path", path, "err", err)
		return nil
	}
	return buf.Bytes()
}

// bound scales src down to fit MaxDim, preserving aspect ratio.
func (c Codec) bound(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= c.MaxDim && h <= c.MaxDim {
		return src
	}
	if w >= h {
		h = h * c.MaxDim / w
		w = c.MaxDim
	} else {
		w = w * c.MaxDim / h
		h = c.MaxDim
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
