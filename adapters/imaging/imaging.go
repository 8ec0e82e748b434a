// Package imaging prepares uploaded drawings for text recognition.
package imaging

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"

	"partquote/internal/errors"
)

// DefaultWidth is the width drawings are scaled to before OCR
const DefaultWidth = 1000

// maxPixels guards against decompression bombs
const maxPixels = 50_000_000

// maxDimension caps the scaled height
const maxDimension = 20_000

// Prepared is a normalized PNG ready for recognition
type Prepared struct {
	PNG    []byte
	Format string
	Width  int
	Height int
}

// Normalizer decodes an image, scales it to a fixed width keeping the
// aspect ratio and re-encodes it as PNG.
type Normalizer struct {
	width int
}

// NewNormalizer creates a normalizer for the given target width
func NewNormalizer(width int) *Normalizer {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Normalizer{width: width}
}

// Width returns the target width
func (n *Normalizer) Width() int {
	return n.width
}

// Normalize converts data to a PNG of the target width. Smaller images are
// scaled up as well.
func (n *Normalizer) Normalize(data []byte) (*Prepared, error) {
	if len(data) == 0 {
		return nil, errors.New(errors.TypeImage, "empty image")
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Image("unsupported image", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || int64(cfg.Width)*int64(cfg.Height) > maxPixels {
		return nil, errors.Newf(errors.TypeImage, "image dimensions %dx%d out of range", cfg.Width, cfg.Height)
	}

	// The target width stretches narrow images, so the output is bounded separately.
	height := scaledHeight(cfg.Width, cfg.Height, n.width)
	if height > maxDimension || int64(n.width)*int64(height) > maxPixels {
		return nil, errors.Newf(errors.TypeImage, "scaled image %dx%d too large", n.width, height)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Image("failed to decode image", err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, n.width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, errors.Image("failed to encode png", err)
	}

	return &Prepared{
		PNG:    buf.Bytes(),
		Format: format,
		Width:  n.width,
		Height: height,
	}, nil
}

func scaledHeight(w, h, target int) int {
	height := int((int64(h)*int64(target) + int64(w/2)) / int64(w))
	if height < 1 {
		height = 1
	}
	return height
}
