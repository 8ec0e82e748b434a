package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"partquote/internal/errors"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.SetGray(x, h/2, color.Gray{Y: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	return buf.Bytes()
}

func TestNormalizeScalesToWidth(t *testing.T) {
	tests := []struct {
		name           string
		w, h           int
		expectedHeight int
	}{
		{"downscale", 2000, 1000, 500},
		{"upscale", 500, 300, 600},
		{"already target", 1000, 700, 700},
		{"thin strip", 4000, 1, 1},
	}

	n := NewNormalizer(1000)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := n.Normalize(encodePNG(t, tt.w, tt.h))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if out.Width != 1000 || out.Height != tt.expectedHeight {
				t.Errorf("expected 1000x%d, got %dx%d", tt.expectedHeight, out.Width, out.Height)
			}

			decoded, err := png.Decode(bytes.NewReader(out.PNG))
			if err != nil {
				t.Fatalf("output is not png: %v", err)
			}
			if b := decoded.Bounds(); b.Dx() != out.Width || b.Dy() != out.Height {
				t.Errorf("encoded bounds %v do not match %dx%d", b, out.Width, out.Height)
			}
		})
	}
}

func TestNormalizeAcceptsJPEG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 200, 100))
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, nil); err != nil {
		t.Fatalf("encode: %v", err)
	}

	out, err := NewNormalizer(0).Normalize(buf.Bytes())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Format != "jpeg" {
		t.Errorf("expected jpeg source format, got %q", out.Format)
	}
	if out.Width != DefaultWidth || out.Height != 500 {
		t.Errorf("expected %dx500, got %dx%d", DefaultWidth, out.Width, out.Height)
	}
}

func TestNormalizeRejectsGarbage(t *testing.T) {
	n := NewNormalizer(1000)

	for name, data := range map[string][]byte{
		"empty":   nil,
		"text":    []byte("%PDF-1.4 not an image"),
		"trimmed": encodePNG(t, 10, 10)[:20],
	} {
		t.Run(name, func(t *testing.T) {
			_, err := n.Normalize(data)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsType(err, errors.TypeImage) {
				t.Errorf("expected image error, got %v", err)
			}
		})
	}
}

func TestNormalizeRejectsOversizedOutput(t *testing.T) {
	n := NewNormalizer(1000)

	tests := []struct {
		name string
		w, h int
	}{
		{"one pixel wide strip", 1, 2_000_000},
		{"narrow tall strip", 3, 100_000},
		{"height over cap", 40, 1_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := n.Normalize(encodePNG(t, tt.w, tt.h))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.IsType(err, errors.TypeImage) {
				t.Errorf("expected image error, got %v", err)
			}
		})
	}
}
