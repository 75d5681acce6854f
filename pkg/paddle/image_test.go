package paddle

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
)

// writeTestImage creates a white PNG of the given size in a temp dir.
func writeTestImage(t *testing.T, width, height int) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.White)
		}
	}

	path := filepath.Join(t.TempDir(), "page.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create image: %v", err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatalf("encode image: %v", err)
	}
	return path
}

func TestPrepareImage_KeepsSmallImage(t *testing.T) {
	path := writeTestImage(t, 200, 100)

	prep, err := PrepareImage(path, 300)
	if err != nil {
		t.Fatalf("PrepareImage: %v", err)
	}
	if prep.Width != 200 || prep.Height != 100 {
		t.Fatalf("dimensions changed: %dx%d", prep.Width, prep.Height)
	}
	if prep.Scale != 1.0 {
		t.Fatalf("scale: got %v, want 1.0", prep.Scale)
	}
}

func TestPrepareImage_DownscalesLandscape(t *testing.T) {
	path := writeTestImage(t, 600, 400)

	prep, err := PrepareImage(path, 300)
	if err != nil {
		t.Fatalf("PrepareImage: %v", err)
	}
	if prep.Width != 300 || prep.Height != 200 {
		t.Fatalf("got %dx%d, want 300x200", prep.Width, prep.Height)
	}
	if prep.OrigWidth != 600 || prep.OrigHeight != 400 {
		t.Fatalf("original dimensions: %dx%d", prep.OrigWidth, prep.OrigHeight)
	}
	if prep.Scale != 2.0 {
		t.Fatalf("scale: got %v, want 2.0", prep.Scale)
	}

	// The payload must decode as a JPEG of the reduced size
	cfg, format, err := image.DecodeConfig(bytes.NewReader(prep.JPEG))
	if err != nil {
		t.Fatalf("decode payload: %v", err)
	}
	if format != "jpeg" {
		t.Fatalf("payload format: got %q", format)
	}
	if cfg.Width != 300 || cfg.Height != 200 {
		t.Fatalf("payload dimensions: %dx%d", cfg.Width, cfg.Height)
	}
}

func TestPrepareImage_DownscalesPortrait(t *testing.T) {
	path := writeTestImage(t, 200, 600)

	prep, err := PrepareImage(path, 300)
	if err != nil {
		t.Fatalf("PrepareImage: %v", err)
	}
	// Height is the limiting dimension
	if prep.Width != 100 || prep.Height != 300 {
		t.Fatalf("got %dx%d, want 100x300", prep.Width, prep.Height)
	}
}

func TestPrepareImage_MissingFile(t *testing.T) {
	if _, err := PrepareImage(filepath.Join(t.TempDir(), "missing.png"), 300); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImageSize(t *testing.T) {
	path := writeTestImage(t, 123, 45)

	w, h, err := imageSize(path)
	if err != nil {
		t.Fatalf("imageSize: %v", err)
	}
	if w != 123 || h != 45 {
		t.Fatalf("got %dx%d, want 123x45", w, h)
	}
}
