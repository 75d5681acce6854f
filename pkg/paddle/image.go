package paddle

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif" // Register GIF decoder
	"image/jpeg"
	_ "image/png" // Register PNG decoder
	"math"
	"os"

	_ "golang.org/x/image/bmp" // Register BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // Register TIFF decoder
)

// MaxTransportDimension is the bounding box the remote service accepts;
// larger pages are downscaled uniformly to fit within it.
const MaxTransportDimension = 3000

// jpegQuality for the transport payload. The service re-thresholds the
// image internally, so moderate compression artifacts are acceptable.
const jpegQuality = 90

// PreparedImage is a page image re-encoded for remote transport, along with
// the dimensions the service will actually see. Scale converts a coordinate
// from the encoded image back to the original: original = encoded * Scale.
type PreparedImage struct {
	JPEG       []byte
	Width      int // Encoded (backend-space) dimensions
	Height     int
	OrigWidth  int
	OrigHeight int
	Scale      float64
}

// PrepareImage loads the source image, downscales it uniformly so that
// neither dimension exceeds maxDim while preserving aspect ratio, converts
// it to grayscale, and encodes it as JPEG. If the image already fits, the
// recorded scale factor is 1.0.
func PrepareImage(path string, maxDim int) (*PreparedImage, error) {
	if maxDim <= 0 {
		maxDim = MaxTransportDimension
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("image has zero dimension: %dx%d", w, h)
	}

	rw, rh := w, h
	if w > maxDim || h > maxDim {
		factor := float64(maxDim) / float64(w)
		if h > w {
			factor = float64(maxDim) / float64(h)
		}
		rw = int(math.Round(float64(w) * factor))
		rh = int(math.Round(float64(h) * factor))
		if rw > maxDim {
			rw = maxDim
		}
		if rh > maxDim {
			rh = maxDim
		}
	}

	gray := image.NewGray(image.Rect(0, 0, rw, rh))
	if rw == w && rh == h {
		draw.Copy(gray, image.Point{}, src, bounds, draw.Src, nil)
	} else {
		draw.CatmullRom.Scale(gray, gray.Bounds(), src, bounds, draw.Src, nil)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, gray, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &PreparedImage{
		JPEG:       buf.Bytes(),
		Width:      rw,
		Height:     rh,
		OrigWidth:  w,
		OrigHeight: h,
		Scale:      float64(w) / float64(rw),
	}, nil
}

// imageSize reads just the dimensions of an image file without decoding the
// full raster.
func imageSize(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to read image dimensions: %w", err)
	}
	return cfg.Width, cfg.Height, nil
}
