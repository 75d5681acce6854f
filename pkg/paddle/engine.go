package paddle

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/gardar/paddlehocr/pkg/layout"
)

// ErrEngineUnavailable reports that the selected OCR engine cannot run,
// typically because its model or native library is missing. Surfaced before
// any page is processed and never retried.
var ErrEngineUnavailable = errors.New("ocr engine unavailable")

// RemoteError wraps any failure of the remote OCR exchange (network error,
// timeout, non-2xx status, malformed JSON) into one domain-level failure
// carrying the underlying cause.
type RemoteError struct {
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("paddleocr remote failure: %v", e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

// Point is one vertex of a detection polygon in backend-space coordinates.
type Point struct {
	X float64
	Y float64
}

// Quad is an axis-aligned detection rectangle in backend-space coordinates.
type Quad struct {
	X1 float64
	Y1 float64
	X2 float64
	Y2 float64
}

// RawResult is the uniform prediction result shared by all engines: three
// parallel lists in the backend's visual line order, plus the backend-space
// image dimensions when the backend processed a resized copy of the page
// (zero when unknown or unchanged).
type RawResult struct {
	Texts  []string
	Scores []float64
	Boxes  []Quad    // Rectangle geometry, used when Polys is empty
	Polys  [][]Point // Polygon geometry, reduced to axis-aligned hulls

	BackendWidth  int
	BackendHeight int
}

// Engine is the single capability all OCR backends expose: given a page
// image path, return the raw line-level detections. An empty result is a
// valid page with no recognized text, not an error.
type Engine interface {
	Name() string
	Predict(ctx context.Context, imagePath string) (RawResult, error)
}

// Detections validates the parallel lists and converts them into layout
// detections, reducing polygon geometry to axis-aligned bounding boxes.
// A length mismatch between the lists is a data-integrity fault: the whole
// result is rejected rather than silently truncated.
func (r RawResult) Detections() ([]layout.Detection, error) {
	n := len(r.Texts)
	geoms := len(r.Boxes)
	usePolys := len(r.Polys) > 0
	if usePolys {
		geoms = len(r.Polys)
	}
	if len(r.Scores) != n || geoms != n {
		return nil, fmt.Errorf("malformed ocr result: %d texts, %d scores, %d geometries",
			n, len(r.Scores), geoms)
	}

	dets := make([]layout.Detection, 0, n)
	for i := 0; i < n; i++ {
		var q Quad
		if usePolys {
			hull, err := polyHull(r.Polys[i])
			if err != nil {
				return nil, fmt.Errorf("detection %d: %w", i, err)
			}
			q = hull
		} else {
			q = r.Boxes[i]
		}
		dets = append(dets, layout.Detection{
			Text:       r.Texts[i],
			Confidence: r.Scores[i],
			X1:         q.X1,
			Y1:         q.Y1,
			X2:         q.X2,
			Y2:         q.Y2,
		})
	}
	return dets, nil
}

// polyHull reduces an ordered polygon to its axis-aligned bounding rectangle.
func polyHull(pts []Point) (Quad, error) {
	if len(pts) == 0 {
		return Quad{}, errors.New("empty polygon")
	}
	q := Quad{X1: math.Inf(1), Y1: math.Inf(1), X2: math.Inf(-1), Y2: math.Inf(-1)}
	for _, p := range pts {
		q.X1 = math.Min(q.X1, p.X)
		q.Y1 = math.Min(q.Y1, p.Y)
		q.X2 = math.Max(q.X2, p.X)
		q.Y2 = math.Max(q.Y2, p.Y)
	}
	return q, nil
}
