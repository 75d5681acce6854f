package paddle

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/otiai10/gosseract/v2"
)

// threadLimitVar caps OCR threading process-wide when set by a sibling
// engine. The in-process engine needs it cleared to perform acceptably.
const threadLimitVar = "OMP_THREAD_LIMIT"

// Tesseract runs OCR in-process through the gosseract client. It returns
// line-level detections in the original image's coordinate space, so no
// backend-space dimensions are reported.
type Tesseract struct {
	Lang   string // Tesseract language code, e.g. "eng"
	Logger *slog.Logger

	newClient func() *gosseract.Client
}

// NewTesseract creates an in-process engine for the given Tesseract
// language code.
func NewTesseract(lang string) *Tesseract {
	return &Tesseract{
		Lang:      lang,
		Logger:    slog.Default(),
		newClient: gosseract.NewClient,
	}
}

func (t *Tesseract) Name() string { return "tesseract" }

// Check verifies that the native library and language data are usable.
// Called once at configuration time so a missing installation fails fast
// instead of surfacing mid-pipeline.
func (t *Tesseract) Check() error {
	c := t.client()
	defer c.Close()
	if c.Version() == "" {
		return fmt.Errorf("%w: tesseract library not detected", ErrEngineUnavailable)
	}
	if t.Lang != "" {
		if err := c.SetLanguage(t.Lang); err != nil {
			return fmt.Errorf("%w: language %q: %v", ErrEngineUnavailable, t.Lang, err)
		}
	}
	return nil
}

// Predict recognizes one page image synchronously.
func (t *Tesseract) Predict(ctx context.Context, imagePath string) (RawResult, error) {
	if err := ctx.Err(); err != nil {
		return RawResult{}, err
	}
	t.clearThreadLimit()

	c := t.client()
	defer c.Close()

	if t.Lang != "" {
		if err := c.SetLanguage(t.Lang); err != nil {
			return RawResult{}, fmt.Errorf("set language: %w", err)
		}
	}
	if err := c.SetImage(imagePath); err != nil {
		return RawResult{}, fmt.Errorf("set image: %w", err)
	}

	boxes, err := c.GetBoundingBoxes(gosseract.RIL_TEXTLINE)
	if err != nil {
		return RawResult{}, fmt.Errorf("recognize: %w", err)
	}

	// The engine works on the image as-is; detections are already in the
	// original coordinate space.
	var result RawResult
	for _, b := range boxes {
		result.Texts = append(result.Texts, b.Word)
		result.Scores = append(result.Scores, b.Confidence/100.0)
		result.Boxes = append(result.Boxes, Quad{
			X1: float64(b.Box.Min.X),
			Y1: float64(b.Box.Min.Y),
			X2: float64(b.Box.Max.X),
			Y2: float64(b.Box.Max.Y),
		})
	}
	return result, nil
}

// clearThreadLimit removes the process-wide thread cap before model
// initialization. The previous value is logged, not restored; callers that
// need it back must reinstate it themselves.
func (t *Tesseract) clearThreadLimit() {
	if v, ok := os.LookupEnv(threadLimitVar); ok {
		t.logger().Warn("removing thread limit set by a sibling engine",
			"var", threadLimitVar, "value", v)
		os.Unsetenv(threadLimitVar)
	}
}

func (t *Tesseract) client() *gosseract.Client {
	if t.newClient == nil {
		return gosseract.NewClient()
	}
	return t.newClient()
}

func (t *Tesseract) logger() *slog.Logger {
	if t.Logger == nil {
		return slog.Default()
	}
	return t.Logger
}
