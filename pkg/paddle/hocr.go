package paddle

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/gardar/paddlehocr/pkg/hocr"
	"github.com/gardar/paddlehocr/pkg/layout"
)

// ocrSystem identifies this converter in generated documents.
const ocrSystem = "PaddleOCR via paddlehocr"

// PageResult bundles the artifacts of one page conversion.
type PageResult struct {
	Layout layout.Document
	HOCR   *hocr.Document
	HTML   string // Rendered hOCR markup
	Text   string // Plain-text transcript, one line per detection
}

// Options configures one page conversion.
type Options struct {
	Lang   string // Tesseract-style code recorded on hOCR paragraphs
	Logger *slog.Logger
}

// GenerateHOCR runs the engine on one page image and converts the raw
// detections into an hOCR document and transcript. Geometry is normalized
// back to the original image's pixel space before serialization.
func GenerateHOCR(ctx context.Context, engine Engine, imagePath string, opts Options) (*PageResult, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	width, height, err := imageSize(imagePath)
	if err != nil {
		return nil, err
	}
	logger.Debug("running OCR", "engine", engine.Name(), "image", imagePath,
		"size", fmt.Sprintf("%dx%d", width, height))

	raw, err := engine.Predict(ctx, imagePath)
	if err != nil {
		return nil, err
	}

	dets, err := raw.Detections()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", engine.Name(), err)
	}

	sc := layout.ResolveScale(width, height, raw.BackendWidth, raw.BackendHeight)
	logger.Debug("resolved backend scale", "sx", sc.X, "sy", sc.Y, "detections", len(dets))

	doc := layout.BuildDocument(width, height, dets, sc)
	hocrDoc := buildHOCR(doc, opts.Lang)

	html, err := hocr.Generate(hocrDoc)
	if err != nil {
		return nil, err
	}

	return &PageResult{
		Layout: doc,
		HOCR:   hocrDoc,
		HTML:   html,
		Text:   doc.Transcript(),
	}, nil
}

// buildHOCR assembles the hOCR object model from a page layout. Each
// detected line gets its own area and paragraph; the structure is
// intentionally flat rather than grouped into multi-line paragraphs.
func buildHOCR(doc layout.Document, lang string) *hocr.Document {
	page := hocr.Page{
		ID:   "page_1",
		BBox: hocr.NewBBox(0, 0, doc.Width, doc.Height),
	}

	wordID := 1
	for i, line := range doc.Lines {
		n := i + 1
		box := hocr.NewBBox(line.Box.X1, line.Box.Y1, line.Box.X2, line.Box.Y2)

		hocrLine := hocr.Line{
			ID:         fmt.Sprintf("line_%d", n),
			BBox:       box,
			Baseline:   "0 0",
			Confidence: line.Confidence,
		}
		for _, word := range line.Words {
			hocrLine.Words = append(hocrLine.Words, hocr.Word{
				ID:         fmt.Sprintf("word_%d", wordID),
				Text:       word.Text,
				BBox:       hocr.NewBBox(word.Box.X1, word.Box.Y1, word.Box.X2, word.Box.Y2),
				Confidence: line.Confidence,
			})
			wordID++
		}

		page.Areas = append(page.Areas, hocr.Area{
			ID:   fmt.Sprintf("carea_%d", n),
			BBox: box,
			Paragraphs: []hocr.Paragraph{{
				ID:    fmt.Sprintf("par_%d", n),
				Lang:  lang,
				BBox:  box,
				Lines: []hocr.Line{hocrLine},
			}},
		})
	}

	return &hocr.Document{
		Title:    "",
		Language: "en",
		Metadata: map[string]string{
			"ocr-system":       ocrSystem,
			"ocr-capabilities": "ocr_page ocr_carea ocr_par ocr_line ocrx_word",
		},
		Pages: []hocr.Page{page},
	}
}

// WritePage persists a page result as an hOCR file and a text transcript.
// Both writes happen only after conversion has fully succeeded, so a failed
// remote call never leaves partial files behind.
func WritePage(result *PageResult, hocrPath, textPath string) error {
	if hocrPath != "" {
		if err := os.WriteFile(hocrPath, []byte(result.HTML), 0644); err != nil {
			return fmt.Errorf("failed to write hOCR output: %w", err)
		}
	}
	if textPath != "" {
		if err := os.WriteFile(textPath, []byte(result.Text), 0644); err != nil {
			return fmt.Errorf("failed to write text output: %w", err)
		}
	}
	return nil
}
