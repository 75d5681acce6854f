// Package overlay stamps OCR text from hOCR data onto PDF pages as an
// invisible, positioned text layer.
//
// The visible raster stays unchanged while the text becomes selectable and
// searchable. PDFs can be assembled from page images plus their hOCR, or an
// existing PDF can be enhanced in place. Text is positioned from the hOCR
// bounding boxes, with hOCR pixel coordinates converted to PDF points using
// the page DPI.
//
// Main Functions:
//
// - Assemble: creates a new PDF from page images with an OCR text layer
// - Apply: adds an OCR text layer to an existing PDF
// - DetectLayers: finds existing OCR layers to prevent double application
package overlay

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"github.com/gardar/paddlehocr/pkg/hocr"
)

// DefaultDPI is assumed when the page image does not declare a resolution.
const DefaultDPI = 300.0

// Config holds user options for applying OCR to PDF
type Config struct {
	Debug     bool    // Render the text visibly in red with box outlines
	Force     bool    // Reapply OCR even if a layer already exists
	LayerName string  // Base name of OCR layer (page number will be appended)
	DPI       float64 // Pixel density of the hOCR coordinate space
	Font      FontConfig
	Logger    *slog.Logger
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() Config {
	return Config{
		LayerName: "OCR Text",
		DPI:       DefaultDPI,
		Font:      DefaultFont,
	}
}

// FontConfig contains font settings for OCR text rendering
type FontConfig struct {
	Name        string  // Font name (e.g., "Helvetica")
	Style       string  // Font style ("", "B", "I", "BI")
	Size        float64 // Default font size
	AscentRatio float64 // Vertical positioning ratio
}

// DefaultFont sets the default font to Helvetica which is tried and tested
// for the OCR layer
var DefaultFont = FontConfig{
	Name:        "Helvetica",
	Style:       "",
	Size:        10,
	AscentRatio: 0.718,
}

// Assemble builds a new PDF from page images with their corresponding OCR
// layer. Images are matched to hOCR pages by position; there must be at
// least one image per hOCR page.
func Assemble(doc *hocr.Document, imagesData [][]byte, config Config) ([]byte, error) {
	if doc == nil || len(doc.Pages) == 0 {
		return nil, fmt.Errorf("hOCR data contains no pages")
	}
	if len(imagesData) < len(doc.Pages) {
		return nil, fmt.Errorf("not enough images (%d) for hOCR pages (%d)",
			len(imagesData), len(doc.Pages))
	}

	dpi := config.dpi()
	pdf := fpdf.New("P", "pt", "A4", "")

	for i, page := range doc.Pages {
		w := float64(page.BBox.X2) * 72 / dpi
		h := float64(page.BBox.Y2) * 72 / dpi
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

		imageType, err := detectImageType(imagesData[i])
		if err != nil {
			return nil, fmt.Errorf("image %d has invalid format: %w", i+1, err)
		}
		imageName := fmt.Sprintf("img%d", i)
		opts := fpdf.ImageOptions{ImageType: imageType}
		pdf.RegisterImageOptionsReader(imageName, opts, bytes.NewReader(imagesData[i]))
		pdf.ImageOptions(imageName, 0, 0, w, h, false, opts, 0, "")

		if err := drawOCRLayer(pdf, page, i+1, dpi, config); err != nil {
			return nil, fmt.Errorf("failed to draw OCR layer for page %d: %w", i+1, err)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Apply adds the OCR text layer to an existing PDF. Unless Force is set,
// a PDF that already carries an OCR layer is refused so the same text is
// never stamped twice.
func Apply(inputPDF []byte, doc *hocr.Document, config Config) ([]byte, error) {
	if len(inputPDF) == 0 {
		return nil, fmt.Errorf("input PDF data is empty")
	}
	if doc == nil || len(doc.Pages) == 0 {
		return nil, fmt.Errorf("hOCR data contains no pages")
	}

	check := CheckExistingLayers(inputPDF, config.layerName())
	for _, warning := range check.Warnings {
		config.logger().Warn(warning)
	}
	if check.HasOCRLayer {
		if !config.Force {
			return nil, fmt.Errorf("file already has OCR (layer %q), use force to reapply",
				check.OCRLayerName)
		}
		config.logger().Warn("reapplying OCR will result in duplicate OCR data",
			"layer", check.OCRLayerName)
	}

	return modifyExistingPDF(inputPDF, doc, config)
}

// detectImageType tries to figure out whether the data is PNG, JPEG, etc.
func detectImageType(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("failed to decode image config: %w", err)
	}
	return strings.ToUpper(format), nil
}

func (c Config) dpi() float64 {
	if c.DPI <= 0 {
		return DefaultDPI
	}
	return c.DPI
}

func (c Config) layerName() string {
	if c.LayerName == "" {
		return "OCR Text"
	}
	return c.LayerName
}

func (c Config) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.Default()
	}
	return c.Logger
}
