package overlay

import (
	"fmt"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"

	"github.com/gardar/paddlehocr/pkg/hocr"
)

// drawOCRLayer draws the OCR text onto a layer in a pdf page.
// The pageNum parameter is used to create unique layer names for each page.
func drawOCRLayer(pdf *fpdf.Fpdf, page hocr.Page, pageNum int, dpi float64, config Config) error {
	formattedLayerName := config.layerName()
	if pageNum > 0 {
		formattedLayerName = fmt.Sprintf("%s (Page %d)", formattedLayerName, pageNum)
	}

	layer := pdf.AddLayer(formattedLayerName, true)
	pdf.BeginLayer(layer)
	pdf.SetFont(config.Font.Name, config.Font.Style, config.Font.Size)

	if config.Debug {
		pdf.SetTextColor(255, 0, 0) // highlight text in red
	} else {
		pdf.SetAlpha(0.0, "Normal") // hide text from normal view
	}

	// Pixel coordinates from the OCR engine become PDF points
	scale := 72 / dpi

	encodingErrors := 0
	wordCount := 0

	for _, area := range page.Areas {
		for _, paragraph := range area.Paragraphs {
			for _, line := range paragraph.Lines {
				for _, word := range line.Words {
					drawWord(pdf, word, scale, config, &encodingErrors)
					wordCount++
				}
			}
		}
	}

	pdf.EndLayer()

	// Report encoding errors if more than a threshold
	if wordCount > 0 && encodingErrors > 0 && encodingErrors > wordCount/10 {
		return fmt.Errorf("character encoding issues in %d of %d words",
			encodingErrors, wordCount)
	}

	return nil
}

// drawWord renders a single word onto the PDF layer
func drawWord(pdf *fpdf.Fpdf, word hocr.Word, scale float64, config Config, encodingErrors *int) {
	x := float64(word.BBox.X1) * scale
	y := float64(word.BBox.Y1) * scale
	wordWidth := float64(word.BBox.X2-word.BBox.X1) * scale

	// Convert text to ISO-8859-1 to avoid PDF encoding issues
	latin1, err := charmap.ISO8859_1.NewEncoder().String(word.Text)
	if err != nil {
		// Track encoding errors but continue
		*encodingErrors++
		latin1 = word.Text // fallback to raw text
	}

	strWidth := pdf.GetStringWidth(latin1)
	if strWidth > 0 {
		pdf.SetFontSize(config.Font.Size * wordWidth / strWidth)
	}

	fontSize, _ := pdf.GetFontSize()
	y += fontSize * config.Font.AscentRatio

	pdf.Text(x, y, latin1)
	pdf.SetFontSize(config.Font.Size)

	if config.Debug {
		height := float64(word.BBox.Y2-word.BBox.Y1) * scale
		pdf.Rect(x, y-(fontSize*config.Font.AscentRatio), wordWidth, height, "D")
	}
}
