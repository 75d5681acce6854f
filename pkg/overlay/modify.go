package overlay

import (
	"bytes"
	"fmt"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"codeberg.org/go-pdf/fpdf/contrib/gofpdi"

	"github.com/gardar/paddlehocr/pkg/hocr"
)

// modifyExistingPDF imports pages from an existing PDF and overlays the OCR
// text layer on each of them.
func modifyExistingPDF(inputPDF []byte, doc *hocr.Document, config Config) ([]byte, error) {
	dpi := config.dpi()
	pdf := fpdf.New("P", "pt", "", "")
	importer := gofpdi.NewImporter()
	rs := io.ReadSeeker(bytes.NewReader(inputPDF))

	for i, page := range doc.Pages {
		w := float64(page.BBox.X2) * 72 / dpi
		h := float64(page.BBox.Y2) * 72 / dpi
		pdf.AddPageFormat("P", fpdf.SizeType{Wd: w, Ht: h})

		tpl := importer.ImportPageFromStream(pdf, &rs, i+1, "/MediaBox")
		importer.UseImportedTemplate(pdf, tpl, 0, 0, w, 0)

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
