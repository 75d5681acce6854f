package hocr

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed templates/hocr.tmpl
var templateFS embed.FS

// entityEscaper escapes the three characters with meaning in markup text.
// Applied exactly once per word at render time, so already-escaped input is
// never produced by this package.
var entityEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// EscapeText escapes '&', '<', and '>' for embedding in hOCR markup.
func EscapeText(s string) string {
	return entityEscaper.Replace(s)
}

// Generate creates an hOCR HTML document from the Document struct
// Uses the embedded template to generate a complete HTML document
func Generate(doc *Document) (string, error) {
	tmpl, err := template.New("hocr.tmpl").Funcs(template.FuncMap{
		"escape": EscapeText,
		"bbox": func(b BBox) string {
			return fmt.Sprintf("bbox %d %d %d %d", b.X1, b.Y1, b.X2, b.Y2)
		},
	}).ParseFS(templateFS, "templates/hocr.tmpl")
	if err != nil {
		return "", fmt.Errorf("error parsing hOCR template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, doc); err != nil {
		return "", fmt.Errorf("error rendering hOCR template: %w", err)
	}

	return buf.String(), nil
}
