package overlay

import (
	"fmt"
	"regexp"
	"strings"
)

// LayerCheckResult contains the results of checking for OCR layers
type LayerCheckResult struct {
	Layers       []string // All detected layers
	HasOCRLayer  bool     // True if the specified OCR layer exists
	OCRLayerName string   // Name of the detected OCR layer (if any)
	Warnings     []string // Any warnings about potential OCR layers
}

var ocgPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/Type\s*/OCG\s*/Name\s*\(([^)]+)\)`),
	regexp.MustCompile(`<</Type/OCG/Name\(([^)]+)\)`),
	regexp.MustCompile(`/Name\s*\(([^)]+)\)[\s\S]{1,50}/Type\s*/OCG`),
}

// DetectLayers finds optional content group (layer) names in raw PDF data.
func DetectLayers(pdfData []byte) []string {
	content := string(pdfData)

	var layers []string
	for _, pattern := range ocgPatterns {
		for _, match := range pattern.FindAllStringSubmatch(content, -1) {
			layers = append(layers, unescapePDFString(match[1]))
		}
	}

	// Layer names may be stored as UTF-16BE with a BOM
	for i, layer := range layers {
		if decoded, err := decodeUTF16BE([]byte(layer)); err == nil {
			layers[i] = decoded
		}
	}

	// Deduplicate
	unique := make([]string, 0, len(layers))
	seen := make(map[string]bool)
	for _, l := range layers {
		if !seen[l] {
			seen[l] = true
			unique = append(unique, l)
		}
	}
	return unique
}

// CheckExistingLayers checks whether a PDF already carries an OCR layer
// matching the given base name.
func CheckExistingLayers(pdfData []byte, ocrLayerName string) LayerCheckResult {
	result := LayerCheckResult{Layers: DetectLayers(pdfData)}

	// Layer names carry a page suffix, so match the base name leniently
	pageLayerPattern := regexp.MustCompile(fmt.Sprintf(`^%s\s*\(Page\s*\d+.*`, regexp.QuoteMeta(ocrLayerName)))

	for _, layer := range result.Layers {
		if layer == ocrLayerName || pageLayerPattern.MatchString(layer) {
			result.HasOCRLayer = true
			result.OCRLayerName = layer
			break
		}

		if strings.Contains(strings.ToLower(layer), "ocr") &&
			!strings.HasPrefix(layer, ocrLayerName) {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("existing layer detected that might contain OCR: %s", layer))
		}
	}

	return result
}

func unescapePDFString(s string) string {
	s = strings.ReplaceAll(s, "\\(", "(")
	s = strings.ReplaceAll(s, "\\)", ")")
	s = strings.ReplaceAll(s, "\\\\", "\\")
	return s
}

func decodeUTF16BE(b []byte) (string, error) {
	if len(b) < 2 || b[0] != 0xFE || b[1] != 0xFF {
		return "", fmt.Errorf("no BOM detected, cannot confirm UTF-16BE")
	}
	b = b[2:]
	var runes []rune
	for i := 0; i+1 < len(b); i += 2 {
		runes = append(runes, rune(uint16(b[i])<<8|uint16(b[i+1])))
	}
	return string(runes), nil
}
