package layout

import "strings"

// Box is an axis-aligned rectangle in integer page pixels.
type Box struct {
	X1 int // Left coordinate
	Y1 int // Top coordinate
	X2 int // Right coordinate
	Y2 int // Bottom coordinate
}

// Width returns the horizontal extent of the box.
func (b Box) Width() int { return b.X2 - b.X1 }

// Height returns the vertical extent of the box.
func (b Box) Height() int { return b.Y2 - b.Y1 }

// Detection is one recognized text line as reported by an OCR backend,
// with its bounding box still in backend-space coordinates.
type Detection struct {
	Text       string  // Recognized text, may span multiple words
	Confidence float64 // Recognition confidence in [0,1]
	X1         float64 // Backend-space bounding box
	Y1         float64
	X2         float64
	Y2         float64
}

// Word is a synthesized per-word bounding box within a line. The box is an
// engineered approximation from character-count proportions, not a measured
// extent.
type Word struct {
	Text string
	Box  Box
}

// Line is one normalized detection in page space with its estimated words.
type Line struct {
	Text       string
	Confidence int // Integer percentage 0-100
	Box        Box
	Words      []Word
}

// Document is the complete layout for one page: the ordered lines in
// detection order plus the page pixel dimensions. It is the sole payload
// handed to the hOCR serializer.
type Document struct {
	Width  int
	Height int
	Lines  []Line
}

// BuildDocument normalizes raw detections into a page layout: backend-space
// geometry is scaled to page space, clamped to the page rectangle, and split
// into estimated word boxes. Detections with empty text are dropped.
// The backend's detection order is preserved, never re-sorted.
func BuildDocument(width, height int, detections []Detection, sc Scale) Document {
	doc := Document{Width: width, Height: height}
	for _, det := range detections {
		if det.Text == "" {
			continue
		}
		box := sc.Box(det.X1, det.Y1, det.X2, det.Y2).Clamp(width, height)
		line := Line{
			Text:       det.Text,
			Confidence: ConfidencePercent(det.Confidence),
			Box:        box,
			Words:      EstimateWords(det.Text, box),
		}
		doc.Lines = append(doc.Lines, line)
	}
	return doc
}

// Transcript joins the recognized line texts in detection order with newline
// separators.
func (d Document) Transcript() string {
	texts := make([]string, len(d.Lines))
	for i, line := range d.Lines {
		texts[i] = line.Text
	}
	return strings.Join(texts, "\n")
}

// ConfidencePercent converts a [0,1] confidence score to a truncated integer
// percentage, clamped to [0,100].
func ConfidencePercent(score float64) int {
	return clamp(int(score*100), 0, 100)
}
