package hocr

// Document represents the entire hOCR document structure
type Document struct {
	Title    string            // Document title
	Language string            // Document language
	Metadata map[string]string // Head metadata (ocr-system, ocr-capabilities, ...)
	Pages    []Page            // Pages in the document
}

// Page is one page of recognized text
// Corresponds to hOCR element with class: 'ocr_page'
type Page struct {
	ID    string // Unique identifier
	BBox  BBox   // Page rectangle, always anchored at (0,0)
	Areas []Area // Content areas on this page
}

// Class assign 'ocr_page' to 'Page' struct
func (Page) Class() string { return "ocr_page" }

// Area represents a content area (column or region)
// Corresponds to hOCR element with class: 'ocr_carea'
type Area struct {
	ID         string      // Unique identifier
	BBox       BBox        // Area coordinates
	Paragraphs []Paragraph // Paragraphs in this area
}

// Class assign 'ocr_carea' to 'Area' struct
func (Area) Class() string { return "ocr_carea" }

// Paragraph represents a paragraph within an area
// Corresponds to hOCR element with class: 'ocr_par'
type Paragraph struct {
	ID    string // Unique identifier
	Lang  string // Language code
	BBox  BBox   // Paragraph coordinates
	Lines []Line // Text lines in this paragraph
}

// Class assign 'ocr_par' to 'Paragraph' struct
func (Paragraph) Class() string { return "ocr_par" }

// Line represents a line of text
// Corresponds to hOCR element with class: 'ocr_line'
type Line struct {
	ID         string // Unique identifier
	BBox       BBox   // Line coordinates
	Baseline   string // Baseline information
	Confidence int    // Recognition confidence percentage (0-100)
	Words      []Word // Words in this line
}

// Class assign 'ocr_line' to 'Line' struct
func (Line) Class() string { return "ocr_line" }

// Word is a recognized word with bounding box
// Corresponds to hOCR element with class: 'ocrx_word'
type Word struct {
	ID         string // Unique identifier
	Text       string // The actual text content, unescaped
	BBox       BBox   // Word coordinates
	Confidence int    // Recognition confidence percentage (0-100)
}

// Class assign 'ocrx_word' to 'Word' struct
func (Word) Class() string { return "ocrx_word" }

// BBox represents a rectangle in the document
// Used to store hOCR 'bbox' property values in integer pixels
type BBox struct {
	X1 int // Left coordinate
	Y1 int // Top coordinate
	X2 int // Right coordinate
	Y2 int // Bottom coordinate
}

// NewBBox creates a bounding box from the x1, y1, x2, y2 coordinates found
// in hOCR 'bbox' properties. x1, y1 is the top-left corner and x2, y2 the
// bottom-right corner.
func NewBBox(x1, y1, x2, y2 int) BBox {
	return BBox{X1: x1, Y1: y1, X2: x2, Y2: y2}
}
