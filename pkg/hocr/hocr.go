// Package hocr implements generation and parsing of hOCR data, the
// HTML-based standard format for representing OCR results.
//
// This package provides:
//
// - An object model for the hOCR hierarchy produced by line-level OCR engines
// - Functions for generating valid hOCR HTML from Go structures
// - Functions for parsing hOCR HTML back into the object model
// - Utilities for working with bbox titles and confidence annotations
//
// The hierarchy follows the hOCR format: Document → Pages → Areas →
// Paragraphs → Lines → Words. Backends that report one detection per text
// line produce a flat structure with one area and one paragraph per line;
// the model supports that shape directly without grouping heuristics.
//
// Key Types:
//
// - Document: top-level structure for an entire hOCR document
// - Page: a single page with class 'ocr_page'
// - Area: a content area with class 'ocr_carea'
// - Paragraph: a paragraph with class 'ocr_par'
// - Line: a line of text with class 'ocr_line'
// - Word: a single word with class 'ocrx_word'
// - BBox: a rectangle in integer pixel coordinates
//
// Main Functions:
//
// - Generate: renders an hOCR HTML document from the object model
// - Parse: reads hOCR HTML into the object model
// - ExtractText: recovers the plain-text transcript from a parsed document
package hocr
