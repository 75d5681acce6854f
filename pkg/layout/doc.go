// Package layout converts line-level OCR detections into a per-page layout
// with geometry expressed in the coordinate space of the original page image.
//
// OCR backends typically process a resized or otherwise preprocessed copy of
// the page, so their coordinates live in "backend space". This package
// provides:
//
// - Scale factors mapping backend-space coordinates back to original pixels
// - Synthesized per-word bounding boxes estimated from line-level geometry
// - A Document structure carrying the normalized lines, words, and page size
//
// Key Types:
//
// - Scale: multiplicative (x, y) factors applied to every backend coordinate
// - Detection: one recognized line with text, confidence, and a bounding box
// - Line, Word: normalized layout elements in integer page pixels
// - Document: the ordered page layout handed to the hOCR serializer
//
// Main Functions:
//
// - ResolveScale: computes the backend-to-page scale factors
// - EstimateWords: partitions a line box into per-word boxes
// - BuildDocument: applies scaling, clamping, and word estimation to a page
package layout
