// Package paddle provides OCR engines with a PaddleOCR-shaped result
// contract and converts their detections into hOCR documents.
//
// Two engines implement the same capability: Remote sends page images to a
// PaddleOCR HTTP service, and Tesseract runs recognition in-process through
// the gosseract client. Both return line-level detections (text, confidence,
// geometry) plus whatever backend-space dimensions are known, and both treat
// a page with no recognized text as a valid empty result.
//
// The conversion path normalizes detection geometry back to original page
// pixels, estimates per-word boxes, and serializes the result as hOCR plus a
// plain-text transcript:
//
//	engine.Predict → RawResult → layout.BuildDocument → hocr.Generate
//
// Main Functions:
//
// - GenerateHOCR: runs an engine on one page image and produces the hOCR
//   document, rendered HTML, and transcript
// - WritePage: persists a page result as an .hocr file and a text file
// - PrepareImage: downsizes and re-encodes an image for remote transport
// - EngineLanguage / TesseractLanguage: language-code aliasing between
//   Tesseract-style and PaddleOCR-native codes
package paddle
