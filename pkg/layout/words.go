package layout

import (
	"strings"
	"unicode/utf8"
)

// EstimateWords partitions a line's bounding box into per-word sub-boxes.
//
// OCR backends report line-level geometry only, so word boxes are estimated:
// a uniform inter-word space width is reserved out of the line width, and the
// remaining width is distributed across words proportionally to each word's
// character count. The last word is snapped to the line's right edge so
// integer rounding never leaves a gap. All words share the line's vertical
// extent.
func EstimateWords(text string, line Box) []Word {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	lineWidth := line.Width()
	totalChars := 0
	for _, w := range words {
		totalChars += utf8.RuneCountInString(w)
	}
	numSpaces := len(words) - 1

	// Treat each inter-word gap as one character cell, then reserve that
	// much width per gap before allocating the rest to letters.
	spaceWidth := 0
	if totalChars+numSpaces > 0 {
		spaceWidth = lineWidth / (totalChars + numSpaces)
	}
	wordArea := lineWidth - spaceWidth*numSpaces

	out := make([]Word, 0, len(words))
	x := line.X1
	for i, w := range words {
		var wordWidth int
		if totalChars > 0 {
			wordWidth = wordArea * utf8.RuneCountInString(w) / totalChars
		} else {
			wordWidth = lineWidth / len(words)
		}

		x2 := x + wordWidth
		if i == len(words)-1 {
			// Absorb rounding drift at the line's right edge.
			x2 = line.X2
		}

		out = append(out, Word{
			Text: w,
			Box:  Box{X1: x, Y1: line.Y1, X2: x2, Y2: line.Y2},
		})
		x = x2 + spaceWidth
	}
	return out
}
