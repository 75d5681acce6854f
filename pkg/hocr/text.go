package hocr

import "strings"

// ExtractText recovers the plain-text transcript from a parsed document.
// Words are joined with single spaces, lines with newlines, pages with a
// blank line, following the document's element order.
func ExtractText(doc *Document) string {
	var builder strings.Builder

	for p, page := range doc.Pages {
		if p > 0 {
			builder.WriteString("\n\n")
		}
		first := true
		for _, area := range page.Areas {
			for _, par := range area.Paragraphs {
				for _, line := range par.Lines {
					if !first {
						builder.WriteString("\n")
					}
					first = false
					for w, word := range line.Words {
						if w > 0 {
							builder.WriteString(" ")
						}
						builder.WriteString(word.Text)
					}
				}
			}
		}
	}

	return builder.String()
}
