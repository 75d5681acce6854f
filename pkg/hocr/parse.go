package hocr

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/text/encoding/charmap"
)

// Parse converts raw hOCR data into a structured Document.
func Parse(data []byte) (Document, error) {
	var result Document
	result.Metadata = make(map[string]string)

	// Figure out the character encoding
	content := string(data)
	encoding := "utf-8"
	if idx := strings.Index(content, "charset="); idx >= 0 {
		snippet := content[idx+len("charset="):]
		fields := strings.FieldsFunc(snippet, func(r rune) bool {
			return r == '"' || r == ';' || r == '\'' || r == '>' || r == ' '
		})
		if len(fields) > 0 && fields[0] != "" {
			encoding = strings.ToLower(fields[0])
		}
	}

	// Convert to UTF-8 if needed
	decoded := data
	if encoding != "utf-8" {
		var err error
		decoded, err = charmap.ISO8859_1.NewDecoder().Bytes(data)
		if err != nil {
			return result, fmt.Errorf("failed to decode %s: %w", encoding, err)
		}
	}

	doc, err := html.Parse(strings.NewReader(string(decoded)))
	if err != nil {
		return result, err
	}

	extractDocumentMeta(&result, doc)

	// Find and process all ocr_page elements
	var findPages func(*html.Node)
	findPages = func(n *html.Node) {
		if n.Type == html.ElementNode && hasClass(n, "ocr_page") {
			result.Pages = append(result.Pages, processPage(n))
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			findPages(c)
		}
	}
	findPages(doc)

	if len(result.Pages) == 0 {
		return result, fmt.Errorf("no ocr_page elements found in hOCR data")
	}
	return result, nil
}

// ParseTitle breaks down an hOCR title attribute into its components
// Example input: "bbox 100 200 300 400; x_wconf 95"
func ParseTitle(title string) map[string][]string {
	result := make(map[string][]string)
	for _, part := range strings.Split(title, ";") {
		items := strings.Fields(part)
		if len(items) > 0 {
			result[items[0]] = items[1:]
		}
	}
	return result
}

// ParseBBoxFromTitle extracts a bounding box from a title string
// Returns a structured BBox or nil if extraction fails
func ParseBBoxFromTitle(title string) *BBox {
	props := ParseTitle(title)
	if bbox, ok := props["bbox"]; ok && len(bbox) >= 4 {
		x1, _ := strconv.Atoi(bbox[0])
		y1, _ := strconv.Atoi(bbox[1])
		x2, _ := strconv.Atoi(bbox[2])
		y2, _ := strconv.Atoi(bbox[3])
		result := NewBBox(x1, y1, x2, y2)
		return &result
	}
	return nil
}

// extractDocumentMeta extracts document-level metadata from the head section
func extractDocumentMeta(result *Document, doc *html.Node) {
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "html":
				for _, a := range n.Attr {
					if a.Key == "lang" || a.Key == "xml:lang" {
						result.Language = a.Val
					}
				}
			case "title":
				if n.FirstChild != nil {
					result.Title = n.FirstChild.Data
				}
			case "meta":
				name, content := getAttrVal(n, "name"), getAttrVal(n, "content")
				if name != "" && content != "" {
					result.Metadata[name] = content
				}
			case "body":
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
}

// processPage extracts page information and its content areas. Paragraphs
// that appear outside any ocr_carea are wrapped in an implicit area so the
// parsed structure always follows page → area → paragraph.
func processPage(n *html.Node) Page {
	page := Page{ID: getAttrVal(n, "id")}
	if bbox := ParseBBoxFromTitle(getAttrVal(n, "title")); bbox != nil {
		page.BBox = *bbox
	}

	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.ElementNode {
			if hasClass(node, "ocr_carea") {
				page.Areas = append(page.Areas, processArea(node))
				return
			}
			if hasClass(node, "ocr_par") {
				par := processParagraph(node)
				page.Areas = append(page.Areas, Area{
					ID:         "c_" + par.ID,
					BBox:       par.BBox,
					Paragraphs: []Paragraph{par},
				})
				return
			}
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c)
	}

	return page
}

// processArea extracts area information and its paragraphs
func processArea(n *html.Node) Area {
	area := Area{ID: getAttrVal(n, "id")}
	if bbox := ParseBBoxFromTitle(getAttrVal(n, "title")); bbox != nil {
		area.BBox = *bbox
	}

	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.ElementNode && hasClass(node, "ocr_par") {
			area.Paragraphs = append(area.Paragraphs, processParagraph(node))
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c)
	}

	return area
}

// processParagraph extracts paragraph information and its lines
func processParagraph(n *html.Node) Paragraph {
	par := Paragraph{
		ID:   getAttrVal(n, "id"),
		Lang: getAttrVal(n, "lang"),
	}
	if bbox := ParseBBoxFromTitle(getAttrVal(n, "title")); bbox != nil {
		par.BBox = *bbox
	}

	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.ElementNode && hasClass(node, "ocr_line") {
			par.Lines = append(par.Lines, processLine(node))
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c)
	}

	return par
}

// processLine extracts line information and its words
func processLine(n *html.Node) Line {
	line := Line{ID: getAttrVal(n, "id")}
	title := getAttrVal(n, "title")
	if bbox := ParseBBoxFromTitle(title); bbox != nil {
		line.BBox = *bbox
	}
	props := ParseTitle(title)
	if baseline, ok := props["baseline"]; ok {
		line.Baseline = strings.Join(baseline, " ")
	}
	if conf, ok := props["x_wconf"]; ok && len(conf) > 0 {
		line.Confidence, _ = strconv.Atoi(conf[0])
	}

	var collect func(*html.Node)
	collect = func(node *html.Node) {
		if node.Type == html.ElementNode && hasClass(node, "ocrx_word") {
			line.Words = append(line.Words, processWord(node))
			return
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c)
	}

	return line
}

// processWord extracts a word's text and properties
func processWord(n *html.Node) Word {
	word := Word{ID: getAttrVal(n, "id")}
	title := getAttrVal(n, "title")
	if bbox := ParseBBoxFromTitle(title); bbox != nil {
		word.BBox = *bbox
	}
	props := ParseTitle(title)
	if conf, ok := props["x_wconf"]; ok && len(conf) > 0 {
		word.Confidence, _ = strconv.Atoi(conf[0])
	}
	word.Text = extractTextContent(n)
	return word
}

// extractTextContent gets all text from a node and its children. The HTML
// parser has already resolved character entities by this point.
func extractTextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var text string
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		text += extractTextContent(c)
	}
	return strings.TrimSpace(text)
}

func hasClass(n *html.Node, class string) bool {
	return strings.Contains(getAttrVal(n, "class"), class)
}

// getAttrVal returns the value of a specific attribute from a node
func getAttrVal(n *html.Node, attrName string) string {
	for _, attr := range n.Attr {
		if attr.Key == attrName {
			return attr.Val
		}
	}
	return ""
}
