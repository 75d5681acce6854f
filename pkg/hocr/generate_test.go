package hocr

import (
	"strings"
	"testing"
)

func sampleDocument() *Document {
	return &Document{
		Title:    "OCR Output",
		Language: "en",
		Metadata: map[string]string{
			"ocr-system":       "test-system",
			"ocr-capabilities": "ocr_page ocr_carea ocr_par ocr_line ocrx_word",
		},
		Pages: []Page{
			{
				ID:   "page_1",
				BBox: NewBBox(0, 0, 800, 600),
				Areas: []Area{
					{
						ID:   "carea_1",
						BBox: NewBBox(10, 10, 400, 40),
						Paragraphs: []Paragraph{
							{
								ID:   "par_1",
								Lang: "eng",
								BBox: NewBBox(10, 10, 400, 40),
								Lines: []Line{
									{
										ID:         "line_1",
										BBox:       NewBBox(10, 10, 400, 40),
										Baseline:   "0 0",
										Confidence: 95,
										Words: []Word{
											{ID: "word_1", Text: "Hello", BBox: NewBBox(10, 10, 200, 40), Confidence: 95},
											{ID: "word_2", Text: "world", BBox: NewBBox(210, 10, 400, 40), Confidence: 95},
										},
									},
								},
							},
						},
					},
				},
			},
		},
	}
}

func TestGenerate(t *testing.T) {
	html, err := Generate(sampleDocument())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	for _, want := range []string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`lang="en"`,
		`<title>OCR Output</title>`,
		`<meta name="ocr-system" content="test-system" />`,
		`<div class="ocr_page" id="page_1" title="bbox 0 0 800 600">`,
		`<div class="ocr_carea" id="carea_1" title="bbox 10 10 400 40">`,
		`<p class="ocr_par" id="par_1" lang="eng" title="bbox 10 10 400 40">`,
		`<span class="ocr_line" id="line_1" title="bbox 10 10 400 40; baseline 0 0; x_wconf 95">`,
		`<span class="ocrx_word" id="word_1" title="bbox 10 10 200 40; x_wconf 95">Hello</span>`,
	} {
		if !strings.Contains(html, want) {
			t.Errorf("generated hOCR missing %q", want)
		}
	}
}

func TestGenerate_EscapesWordText(t *testing.T) {
	doc := sampleDocument()
	doc.Pages[0].Areas[0].Paragraphs[0].Lines[0].Words[0].Text = "A & B < C"

	html, err := Generate(doc)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if !strings.Contains(html, ">A &amp; B &lt; C</span>") {
		t.Fatalf("word text not escaped:\n%s", html)
	}
	if strings.Contains(html, ">A & B < C</span>") {
		t.Fatal("raw markup characters leaked into output")
	}
}

func TestEscapeText(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a & b", "a &amp; b"},
		{"<span>", "&lt;span&gt;"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := EscapeText(tt.in); got != tt.want {
			t.Errorf("EscapeText(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGenerateParseRoundTrip(t *testing.T) {
	html, err := Generate(sampleDocument())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	parsed, err := Parse([]byte(html))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	if parsed.Title != "OCR Output" {
		t.Errorf("title: got %q", parsed.Title)
	}
	if parsed.Language != "en" {
		t.Errorf("language: got %q", parsed.Language)
	}
	if parsed.Metadata["ocr-system"] != "test-system" {
		t.Errorf("metadata: got %q", parsed.Metadata["ocr-system"])
	}

	if len(parsed.Pages) != 1 {
		t.Fatalf("got %d pages, want 1", len(parsed.Pages))
	}
	page := parsed.Pages[0]
	if page.BBox != NewBBox(0, 0, 800, 600) {
		t.Errorf("page bbox: got %+v", page.BBox)
	}

	if len(page.Areas) != 1 || len(page.Areas[0].Paragraphs) != 1 {
		t.Fatalf("unexpected structure: %+v", page)
	}
	line := page.Areas[0].Paragraphs[0].Lines[0]
	if line.Confidence != 95 {
		t.Errorf("line confidence: got %d", line.Confidence)
	}
	if line.Baseline != "0 0" {
		t.Errorf("line baseline: got %q", line.Baseline)
	}
	if len(line.Words) != 2 {
		t.Fatalf("got %d words, want 2", len(line.Words))
	}
	if line.Words[0].Text != "Hello" || line.Words[1].Text != "world" {
		t.Errorf("word texts: %q, %q", line.Words[0].Text, line.Words[1].Text)
	}
	if line.Words[0].BBox != NewBBox(10, 10, 200, 40) {
		t.Errorf("word bbox: got %+v", line.Words[0].BBox)
	}
}

func TestGenerateParseRoundTrip_EntityText(t *testing.T) {
	doc := sampleDocument()
	doc.Pages[0].Areas[0].Paragraphs[0].Lines[0].Words[0].Text = "R&D"

	html, err := Generate(doc)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	parsed, err := Parse([]byte(html))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	got := parsed.Pages[0].Areas[0].Paragraphs[0].Lines[0].Words[0].Text
	if got != "R&D" {
		t.Fatalf("entity round trip: got %q, want %q", got, "R&D")
	}
}
