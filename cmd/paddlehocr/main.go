// paddlehocr is a command-line tool for running OCR on page images with
// PaddleOCR and converting the detections to hOCR and searchable PDFs.
//
// Recognition runs either against a remote PaddleOCR HTTP service or an
// in-process Tesseract engine when no remote URL is configured. The raw
// detections are converted to hOCR with estimated per-word bounding boxes,
// and can be stamped onto the page image as an invisible PDF text layer.
//
// Configuration:
//
// An optional YAML configuration file supplies service settings:
//
//	remote_url: "http://localhost:8080"
//	timeout_seconds: 30
//	language: "eng"
//	max_dimension: 3000
//
// Usage:
//
//	paddlehocr -image page.png [options]
//
// Required flags:
//
//	-image string   Path to the input page image
//
// Output options (at least one required):
//
//	-hocr string    Path to save hOCR output
//	-text string    Path to save plain text output
//	-output string  Path to save a searchable PDF built from the image
//
// Engine options:
//
//	-config string  Path to the YAML configuration file
//	-remote string  Base URL of a PaddleOCR service (overrides config)
//	-lang string    OCR language as a Tesseract-style code (e.g. eng, fra, chi_sim)
//
// PDF options:
//
//	-pdf string     Existing PDF to apply the OCR layer onto instead of
//	                assembling a new one from the image
//	-force          Apply OCR even if the output already has an OCR layer
//	-debug          Render the OCR text visibly in red for inspection
//
// Example:
//
//	paddlehocr -image scan.png -hocr scan.hocr -text scan.txt
//	paddlehocr -image scan.png -remote http://ocr.internal:8080 -lang fra -output scan_ocr.pdf
//	paddlehocr -image scan.png -pdf scan.pdf -output scan_ocr.pdf
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/gardar/paddlehocr/pkg/overlay"
	"github.com/gardar/paddlehocr/pkg/paddle"
)

type yamlConfig struct {
	RemoteURL      string `yaml:"remote_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	Language       string `yaml:"language"`
	MaxDimension   int    `yaml:"max_dimension"`
}

// loadConfig reads the optional YAML configuration file
func loadConfig(path string) (yamlConfig, error) {
	var yc yamlConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return yc, err
	}
	if err := yaml.Unmarshal(data, &yc); err != nil {
		return yc, err
	}
	return yc, nil
}

func main() {
	// Required flags.
	imagePath := flag.String("image", "", "Path to the input page image (required)")

	// Output flags
	hocrPath := flag.String("hocr", "", "Path to save hOCR output")
	textPath := flag.String("text", "", "Path to save plain text output")
	outputPath := flag.String("output", "", "Path to save a searchable PDF built from the image")

	// Engine flags
	configPath := flag.String("config", "", "Path to the config YAML file")
	remoteURL := flag.String("remote", "", "Base URL of a PaddleOCR service (overrides config)")
	lang := flag.String("lang", "", "OCR language as a Tesseract-style code (e.g. eng, fra, chi_sim)")

	// PDF flags
	pdfPath := flag.String("pdf", "", "Existing PDF to apply the OCR layer onto (instead of assembling from the image)")
	force := flag.Bool("force", false, "Apply OCR even if the output already has an OCR layer")
	debug := flag.Bool("debug", false, "Render the OCR text visibly in red for inspection")

	flag.Parse()

	// Create a map of provided flags to validate
	providedFlags := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) {
		providedFlags[f.Name] = true
	})

	if *imagePath == "" {
		fmt.Fprintln(os.Stderr, "Error: -image flag is required")
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Validate that provided output flags have values
	hasError := false
	validateFlag := func(name string, value string) {
		if providedFlags[name] && value == "" {
			fmt.Fprintf(os.Stderr, "Error: -%s flag requires a value\n", name)
			hasError = true
		}
	}

	validateFlag("hocr", *hocrPath)
	validateFlag("text", *textPath)
	validateFlag("output", *outputPath)
	validateFlag("config", *configPath)
	validateFlag("remote", *remoteURL)
	validateFlag("pdf", *pdfPath)

	if hasError {
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Check if at least one output flag is provided
	if *hocrPath == "" && *textPath == "" && *outputPath == "" {
		fmt.Fprintln(os.Stderr, "Error: At least one output flag must be provided (-hocr, -text, or -output)")
		fmt.Fprintln(os.Stderr, "Usage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	// Load config from file if provided.
	var cfg yamlConfig
	if *configPath != "" {
		var err error
		cfg, err = loadConfig(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
	}

	// Flags take precedence over the configuration file
	if *remoteURL != "" {
		cfg.RemoteURL = *remoteURL
	}
	if *lang != "" {
		cfg.Language = *lang
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	// Select the OCR engine at startup so a missing backend fails fast
	var engine paddle.Engine
	if cfg.RemoteURL != "" {
		remote := paddle.NewRemote(cfg.RemoteURL, paddle.EngineLanguage(cfg.Language))
		remote.Logger = logger
		if cfg.TimeoutSeconds > 0 {
			remote.HTTPClient = &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
		}
		if cfg.MaxDimension > 0 {
			remote.MaxDimension = cfg.MaxDimension
		}
		engine = remote
	} else {
		tess := paddle.NewTesseract(cfg.Language)
		tess.Logger = logger
		if err := tess.Check(); err != nil {
			log.Fatalf("No remote URL configured and local OCR is unavailable: %v", err)
		}
		engine = tess
	}

	fmt.Printf("Processing %s with %s\n", *imagePath, engine.Name())

	ctx := context.Background()
	result, err := paddle.GenerateHOCR(ctx, engine, *imagePath, paddle.Options{
		Lang:   cfg.Language,
		Logger: logger,
	})
	if err != nil {
		log.Fatalf("OCR failed: %v", err)
	}

	// Write hOCR and text output if flags are provided.
	if *hocrPath != "" || *textPath != "" {
		if err := paddle.WritePage(result, *hocrPath, *textPath); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		if *hocrPath != "" {
			fmt.Println("hOCR output saved to:", *hocrPath)
		}
		if *textPath != "" {
			fmt.Println("Text output saved to:", *textPath)
		}
	}

	// Produce a searchable PDF if flag is provided.
	if *outputPath != "" {
		ocrConfig := overlay.DefaultConfig()
		ocrConfig.Force = *force
		ocrConfig.Debug = *debug
		ocrConfig.Logger = logger

		var pdfBytes []byte
		if *pdfPath != "" {
			// Apply the OCR layer onto the existing PDF
			inputPDF, err := os.ReadFile(*pdfPath)
			if err != nil {
				log.Fatalf("Failed to read PDF file: %v", err)
			}
			pdfBytes, err = overlay.Apply(inputPDF, result.HOCR, ocrConfig)
			if err != nil {
				log.Fatalf("Failed to apply OCR to PDF: %v", err)
			}
		} else {
			// Assemble a new PDF from the page image
			imageData, err := os.ReadFile(*imagePath)
			if err != nil {
				log.Fatalf("Failed to read image file: %v", err)
			}
			pdfBytes, err = overlay.Assemble(result.HOCR, [][]byte{imageData}, ocrConfig)
			if err != nil {
				log.Fatalf("Failed to create searchable PDF: %v", err)
			}
		}

		if err := os.WriteFile(*outputPath, pdfBytes, 0644); err != nil {
			log.Fatalf("Failed to write PDF: %v", err)
		}
		fmt.Println("Searchable PDF saved to:", *outputPath)
	}
}
