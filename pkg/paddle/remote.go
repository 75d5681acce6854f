package paddle

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultRemoteTimeout bounds one OCR exchange with the remote service.
const DefaultRemoteTimeout = 30 * time.Second

// Remote is the HTTP-backed OCR engine. It re-encodes the page image for
// transport, exchanges a JSON request/response with a PaddleOCR service, and
// reports the transported image dimensions so coordinates can be mapped back
// to the original page.
type Remote struct {
	BaseURL      string
	Lang         string       // Backend-native language code
	MaxDimension int          // Transport bounding box, defaults to MaxTransportDimension
	HTTPClient   *http.Client // Defaults to a client with DefaultRemoteTimeout
	Logger       *slog.Logger
}

// NewRemote creates a remote engine for the service at baseURL with the
// default timeout and transport limits.
func NewRemote(baseURL, lang string) *Remote {
	return &Remote{
		BaseURL:      baseURL,
		Lang:         lang,
		MaxDimension: MaxTransportDimension,
		HTTPClient:   &http.Client{Timeout: DefaultRemoteTimeout},
		Logger:       slog.Default(),
	}
}

func (r *Remote) Name() string { return "paddleocr-remote" }

// ocrRequest is the JSON body of one recognition request.
type ocrRequest struct {
	File            string `json:"file"`     // base64-encoded image bytes
	FileType        int    `json:"fileType"` // 1 = single image
	ReturnWordBox   bool   `json:"returnWordBox"`
	Visualize       bool   `json:"visualize"`
	UseDocUnwarping bool   `json:"useDocUnwarping"`
}

// ocrResponse is the JSON envelope the service returns. The three rec_*
// lists are parallel and equal length.
type ocrResponse struct {
	Result struct {
		OCRResults []struct {
			RecTexts  []string       `json:"rec_texts"`
			RecScores []float64      `json:"rec_scores"`
			RecBoxes  [][4]float64   `json:"rec_boxes"`
			RecPolys  [][][2]float64 `json:"rec_polys"`
		} `json:"ocrResults"`
	} `json:"result"`
}

// Predict sends the page image to the remote service and parses its
// response. Any failure in the exchange is wrapped into a *RemoteError; a
// missing or empty result array yields an empty result instead.
func (r *Remote) Predict(ctx context.Context, imagePath string) (RawResult, error) {
	prep, err := PrepareImage(imagePath, r.MaxDimension)
	if err != nil {
		return RawResult{}, &RemoteError{Err: err}
	}

	reqBody := ocrRequest{
		File:            base64.StdEncoding.EncodeToString(prep.JPEG),
		FileType:        1,
		ReturnWordBox:   true,
		Visualize:       false,
		UseDocUnwarping: false,
	}
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return RawResult{}, &RemoteError{Err: fmt.Errorf("marshal request: %w", err)}
	}

	url := strings.TrimRight(r.BaseURL, "/") + "/ocr"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return RawResult{}, &RemoteError{Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")

	r.logger().Debug("sending OCR request",
		"url", url,
		"payload_size", len(payload),
		"image", fmt.Sprintf("%dx%d", prep.Width, prep.Height))

	resp, err := r.client().Do(httpReq)
	if err != nil {
		return RawResult{}, &RemoteError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return RawResult{}, &RemoteError{
			Err: fmt.Errorf("server returned %s: %s", resp.Status, strings.TrimSpace(string(body))),
		}
	}

	var out ocrResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return RawResult{}, &RemoteError{Err: fmt.Errorf("decode response: %w", err)}
	}

	result := RawResult{
		BackendWidth:  prep.Width,
		BackendHeight: prep.Height,
	}
	if len(out.Result.OCRResults) == 0 {
		r.logger().Debug("remote service returned no results")
		return result, nil
	}

	first := out.Result.OCRResults[0]
	result.Texts = first.RecTexts
	result.Scores = first.RecScores
	for _, b := range first.RecBoxes {
		result.Boxes = append(result.Boxes, Quad{X1: b[0], Y1: b[1], X2: b[2], Y2: b[3]})
	}
	if len(first.RecBoxes) == 0 && len(first.RecPolys) > 0 {
		for _, poly := range first.RecPolys {
			pts := make([]Point, len(poly))
			for i, p := range poly {
				pts[i] = Point{X: p[0], Y: p[1]}
			}
			result.Polys = append(result.Polys, pts)
		}
	}

	r.logger().Debug("remote OCR complete", "detections", len(result.Texts))
	return result, nil
}

func (r *Remote) client() *http.Client {
	if r.HTTPClient == nil {
		return &http.Client{Timeout: DefaultRemoteTimeout}
	}
	return r.HTTPClient
}

func (r *Remote) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}
