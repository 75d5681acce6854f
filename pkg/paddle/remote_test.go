package paddle

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const sampleResponse = `{
	"result": {
		"ocrResults": [{
			"rec_texts": ["Hello world", "Test"],
			"rec_scores": [0.95, 0.80],
			"rec_boxes": [[10, 10, 200, 40], [10, 50, 100, 80]]
		}]
	}
}`

func TestRemotePredict(t *testing.T) {
	var gotReq struct {
		File            string `json:"file"`
		FileType        int    `json:"fileType"`
		ReturnWordBox   bool   `json:"returnWordBox"`
		Visualize       bool   `json:"visualize"`
		UseDocUnwarping bool   `json:"useDocUnwarping"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method: got %s", r.Method)
		}
		if r.URL.Path != "/ocr" {
			t.Errorf("path: got %s", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type: got %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	engine := NewRemote(srv.URL, "en")
	result, err := engine.Predict(context.Background(), writeTestImage(t, 600, 400))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	// Request contract
	if gotReq.FileType != 1 {
		t.Errorf("fileType: got %d, want 1", gotReq.FileType)
	}
	if !gotReq.ReturnWordBox {
		t.Error("returnWordBox not set")
	}
	if gotReq.Visualize || gotReq.UseDocUnwarping {
		t.Error("visualize and useDocUnwarping must be disabled")
	}
	if _, err := base64.StdEncoding.DecodeString(gotReq.File); err != nil {
		t.Errorf("file field is not valid base64: %v", err)
	}

	// Response parsing
	if len(result.Texts) != 2 || result.Texts[0] != "Hello world" {
		t.Fatalf("texts: got %v", result.Texts)
	}
	if result.Scores[1] != 0.80 {
		t.Errorf("scores: got %v", result.Scores)
	}
	if result.Boxes[0] != (Quad{X1: 10, Y1: 10, X2: 200, Y2: 40}) {
		t.Errorf("boxes: got %+v", result.Boxes[0])
	}
	if result.BackendWidth != 600 || result.BackendHeight != 400 {
		t.Errorf("backend dimensions: %dx%d", result.BackendWidth, result.BackendHeight)
	}
}

func TestRemotePredict_ReportsTransportDimensions(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	engine := NewRemote(srv.URL, "en")
	engine.MaxDimension = 300

	result, err := engine.Predict(context.Background(), writeTestImage(t, 600, 400))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	// The service saw the downscaled copy, not the original
	if result.BackendWidth != 300 || result.BackendHeight != 200 {
		t.Fatalf("backend dimensions: %dx%d, want 300x200", result.BackendWidth, result.BackendHeight)
	}
}

func TestRemotePredict_EmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": {"ocrResults": []}}`))
	}))
	defer srv.Close()

	engine := NewRemote(srv.URL, "en")
	result, err := engine.Predict(context.Background(), writeTestImage(t, 100, 100))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if len(result.Texts) != 0 {
		t.Fatalf("texts: got %v, want none", result.Texts)
	}
	if result.BackendWidth != 100 {
		t.Fatalf("backend width: got %d", result.BackendWidth)
	}
}

func TestRemotePredict_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	engine := NewRemote(srv.URL, "en")
	_, err := engine.Predict(context.Background(), writeTestImage(t, 100, 100))
	if err == nil {
		t.Fatal("expected error for 500 response")
	}

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("error is not a *RemoteError: %v", err)
	}
}

func TestRemotePredict_MalformedJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"result": {`))
	}))
	defer srv.Close()

	engine := NewRemote(srv.URL, "en")
	_, err := engine.Predict(context.Background(), writeTestImage(t, 100, 100))

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("error is not a *RemoteError: %v", err)
	}
}

func TestRemotePredict_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // shut down before use

	engine := NewRemote(srv.URL, "en")
	_, err := engine.Predict(context.Background(), writeTestImage(t, 100, 100))

	var remoteErr *RemoteError
	if !errors.As(err, &remoteErr) {
		t.Fatalf("error is not a *RemoteError: %v", err)
	}
}

func TestRemotePredict_Polygons(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{
			"result": {
				"ocrResults": [{
					"rec_texts": ["tilted"],
					"rec_scores": [0.9],
					"rec_boxes": [],
					"rec_polys": [[[50, 10], [200, 30], [190, 60], [40, 40]]]
				}]
			}
		}`))
	}))
	defer srv.Close()

	engine := NewRemote(srv.URL, "en")
	result, err := engine.Predict(context.Background(), writeTestImage(t, 300, 100))
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}

	dets, err := result.Detections()
	if err != nil {
		t.Fatalf("Detections: %v", err)
	}
	d := dets[0]
	if d.X1 != 40 || d.Y1 != 10 || d.X2 != 200 || d.Y2 != 60 {
		t.Fatalf("polygon hull: got (%v,%v,%v,%v)", d.X1, d.Y1, d.X2, d.Y2)
	}
}
