package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	appservices "github.com/asterwei416/cybercat/internal/application/services"
	"github.com/asterwei416/cybercat/internal/application/usecases"
	"github.com/asterwei416/cybercat/internal/domain/entities"
	domainservices "github.com/asterwei416/cybercat/internal/domain/services"
	"github.com/asterwei416/cybercat/internal/domain/valueobjects"
	"github.com/asterwei416/cybercat/internal/infrastructure/repositories"
)

type stubAnalysisService struct {
	calls  int
	result *entities.AnalysisResult
	err    error
}

func (s *stubAnalysisService) Analyze(ctx context.Context, frame *entities.CapturedFrame) (*entities.AnalysisResult, error) {
	s.calls++
	return s.result, s.err
}

type stubGenerationService struct {
	calls int
	image *entities.GeneratedImage
	err   error
}

func (s *stubGenerationService) Generate(ctx context.Context, visualTraits string) (*entities.GeneratedImage, error) {
	s.calls++
	return s.image, s.err
}

func catResult(ferocity, chaos int) *entities.AnalysisResult {
	return entities.NewAnalysisResult(true, "Neon Claw", "🐱", "A menacing crouch backed by unsheathed claws.", "black cat", valueobjects.StatBlock{
		Cuteness: 60,
		Ferocity: ferocity,
		Agility:  70,
		Chaos:    chaos,
		Hunger:   40,
		Defense:  55,
	})
}

func newTestHandler(analysis *stubAnalysisService, generation *stubGenerationService) (*ScanHandler, *appservices.SessionService) {
	session := appservices.NewSessionService()
	scans := repositories.NewMemoryScanRepository()
	uc := usecases.NewScanUseCase(domainservices.NewCaptureService(), analysis, generation, scans, session)
	return NewScanHandler(uc, session, scans), session
}

func testRouter(handler *ScanHandler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/scan", handler.HandleScan).Methods("POST")
	r.HandleFunc("/api/reset", handler.HandleReset).Methods("POST")
	r.HandleFunc("/api/scans/latest", handler.HandleLatestScan).Methods("GET")
	r.HandleFunc("/api/scans/{id}", handler.HandleScanByID).Methods("GET")
	r.HandleFunc("/healthz", handler.HandleHealth).Methods("GET")
	return r
}

func framePNG(t *testing.T) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			img.Set(x, y, color.RGBA{120, 60, 200, 255})
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("Failed to encode fixture: %v", err)
	}
	return buf.Bytes()
}

func scanRequest(t *testing.T, frame []byte, source string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("frame", "frame.png")
	if err != nil {
		t.Fatalf("Failed to build form: %v", err)
	}
	if _, err := part.Write(frame); err != nil {
		t.Fatalf("Failed to write frame: %v", err)
	}
	if err := writer.WriteField("source", source); err != nil {
		t.Fatalf("Failed to write source: %v", err)
	}
	if err := writer.WriteField("streamActive", "false"); err != nil {
		t.Fatalf("Failed to write streamActive: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close form: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/scan", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return body
}

func TestHandleScan(t *testing.T) {
	t.Run("successful scan returns analysis, tier, radar and portrait", func(t *testing.T) {
		analysis := &stubAnalysisService{result: catResult(90, 75)}
		generation := &stubGenerationService{image: entities.NewGeneratedImage([]byte{0x89, 0x50, 0x4e}, "image/png")}
		handler, _ := newTestHandler(analysis, generation)

		rec := httptest.NewRecorder()
		testRouter(handler).ServeHTTP(rec, scanRequest(t, framePNG(t), "file"))

		if rec.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200; body: %s", rec.Code, rec.Body.String())
		}
		body := decodeBody(t, rec)

		if body["success"] != true {
			t.Errorf("Expected success response")
		}
		if body["threatTier"] != string(domainservices.TierExtreme) {
			t.Errorf("threatTier = %v, want %q", body["threatTier"], domainservices.TierExtreme)
		}
		if body["alert"] != true {
			t.Errorf("Extreme tier must be flagged as an alert state")
		}

		radar, ok := body["radar"].(map[string]interface{})
		if !ok {
			t.Fatalf("Missing radar payload")
		}
		labels, _ := radar["labels"].([]interface{})
		if len(labels) != 6 || labels[0] != "cuteness" || labels[5] != "defense" {
			t.Errorf("Radar axis order wrong: %v", labels)
		}

		if _, ok := body["image"]; !ok {
			t.Errorf("Expected a portrait in the response")
		}
		if _, ok := body["imageError"]; ok {
			t.Errorf("No imageError expected on success")
		}
	})

	t.Run("trigger while busy issues no remote calls", func(t *testing.T) {
		analysis := &stubAnalysisService{result: catResult(10, 10)}
		generation := &stubGenerationService{}
		handler, session := newTestHandler(analysis, generation)

		if err := session.Begin(); err != nil {
			t.Fatalf("Begin() error = %v", err)
		}

		rec := httptest.NewRecorder()
		testRouter(handler).ServeHTTP(rec, scanRequest(t, framePNG(t), "file"))

		if rec.Code != http.StatusConflict {
			t.Errorf("Status = %d, want 409", rec.Code)
		}
		if analysis.calls != 0 || generation.calls != 0 {
			t.Errorf("Busy trigger reached the remote services")
		}
	})

	t.Run("generation failure keeps the analysis and reports the image error", func(t *testing.T) {
		analysis := &stubAnalysisService{result: catResult(90, 75)}
		generation := &stubGenerationService{err: fmt.Errorf("%w: zero parts", entities.ErrNoImageReturned)}
		handler, _ := newTestHandler(analysis, generation)

		rec := httptest.NewRecorder()
		testRouter(handler).ServeHTTP(rec, scanRequest(t, framePNG(t), "file"))

		if rec.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200; generation failures are non-fatal", rec.Code)
		}
		body := decodeBody(t, rec)

		if _, ok := body["image"]; ok {
			t.Errorf("No portrait expected after a generation failure")
		}
		if _, ok := body["imageError"]; !ok {
			t.Errorf("Expected imageError in the response")
		}
		analysisBody, _ := body["analysis"].(map[string]interface{})
		if analysisBody == nil || analysisBody["title"] != "Neon Claw" {
			t.Errorf("Analysis fields must remain intact: %v", body["analysis"])
		}
		if body["threatTier"] != string(domainservices.TierExtreme) {
			t.Errorf("Threat tier must remain intact")
		}
	})

	t.Run("undecodable upload is unprocessable", func(t *testing.T) {
		handler, _ := newTestHandler(&stubAnalysisService{result: catResult(1, 1)}, &stubGenerationService{})

		rec := httptest.NewRecorder()
		testRouter(handler).ServeHTTP(rec, scanRequest(t, []byte("garbage"), "file"))

		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("Status = %d, want 422", rec.Code)
		}
	})

	t.Run("schema violation maps to bad gateway", func(t *testing.T) {
		analysis := &stubAnalysisService{err: fmt.Errorf("%w: missing field title", entities.ErrSchemaViolation)}
		handler, _ := newTestHandler(analysis, &stubGenerationService{})

		rec := httptest.NewRecorder()
		testRouter(handler).ServeHTTP(rec, scanRequest(t, framePNG(t), "file"))

		if rec.Code != http.StatusBadGateway {
			t.Errorf("Status = %d, want 502", rec.Code)
		}
		body := decodeBody(t, rec)
		if msg, _ := body["error"].(string); !strings.Contains(msg, "ANALYSIS GARBLED") {
			t.Errorf("Unexpected status message: %v", body["error"])
		}
	})

	t.Run("missing frame is a bad request", func(t *testing.T) {
		handler, _ := newTestHandler(&stubAnalysisService{}, &stubGenerationService{})

		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		writer.WriteField("source", "file")
		writer.Close()

		req := httptest.NewRequest(http.MethodPost, "/api/scan", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		rec := httptest.NewRecorder()
		testRouter(handler).ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Status = %d, want 400", rec.Code)
		}
	})
}

func TestHandleReset(t *testing.T) {
	t.Run("full reset with active stream resumes the camera", func(t *testing.T) {
		handler, _ := newTestHandler(&stubAnalysisService{}, &stubGenerationService{})

		req := httptest.NewRequest(http.MethodPost, "/api/reset", strings.NewReader(`{"full":true,"streamActive":true}`))
		rec := httptest.NewRecorder()
		testRouter(handler).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Status = %d, want 200", rec.Code)
		}
		body := decodeBody(t, rec)
		if body["resumeCamera"] != true {
			t.Errorf("Expected resumeCamera true with an active stream")
		}
	})

	t.Run("full reset without stream shows the placeholder", func(t *testing.T) {
		handler, _ := newTestHandler(&stubAnalysisService{}, &stubGenerationService{})

		req := httptest.NewRequest(http.MethodPost, "/api/reset", strings.NewReader(`{"full":true,"streamActive":false}`))
		rec := httptest.NewRecorder()
		testRouter(handler).ServeHTTP(rec, req)

		body := decodeBody(t, rec)
		if body["resumeCamera"] != false {
			t.Errorf("Expected resumeCamera false without a stream")
		}
	})

	t.Run("partial reset is not reported as full", func(t *testing.T) {
		handler, _ := newTestHandler(&stubAnalysisService{}, &stubGenerationService{})

		req := httptest.NewRequest(http.MethodPost, "/api/reset", strings.NewReader(`{"full":false}`))
		rec := httptest.NewRecorder()
		testRouter(handler).ServeHTTP(rec, req)

		body := decodeBody(t, rec)
		if body["full"] != false {
			t.Errorf("Partial reset reported as full")
		}
	})

	t.Run("reset during an in-flight scan is refused", func(t *testing.T) {
		handler, session := newTestHandler(&stubAnalysisService{}, &stubGenerationService{})
		if err := session.Begin(); err != nil {
			t.Fatalf("Begin() error = %v", err)
		}

		req := httptest.NewRequest(http.MethodPost, "/api/reset", strings.NewReader(`{"full":true}`))
		rec := httptest.NewRecorder()
		testRouter(handler).ServeHTTP(rec, req)

		if rec.Code != http.StatusConflict {
			t.Errorf("Status = %d, want 409", rec.Code)
		}
		if !session.State().Busy() {
			t.Errorf("Refused reset must leave the scan guard held")
		}
	})
}

func TestHandleLatestScan(t *testing.T) {
	analysis := &stubAnalysisService{result: catResult(20, 20)}
	generation := &stubGenerationService{image: entities.NewGeneratedImage([]byte{1, 2, 3}, "image/png")}
	handler, _ := newTestHandler(analysis, generation)
	router := testRouter(handler)

	t.Run("no live scan answers 404", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scans/latest", nil))

		if rec.Code != http.StatusNotFound {
			t.Errorf("Status = %d, want 404", rec.Code)
		}
	})

	t.Run("replays the last scan after a successful run", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, scanRequest(t, framePNG(t), "file"))
		if rec.Code != http.StatusOK {
			t.Fatalf("Scan status = %d, want 200", rec.Code)
		}
		scanBody := decodeBody(t, rec)

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scans/latest", nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("Latest status = %d, want 200", rec.Code)
		}
		body := decodeBody(t, rec)

		if body["scanId"] != scanBody["scanId"] {
			t.Errorf("Latest returned a different scan: %v vs %v", body["scanId"], scanBody["scanId"])
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scans/"+body["scanId"].(string), nil))
		if rec.Code != http.StatusOK {
			t.Errorf("FindByID status = %d, want 200", rec.Code)
		}
	})

	t.Run("full reset invalidates the replay", func(t *testing.T) {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, scanRequest(t, framePNG(t), "file"))
		if rec.Code != http.StatusOK {
			t.Fatalf("Scan status = %d, want 200", rec.Code)
		}

		req := httptest.NewRequest(http.MethodPost, "/api/reset", strings.NewReader(`{"full":true,"streamActive":false}`))
		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("Reset status = %d, want 200", rec.Code)
		}

		rec = httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/scans/latest", nil))
		if rec.Code != http.StatusNotFound {
			t.Errorf("Status after full reset = %d, want 404", rec.Code)
		}
	})
}
