package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	appservices "github.com/asterwei416/cybercat/internal/application/services"
	"github.com/asterwei416/cybercat/internal/application/usecases"
	"github.com/asterwei416/cybercat/internal/domain/entities"
	domainrepos "github.com/asterwei416/cybercat/internal/domain/repositories"
	domainservices "github.com/asterwei416/cybercat/internal/domain/services"
	"github.com/asterwei416/cybercat/internal/domain/valueobjects"
)

const maxFrameUploadBytes = 32 << 20 // 32MB

type ScanHandler struct {
	scanUseCase *usecases.ScanUseCase
	session     *appservices.SessionService
	scans       domainrepos.ScanRepository
}

func NewScanHandler(scanUseCase *usecases.ScanUseCase, session *appservices.SessionService, scans domainrepos.ScanRepository) *ScanHandler {
	return &ScanHandler{
		scanUseCase: scanUseCase,
		session:     session,
		scans:       scans,
	}
}

// HandleScan runs one capture-analyze-generate pass. A generation
// failure still answers 200: the analysis is live and only the portrait
// slot is affected.
func (h *ScanHandler) HandleScan(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxFrameUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse form data")
		return
	}

	source := entities.CaptureSource(r.FormValue("source"))
	if source != entities.SourceCamera {
		source = entities.SourceFile
	}

	file, _, err := r.FormFile("frame")
	if err != nil {
		writeError(w, http.StatusBadRequest, "a frame is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to read frame data")
		return
	}

	input := usecases.ScanInput{
		Source:       source,
		Data:         data,
		StreamActive: r.FormValue("streamActive") == "true",
	}

	output, err := h.scanUseCase.Scan(r.Context(), input)
	if err != nil {
		slog.Error("scan failed", "source", source, "error", err)
		writeScanFailure(w, err)
		return
	}

	writeJSON(w, http.StatusOK, scanResponse(output))
}

// HandleReset restores the capture surface. Full resets drop the live
// result and portrait; partial resets only re-enable the trigger. A
// reset issued while a scan is in flight is refused so the scan guard
// is never dropped under a running pipeline.
func (h *ScanHandler) HandleReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Full         bool `json:"full"`
		StreamActive bool `json:"streamActive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid reset request")
		return
	}

	h.session.SetStreamActive(req.StreamActive)
	outcome, err := h.session.Reset(req.Full)
	if err != nil {
		writeError(w, http.StatusConflict, userMessage(err))
		return
	}

	slog.Info("session reset", "full", outcome.Full, "resumeCamera", outcome.ResumeCamera)

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":      true,
		"full":         outcome.Full,
		"resumeCamera": outcome.ResumeCamera,
	})
}

// HandleLatestScan replays the session's live scan so a reloaded
// dashboard can restore its result card. A full reset invalidates the
// replay: only the current record is live, never repository history.
func (h *ScanHandler) HandleLatestScan(w http.ResponseWriter, r *http.Request) {
	record := h.session.Current()
	if record == nil || record.Result() == nil {
		writeError(w, http.StatusNotFound, "no scan is live")
		return
	}

	writeJSON(w, http.StatusOK, recordResponse(record))
}

// HandleScanByID returns one stored scan record.
func (h *ScanHandler) HandleScanByID(w http.ResponseWriter, r *http.Request) {
	id := entities.ScanID(mux.Vars(r)["id"])

	record, err := h.scans.FindByID(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("scan not found: %s", id))
		return
	}

	writeJSON(w, http.StatusOK, recordResponse(record))
}

func (h *ScanHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"state":  h.session.State().String(),
	})
}

func scanResponse(output *usecases.ScanOutput) map[string]interface{} {
	response := recordResponse(output.Record)
	if output.ImageErr != nil {
		response["imageError"] = userMessage(output.ImageErr)
	}
	return response
}

func recordResponse(record *entities.ScanRecord) map[string]interface{} {
	result := record.Result()
	image := record.Image()

	tier := domainservices.DeriveThreatTier(result)
	stats := result.Stats()

	response := map[string]interface{}{
		"success": true,
		"scanId":  record.ID(),
		"analysis": map[string]interface{}{
			"isCat":        result.IsCat(),
			"title":        result.Title(),
			"emoji":        result.Emoji(),
			"description":  result.Description(),
			"visualTraits": result.VisualTraits(),
			"stats":        stats,
		},
		"threatTier": string(tier),
		"alert":      tier.Alert(),
		"radar": map[string]interface{}{
			"labels": valueobjects.RadarAxes,
			"values": stats.AxisValues(),
		},
	}

	if image != nil {
		response["image"] = map[string]string{
			"data": image.ToBase64(),
			"type": image.MimeType(),
		}
	}

	return response
}

func writeScanFailure(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entities.ErrScanBusy):
		writeError(w, http.StatusConflict, userMessage(err))
	case errors.Is(err, entities.ErrDeviceUnavailable), errors.Is(err, entities.ErrDecodeError):
		writeError(w, http.StatusUnprocessableEntity, userMessage(err))
	case errors.Is(err, entities.ErrRemoteError), errors.Is(err, entities.ErrSchemaViolation), errors.Is(err, entities.ErrNoImageReturned):
		writeError(w, http.StatusBadGateway, userMessage(err))
	default:
		writeError(w, http.StatusInternalServerError, userMessage(err))
	}
}

// userMessage maps the failure taxonomy to the status line text. Every
// failure becomes visible; nothing is swallowed silently.
func userMessage(err error) string {
	switch {
	case errors.Is(err, entities.ErrScanBusy):
		return "SCAN IN PROGRESS // 掃描中，請稍候"
	case errors.Is(err, entities.ErrDeviceUnavailable):
		return "CAMERA OFFLINE // 無法取得攝影機"
	case errors.Is(err, entities.ErrDecodeError):
		return "CORRUPT UPLOAD // 無法解析影像"
	case errors.Is(err, entities.ErrSchemaViolation):
		return "ANALYSIS GARBLED // 分析資料格式異常"
	case errors.Is(err, entities.ErrNoImageReturned):
		return "RENDER FAILED // 肖像生成失敗"
	case errors.Is(err, entities.ErrRemoteError):
		return "UPLINK FAILURE // 遠端服務異常"
	default:
		return "SYSTEM FAULT // 未知錯誤"
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{
		"success": false,
		"error":   message,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
