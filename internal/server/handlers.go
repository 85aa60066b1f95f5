package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/identware/identity-secure/internal/storage"
)

type errorResponse struct {
	Error string `json:"error"`
}

type textRequest struct {
	Text string `json:"text"`
}

type scanUploadResponse struct {
	ID          uint   `json:"id,omitempty"`
	Success     bool   `json:"success"`
	Title       string `json:"title"`
	Report      string `json:"report"`
	DetectedAny bool   `json:"detected_any"`
	RiskLevel   string `json:"risk_level"`
	RiskScore   int    `json:"risk_score"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleScanUpload accepts a multipart document upload, extracts its text
// and runs the full scan. Extraction failure is the one hard-failure path;
// detector trouble inside the pipeline degrades silently.
func (s *Server) handleScanUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.config.Scan.MaxUploadBytes)

	file, header, err := r.FormFile("document")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing document upload")
		return
	}
	defer file.Close()

	ex, _, err := s.extractor.ForFile(header.Filename)
	if err != nil {
		writeError(w, http.StatusUnsupportedMediaType, err.Error())
		return
	}

	text, err := ex.Extract(file)
	if err != nil {
		s.logger.Error("text extraction failed",
			zap.String("file", header.Filename), zap.Error(err))
		writeError(w, http.StatusUnprocessableEntity, "failed to extract document text")
		return
	}

	result := s.pipeline.Scan(r.Context(), text)

	resp := scanUploadResponse{
		Success:     result.Success,
		Title:       result.Title,
		Report:      result.Report,
		DetectedAny: result.DetectedAny,
		RiskLevel:   string(result.RiskLevel),
		RiskScore:   result.RiskScore,
	}

	if s.store != nil {
		model := &storage.ReportModel{
			UserID:      r.Header.Get("X-User-ID"),
			FileName:    header.Filename,
			Title:       result.Title,
			ReportText:  result.Report,
			RiskLevel:   string(result.RiskLevel),
			RiskScore:   result.RiskScore,
			DetectedAny: result.DetectedAny,
		}
		if err := s.store.SaveReport(model); err != nil {
			s.logger.Error("failed to persist report", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to save report")
			return
		}
		resp.ID = model.ID
	}

	writeJSON(w, http.StatusOK, resp)
}

// handleScanText runs the full scan on raw text without persisting anything.
func (s *Server) handleScanText(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result := s.pipeline.Scan(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, result)
}

// handleQuickScan is the pattern-only pre-check.
func (s *Server) handleQuickScan(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	writeJSON(w, http.StatusOK, s.pipeline.QuickScan(req.Text))
}

func (s *Server) handleListReports(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "report storage not configured")
		return
	}

	reports, err := s.store.ListReports(r.Header.Get("X-User-ID"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list reports")
		return
	}
	writeJSON(w, http.StatusOK, reports)
}

func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "report storage not configured")
		return
	}

	id, _ := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	report, err := s.store.GetReport(uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "report not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load report")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleDeleteReport(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		writeError(w, http.StatusServiceUnavailable, "report storage not configured")
		return
	}

	id, _ := strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
	if err := s.store.DeleteReport(uint(id)); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete report")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleAllowlistAdd records a reviewer-approved benign value.
func (s *Server) handleAllowlistAdd(w http.ResponseWriter, r *http.Request) {
	if s.allowlist == nil {
		writeError(w, http.StatusServiceUnavailable, "allowlist not configured")
		return
	}

	var req struct {
		Value string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Value == "" {
		writeError(w, http.StatusBadRequest, "value is required")
		return
	}

	if err := s.allowlist.Add(req.Value); err != nil {
		s.logger.Error("failed to update allowlist", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to save allowlist entry")
		return
	}

	s.logger.Info("allowlist entry added")
	w.WriteHeader(http.StatusOK)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
