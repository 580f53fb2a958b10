package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/intakeworks/docvalid/internal/docproc"
	"github.com/intakeworks/docvalid/internal/model"
)

type analyzeDocumentRequest struct {
	Document docproc.DocumentInput `json:"document"`
	Context  model.CaseContext     `json:"context"`
}

type analyzeCaseRequest struct {
	Documents []docproc.DocumentInput `json:"documents"`
	Context   model.CaseContext       `json:"context"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAnalyzeDocument(w http.ResponseWriter, r *http.Request) {
	var req analyzeDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Document.RawText == "" {
		writeError(w, http.StatusBadRequest, "document.raw_text is required")
		return
	}

	result := s.processor.ProcessDocument(r.Context(), req.Document, req.Context)
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleAnalyzeCase(w http.ResponseWriter, r *http.Request) {
	var req analyzeCaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Documents) == 0 {
		writeError(w, http.StatusBadRequest, "documents is required")
		return
	}

	result, err := s.processor.AnalyzeCase(r.Context(), req.Documents, req.Context)
	if err != nil {
		zap.L().Error("case analysis failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "case analysis failed")
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleMetricsReport(w http.ResponseWriter, r *http.Request) {
	windowDays := 30
	if v := r.URL.Query().Get("window_days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "window_days must be a positive integer")
			return
		}
		windowDays = n
	}
	writeJSON(w, http.StatusOK, s.processor.Aggregator().Report(windowDays))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("write response", zap.Error(err))
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
