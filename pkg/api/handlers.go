package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.opentelemetry.io/otel/attribute"

	"github.com/procsafe/hazard-engine/pkg/compliance"
	"github.com/procsafe/hazard-engine/pkg/hazop"
	"github.com/procsafe/hazard-engine/pkg/store"
)

// maxRequestBody caps request bodies at 4 MiB; HazOps studies carrying a
// few thousand entries stay well under this.
const maxRequestBody = 4 << 20

// validateRequest carries entries inline or references a stored analysis.
type validateRequest struct {
	AnalysisID string                  `json:"analysis_id,omitempty"`
	Entries    []hazop.AnalysisEntry   `json:"entries,omitempty"`
	Standards  []compliance.StandardID `json:"standards,omitempty"`
	Options    compliance.Options      `json:"options"`
}

// reportRequest extends validateRequest with report provenance fields.
type reportRequest struct {
	validateRequest
	ProjectID   string `json:"project_id"`
	GeneratedBy string `json:"generated_by_id"`
}

// Routes returns the engine's HTTP mux.
func (s *Service) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /compliance/validate", s.handleValidate)
	mux.HandleFunc("POST /compliance/report", s.handleGenerateReport)
	mux.HandleFunc("GET /compliance/report/{id}", s.handleGetReport)
	mux.HandleFunc("GET /compliance/quick-status", s.handleQuickStatus)
	mux.HandleFunc("POST /compliance/missing-requirements", s.handleMissingRequirements)
	mux.HandleFunc("GET /risk/summary", s.handleRiskSummary)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	return mux
}

// Handler wraps the mux with rate limiting and request logging.
func (s *Service) Handler(rl *GlobalRateLimiter) http.Handler {
	var h http.Handler = s.Routes()
	if rl != nil {
		h = rl.Middleware(h)
	}
	return RequestLogger(s.Logger, h)
}

func (s *Service) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		WriteBadRequest(w, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// loadEntries resolves a request's entries: inline entries win, otherwise
// the referenced analysis is loaded from the store. An unknown analysis
// resolves to zero entries, which downstream reports as not assessed.
func (s *Service) loadEntries(r *http.Request, req *validateRequest) ([]hazop.AnalysisEntry, error) {
	if len(req.Entries) > 0 {
		return req.Entries, nil
	}
	if req.AnalysisID == "" || s.Store == nil {
		return nil, nil
	}
	return s.Store.EntriesForAnalysis(r.Context(), req.AnalysisID)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (s *Service) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !s.decode(w, r, &req) {
		return
	}
	entries, err := s.loadEntries(r, &req)
	if err != nil {
		WriteInternal(w, err)
		return
	}

	_, done := s.track(r.Context(), "compliance.validate",
		attribute.Int("entry_count", len(entries)))
	result := s.Engine.ValidateCompliance(entries, req.Standards, req.Options)
	done(nil)

	if req.AnalysisID != "" {
		s.Cache.Invalidate(r.Context(), req.AnalysisID)
	}
	// Insufficient data is a valid assessment outcome, not an HTTP error.
	writeJSON(w, http.StatusOK, result)
}

func (s *Service) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	var req reportRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.ProjectID == "" {
		WriteBadRequest(w, "project_id is required")
		return
	}
	entries, err := s.loadEntries(r, &req.validateRequest)
	if err != nil {
		WriteInternal(w, err)
		return
	}

	ctx, done := s.track(r.Context(), "compliance.report",
		attribute.String("project_id", req.ProjectID),
		attribute.Int("entry_count", len(entries)))
	report, err := s.Engine.GenerateReport(req.ProjectID, req.AnalysisID,
		entries, req.Standards, req.GeneratedBy, req.Options)
	done(err)
	if err != nil {
		WriteBadRequest(w, err.Error())
		return
	}

	if s.Store != nil {
		if err := s.Store.SaveReport(ctx, report); err != nil {
			WriteInternal(w, err)
			return
		}
	}
	if req.AnalysisID != "" {
		s.Cache.Invalidate(r.Context(), req.AnalysisID)
	}
	writeJSON(w, http.StatusCreated, report)
}

func (s *Service) handleGetReport(w http.ResponseWriter, r *http.Request) {
	if s.Store == nil {
		WriteNotFound(w, "report storage is not configured")
		return
	}
	id := r.PathValue("id")
	report, err := s.Store.GetReport(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		WriteNotFound(w, "no report with id "+id)
		return
	}
	if err != nil {
		WriteInternal(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Service) handleQuickStatus(w http.ResponseWriter, r *http.Request) {
	analysisID := r.URL.Query().Get("analysis_id")
	if analysisID == "" {
		WriteBadRequest(w, "analysis_id query parameter is required")
		return
	}

	if qs, ok := s.Cache.Get(r.Context(), analysisID); ok {
		writeJSON(w, http.StatusOK, qs)
		return
	}

	var entries []hazop.AnalysisEntry
	if s.Store != nil {
		var err error
		entries, err = s.Store.EntriesForAnalysis(r.Context(), analysisID)
		if err != nil {
			WriteInternal(w, err)
			return
		}
	}

	qs := s.Engine.QuickComplianceStatus(entries, nil, compliance.Options{})
	s.Cache.Set(r.Context(), analysisID, &qs)
	writeJSON(w, http.StatusOK, qs)
}

func (s *Service) handleMissingRequirements(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if !s.decode(w, r, &req) {
		return
	}
	entries, err := s.loadEntries(r, &req)
	if err != nil {
		WriteInternal(w, err)
		return
	}
	writeJSON(w, http.StatusOK, compliance.GetMissingRequirements(entries))
}

func (s *Service) handleRiskSummary(w http.ResponseWriter, r *http.Request) {
	analysisID := r.URL.Query().Get("analysis_id")
	if analysisID == "" {
		WriteBadRequest(w, "analysis_id query parameter is required")
		return
	}
	if s.Store == nil {
		WriteNotFound(w, "entry storage is not configured")
		return
	}
	entries, err := s.Store.EntriesForAnalysis(r.Context(), analysisID)
	if err != nil {
		WriteInternal(w, err)
		return
	}
	writeJSON(w, http.StatusOK, hazop.Summarize(entries))
}

func (s *Service) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
