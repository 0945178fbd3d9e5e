package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/procsafe/hazard-engine/pkg/compliance"
	"github.com/procsafe/hazard-engine/pkg/hazop"
	"github.com/procsafe/hazard-engine/pkg/store"
)

// stubStore is an in-memory AnalysisStore for handler tests.
type stubStore struct {
	entries map[string][]hazop.AnalysisEntry
	reports map[string]*compliance.Report
}

func newStubStore() *stubStore {
	return &stubStore{
		entries: make(map[string][]hazop.AnalysisEntry),
		reports: make(map[string]*compliance.Report),
	}
}

func (s *stubStore) EntriesForAnalysis(_ context.Context, analysisID string) ([]hazop.AnalysisEntry, error) {
	return s.entries[analysisID], nil
}

func (s *stubStore) SaveEntry(_ context.Context, e *hazop.AnalysisEntry) error {
	s.entries[e.AnalysisID] = append(s.entries[e.AnalysisID], *e)
	return nil
}

func (s *stubStore) SaveReport(_ context.Context, r *compliance.Report) error {
	s.reports[r.ID] = r
	return nil
}

func (s *stubStore) GetReport(_ context.Context, id string) (*compliance.Report, error) {
	r, ok := s.reports[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	return r, nil
}

func (s *stubStore) ListReports(_ context.Context, projectID string, limit int) ([]*compliance.Report, error) {
	var out []*compliance.Report
	for _, r := range s.reports {
		if r.ProjectID == projectID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *stubStore) Close() error { return nil }

func testService(t *testing.T) (*Service, *stubStore) {
	t.Helper()
	st := newStubStore()
	return NewService(nil, st, nil, nil), st
}

func apiEntry(t *testing.T, id string) hazop.AnalysisEntry {
	t.Helper()
	risk, err := hazop.NewRiskRanking(4, 4, 3)
	require.NoError(t, err)
	return hazop.AnalysisEntry{
		ID:           id,
		AnalysisID:   "an-1",
		NodeID:       "node-1",
		GuideWord:    hazop.GuideMore,
		Parameter:    "pressure",
		Deviation:    "more pressure",
		Causes:       []string{"control valve fails open"},
		Consequences: []string{"vessel overpressure"},
		Safeguards:   []string{"relief valve sized for full flow", "high pressure alarm"},
		Recommendations: []string{
			"verify relief valve sizing against sil target",
		},
		Risk: risk,
	}
}

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestValidateInlineEntries(t *testing.T) {
	svc, _ := testService(t)
	mux := svc.Routes()

	rec := postJSON(t, mux, "/compliance/validate", validateRequest{
		Entries:   []hazop.AnalysisEntry{apiEntry(t, "e1")},
		Standards: []compliance.StandardID{compliance.StandardIEC61511},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var result compliance.ValidationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.True(t, result.Success)
	require.Len(t, result.Summaries, 1)
	require.Equal(t, compliance.StandardIEC61511, result.Summaries[0].Standard)
}

func TestValidateNoEntriesReturnsNotAssessed(t *testing.T) {
	svc, _ := testService(t)
	mux := svc.Routes()

	// Unknown analysis: still HTTP 200, the result carries the outcome.
	rec := postJSON(t, mux, "/compliance/validate", validateRequest{AnalysisID: "nope"})
	require.Equal(t, http.StatusOK, rec.Code)

	var result compliance.ValidationResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.False(t, result.Success)
	require.Equal(t, compliance.StatusNotAssessed, result.OverallStatus)
	require.NotEmpty(t, result.Errors)
}

func TestValidateRejectsMalformedBody(t *testing.T) {
	svc, _ := testService(t)
	req := httptest.NewRequest(http.MethodPost, "/compliance/validate",
		bytes.NewReader([]byte(`{"entries": 12}`)))
	rec := httptest.NewRecorder()
	svc.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestGenerateAndFetchReport(t *testing.T) {
	svc, st := testService(t)
	mux := svc.Routes()

	entry := apiEntry(t, "e1")
	st.entries["an-1"] = []hazop.AnalysisEntry{entry}

	rec := postJSON(t, mux, "/compliance/report", reportRequest{
		validateRequest: validateRequest{AnalysisID: "an-1"},
		ProjectID:       "proj-1",
		GeneratedBy:     "user-1",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var report compliance.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	require.NotEmpty(t, report.ID)
	require.Equal(t, "proj-1", report.ProjectID)
	require.NotEmpty(t, report.ContentHash)
	require.Contains(t, st.reports, report.ID)

	getReq := httptest.NewRequest(http.MethodGet, "/compliance/report/"+report.ID, nil)
	getRec := httptest.NewRecorder()
	mux.ServeHTTP(getRec, getReq)
	require.Equal(t, http.StatusOK, getRec.Code)

	var fetched compliance.Report
	require.NoError(t, json.Unmarshal(getRec.Body.Bytes(), &fetched))
	require.Equal(t, report.ContentHash, fetched.ContentHash)
}

func TestGenerateReportRequiresProject(t *testing.T) {
	svc, _ := testService(t)
	rec := postJSON(t, svc.Routes(), "/compliance/report", reportRequest{
		validateRequest: validateRequest{Entries: []hazop.AnalysisEntry{apiEntry(t, "e1")}},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGenerateReportInsufficientEntries(t *testing.T) {
	svc, _ := testService(t)
	rec := postJSON(t, svc.Routes(), "/compliance/report", reportRequest{
		validateRequest: validateRequest{AnalysisID: "empty"},
		ProjectID:       "proj-1",
		GeneratedBy:     "user-1",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetReportNotFound(t *testing.T) {
	svc, _ := testService(t)
	req := httptest.NewRequest(http.MethodGet, "/compliance/report/missing", nil)
	rec := httptest.NewRecorder()
	svc.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQuickStatus(t *testing.T) {
	svc, st := testService(t)
	st.entries["an-1"] = []hazop.AnalysisEntry{apiEntry(t, "e1")}

	req := httptest.NewRequest(http.MethodGet, "/compliance/quick-status?analysis_id=an-1", nil)
	rec := httptest.NewRecorder()
	svc.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var qs compliance.QuickStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &qs))
	require.Len(t, qs.StandardStatuses, len(compliance.MandatoryStandards))
}

func TestQuickStatusEmptyAnalysisIsNotAssessed(t *testing.T) {
	svc, _ := testService(t)
	req := httptest.NewRequest(http.MethodGet, "/compliance/quick-status?analysis_id=empty", nil)
	rec := httptest.NewRecorder()
	svc.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var qs compliance.QuickStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &qs))
	require.Equal(t, compliance.StatusNotAssessed, qs.OverallStatus)
}

func TestQuickStatusRequiresAnalysisID(t *testing.T) {
	svc, _ := testService(t)
	req := httptest.NewRequest(http.MethodGet, "/compliance/quick-status", nil)
	rec := httptest.NewRecorder()
	svc.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMissingRequirements(t *testing.T) {
	svc, _ := testService(t)

	bare := hazop.AnalysisEntry{
		ID:         "e1",
		AnalysisID: "an-1",
		NodeID:     "node-1",
		GuideWord:  hazop.GuideNo,
		Parameter:  "flow",
		Deviation:  "no flow",
	}
	rec := postJSON(t, svc.Routes(), "/compliance/missing-requirements", validateRequest{
		Entries: []hazop.AnalysisEntry{bare},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var mr compliance.MissingRequirements
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &mr))
	require.NotEmpty(t, mr.Documentation)
	require.NotEmpty(t, mr.RiskAssessment)
	require.NotEmpty(t, mr.Safeguards)
}

func TestRiskSummary(t *testing.T) {
	svc, st := testService(t)
	st.entries["an-1"] = []hazop.AnalysisEntry{apiEntry(t, "e1")}

	req := httptest.NewRequest(http.MethodGet, "/risk/summary?analysis_id=an-1", nil)
	rec := httptest.NewRecorder()
	svc.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var summary hazop.RiskSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
	require.Equal(t, 1, summary.EntryCount)
	require.Equal(t, 48, summary.MaxScore)
}

func TestHealthz(t *testing.T) {
	svc, _ := testService(t)
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	svc.Routes().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestRateLimiterBlocksBursts(t *testing.T) {
	svc, _ := testService(t)
	h := svc.Handler(NewGlobalRateLimiter(1, 2))

	var lastCode int
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.RemoteAddr = "10.0.0.1:12345"
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		lastCode = rec.Code
	}
	require.Equal(t, http.StatusTooManyRequests, lastCode)
}

func TestRequestIDEchoed(t *testing.T) {
	svc, _ := testService(t)
	h := svc.Handler(nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-Id", "req-42")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, "req-42", rec.Header().Get("X-Request-Id"))
}
