package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mockmate-backend/internal/middleware"
	"mockmate-backend/internal/models"
	"mockmate-backend/internal/services"
)

// In-memory fakes for the handler's service and repo views.

type fakeSummaries struct {
	summary *models.SessionSummary
	err     error
}

func (f *fakeSummaries) Generate(ctx context.Context, interviewID primitive.ObjectID, userID string) (*models.SessionSummary, error) {
	return f.summary, f.err
}

type fakePDF struct {
	data []byte
	err  error
}

func (f *fakePDF) GenerateSessionSummaryPDF(summary *models.SessionSummary, profile *models.UserProfile) ([]byte, error) {
	return f.data, f.err
}

type fakeProgress struct {
	analytics *models.ProgressAnalytics
	err       error
}

func (f *fakeProgress) Progress(ctx context.Context, userID, timeRange string) (*models.ProgressAnalytics, error) {
	return f.analytics, f.err
}

type fakePlans struct {
	pro bool
	err error
}

func (f *fakePlans) HasProAccess(ctx context.Context, userID string) (bool, error) {
	return f.pro, f.err
}

type fakeLister struct {
	interviews []models.Interview
	total      int64
	err        error
}

func (f *fakeLister) ListCompleted(ctx context.Context, userID string, page, limit int) ([]models.Interview, int64, error) {
	return f.interviews, f.total, f.err
}

type fakeProfiles struct {
	profile *models.UserProfile
	err     error
}

func (f *fakeProfiles) FindByUserID(ctx context.Context, userID string) (*models.UserProfile, error) {
	return f.profile, f.err
}

// serve routes a request through the report endpoints as an authenticated
// user, mirroring the real route shapes.
func serve(h *ReportHandler, target string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Get("/reports", h.List)
	router.Get("/reports/analytics/progress", h.Progress)
	router.Get("/reports/{interviewId}/session-summary", h.SessionSummary)
	router.Get("/reports/{interviewId}/export-pdf", h.ExportPDF)
	router.Get("/reports/{interviewId}/export", h.Export)

	r := httptest.NewRequest(http.MethodGet, target, nil)
	ctx := context.WithValue(r.Context(), middleware.UserIDKey, "user-1")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r.WithContext(ctx))
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	return body
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Invalid error body: %v", err)
	}
	return resp.Error.Code
}

func testSummary() *models.SessionSummary {
	return &models.SessionSummary{
		SessionID:   "65f0aa11bb22cc33dd44ee55",
		GeneratedAt: time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC),
		SessionInfo: models.SessionInfo{
			JobRole:         "Frontend Developer",
			ExperienceLevel: "mid",
			InterviewType:   "technical",
			TotalDuration:   14,
		},
		AggregateMetrics: models.AggregateMetrics{
			TotalQuestions:    4,
			AnsweredQuestions: 2,
			AverageScore:      79,
			CompletionRate:    50,
		},
		CategoryScores: []models.CategoryScore{
			{Category: "react", AverageScore: 85, QuestionsCount: 1, Performance: "excellent"},
		},
		OverallAssessment: models.OverallAssessment{
			OverallScore:   78,
			ReadinessLevel: "good",
			Recommendation: "Good performance! Focus on weak areas for improvement.",
			CompletionRate: 50,
			SessionRating:  3.5,
		},
	}
}

func TestSessionSummaryEndpoint(t *testing.T) {
	h := NewReportHandler(
		&fakeSummaries{summary: testSummary()},
		&fakePDF{},
		&fakeProgress{},
		&fakePlans{pro: true},
		&fakeLister{},
		&fakeProfiles{},
	)

	w := serve(h, "/reports/"+primitive.NewObjectID().Hex()+"/session-summary")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	body := decodeBody(t, w)
	if body["success"] != true {
		t.Error("Expected success=true envelope")
	}
	data, ok := body["data"].(map[string]interface{})
	if !ok {
		t.Fatal("Expected data object in envelope")
	}
	if data["hasProAccess"] != true {
		t.Error("Expected hasProAccess=true for pro plan")
	}
	exports, _ := data["availableExports"].([]interface{})
	if len(exports) != 3 {
		t.Errorf("Expected 3 export formats for pro, got %v", exports)
	}
	summary, ok := data["summary"].(map[string]interface{})
	if !ok || summary["sessionId"] != testSummary().SessionID {
		t.Errorf("Expected summary with sessionId, got %v", data["summary"])
	}
}

func TestSessionSummaryEndpoint_PlanLookupFailure(t *testing.T) {
	h := NewReportHandler(
		&fakeSummaries{summary: testSummary()},
		&fakePDF{},
		&fakeProgress{},
		&fakePlans{err: errors.New("redis down")},
		&fakeLister{},
		&fakeProfiles{},
	)

	w := serve(h, "/reports/"+primitive.NewObjectID().Hex()+"/session-summary")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 despite plan lookup failure, got %d", w.Code)
	}

	data := decodeBody(t, w)["data"].(map[string]interface{})
	if data["hasProAccess"] != false {
		t.Error("Expected plan lookup failure to downgrade to free")
	}
}

func TestSessionSummaryEndpoint_NotFound(t *testing.T) {
	h := NewReportHandler(
		&fakeSummaries{err: &services.NotFoundError{Message: "Interview not found"}},
		&fakePDF{},
		&fakeProgress{},
		&fakePlans{},
		&fakeLister{},
		&fakeProfiles{},
	)

	w := serve(h, "/reports/"+primitive.NewObjectID().Hex()+"/session-summary")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "NOT_FOUND" {
		t.Errorf("Expected NOT_FOUND, got %s", code)
	}
}

func TestSessionSummaryEndpoint_NotCompleted(t *testing.T) {
	h := NewReportHandler(
		&fakeSummaries{err: &services.PreconditionError{Message: "Interview must be completed to generate summary"}},
		&fakePDF{},
		&fakeProgress{},
		&fakePlans{},
		&fakeLister{},
		&fakeProfiles{},
	)

	w := serve(h, "/reports/"+primitive.NewObjectID().Hex()+"/session-summary")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "INTERVIEW_NOT_COMPLETED" {
		t.Errorf("Expected INTERVIEW_NOT_COMPLETED, got %s", code)
	}
}

func TestSessionSummaryEndpoint_MalformedID(t *testing.T) {
	h := NewReportHandler(&fakeSummaries{}, &fakePDF{}, &fakeProgress{}, &fakePlans{}, &fakeLister{}, &fakeProfiles{})

	// A malformed id is indistinguishable from a missing interview.
	w := serve(h, "/reports/not-a-hex-id/session-summary")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "NOT_FOUND" {
		t.Errorf("Expected NOT_FOUND, got %s", code)
	}
}

func TestExportPDFEndpoint_FreePlan(t *testing.T) {
	h := NewReportHandler(
		&fakeSummaries{summary: testSummary()},
		&fakePDF{data: []byte("%PDF-1.4")},
		&fakeProgress{},
		&fakePlans{pro: false},
		&fakeLister{},
		&fakeProfiles{},
	)

	w := serve(h, "/reports/"+primitive.NewObjectID().Hex()+"/export-pdf")
	if w.Code != http.StatusForbidden {
		t.Fatalf("Expected 403 for free plan, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "FORBIDDEN" {
		t.Errorf("Expected FORBIDDEN, got %s", code)
	}
}

func TestExportPDFEndpoint(t *testing.T) {
	pdfData := []byte("%PDF-1.4 stub document")
	h := NewReportHandler(
		&fakeSummaries{summary: testSummary()},
		&fakePDF{data: pdfData},
		&fakeProgress{},
		&fakePlans{pro: true},
		&fakeLister{},
		&fakeProfiles{profile: &models.UserProfile{FirstName: "Alex", Plan: "pro"}},
	)

	id := primitive.NewObjectID().Hex()
	w := serve(h, "/reports/"+id+"/export-pdf")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("Expected application/pdf, got %q", ct)
	}
	expectedDisposition := `attachment; filename="interview-summary-` + id + `.pdf"`
	if cd := w.Header().Get("Content-Disposition"); cd != expectedDisposition {
		t.Errorf("Expected %q, got %q", expectedDisposition, cd)
	}
	if cl := w.Header().Get("Content-Length"); cl != "22" {
		t.Errorf("Expected Content-Length 22, got %q", cl)
	}
	if !strings.HasPrefix(w.Body.String(), "%PDF") {
		t.Error("Expected PDF bytes in response body")
	}
}

func TestExportPDFEndpoint_RenderFailure(t *testing.T) {
	h := NewReportHandler(
		&fakeSummaries{summary: testSummary()},
		&fakePDF{err: &services.RenderError{Err: errors.New("font missing")}},
		&fakeProgress{},
		&fakePlans{pro: true},
		&fakeLister{},
		&fakeProfiles{},
	)

	w := serve(h, "/reports/"+primitive.NewObjectID().Hex()+"/export-pdf")
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "PDF_GENERATION_FAILED" {
		t.Errorf("Expected PDF_GENERATION_FAILED, got %s", code)
	}
}

func TestExportEndpoint_UnsupportedFormat(t *testing.T) {
	h := NewReportHandler(&fakeSummaries{summary: testSummary()}, &fakePDF{}, &fakeProgress{}, &fakePlans{}, &fakeLister{}, &fakeProfiles{})

	w := serve(h, "/reports/"+primitive.NewObjectID().Hex()+"/export?format=csv")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", w.Code)
	}
	if code := errorCode(t, w); code != "VALIDATION_ERROR" {
		t.Errorf("Expected VALIDATION_ERROR, got %s", code)
	}
}

func TestExportEndpoint_Text(t *testing.T) {
	h := NewReportHandler(&fakeSummaries{summary: testSummary()}, &fakePDF{}, &fakeProgress{}, &fakePlans{}, &fakeLister{}, &fakeProfiles{})

	w := serve(h, "/reports/"+primitive.NewObjectID().Hex()+"/export?format=txt")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Expected text/plain, got %q", ct)
	}
	if !strings.Contains(w.Body.String(), "INTERVIEW SESSION SUMMARY") {
		t.Error("Expected text report header in body")
	}
}

func TestExportEndpoint_JSONDefault(t *testing.T) {
	h := NewReportHandler(&fakeSummaries{summary: testSummary()}, &fakePDF{}, &fakeProgress{}, &fakePlans{}, &fakeLister{}, &fakeProfiles{})

	w := serve(h, "/reports/"+primitive.NewObjectID().Hex()+"/export")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var summary models.SessionSummary
	if err := json.Unmarshal(w.Body.Bytes(), &summary); err != nil {
		t.Fatalf("Expected a summary JSON attachment: %v", err)
	}
	if summary.SessionID != testSummary().SessionID {
		t.Errorf("Expected session ID %s, got %s", testSummary().SessionID, summary.SessionID)
	}
}

func TestListEndpoint(t *testing.T) {
	completed := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	interview := models.Interview{
		ID:          primitive.NewObjectID(),
		UserID:      "user-1",
		Status:      models.InterviewCompleted,
		Config:      models.InterviewConfig{JobRole: "Frontend Developer", InterviewType: "technical"},
		Timing:      models.InterviewTiming{TotalDuration: 14},
		Results:     &models.InterviewResults{OverallScore: 78, Performance: "good"},
		CompletedAt: &completed,
	}
	h := NewReportHandler(
		&fakeSummaries{},
		&fakePDF{},
		&fakeProgress{},
		&fakePlans{},
		&fakeLister{interviews: []models.Interview{interview}, total: 12},
		&fakeProfiles{},
	)

	w := serve(h, "/reports")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	data := decodeBody(t, w)["data"].(map[string]interface{})
	reports, _ := data["reports"].([]interface{})
	if len(reports) != 1 {
		t.Fatalf("Expected 1 report stub, got %d", len(reports))
	}
	stub := reports[0].(map[string]interface{})
	if stub["reportId"] != "report_"+interview.ID.Hex() {
		t.Errorf("Unexpected reportId: %v", stub["reportId"])
	}
	if stub["performance"] != "good" {
		t.Errorf("Expected performance from results, got %v", stub["performance"])
	}

	pagination := data["pagination"].(map[string]interface{})
	if pagination["totalPages"] != float64(2) {
		t.Errorf("Expected 2 total pages for 12 reports at limit 10, got %v", pagination["totalPages"])
	}
	if pagination["hasNextPage"] != true || pagination["hasPrevPage"] != false {
		t.Errorf("Unexpected pagination flags: %v", pagination)
	}
}

func TestProgressEndpoint(t *testing.T) {
	h := NewReportHandler(
		&fakeSummaries{},
		&fakePDF{},
		&fakeProgress{analytics: &models.ProgressAnalytics{TimeRange: "6months", Consistency: "consistent"}},
		&fakePlans{},
		&fakeLister{},
		&fakeProfiles{},
	)

	w := serve(h, "/reports/analytics/progress")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	data := decodeBody(t, w)["data"].(map[string]interface{})
	if data["timeRange"] != "6months" {
		t.Errorf("Expected default 6months range, got %v", data["timeRange"])
	}
	if data["consistency"] != "consistent" {
		t.Errorf("Expected consistency label, got %v", data["consistency"])
	}
}

func TestRenderTextReport(t *testing.T) {
	report := renderTextReport(testSummary())

	for _, expected := range []string{
		"INTERVIEW SESSION SUMMARY",
		"Role: Frontend Developer (mid)",
		"Questions Answered: 2/4",
		"react: 85/100 (excellent, 1 questions)",
		"Readiness: good",
		"Session Rating: 3.5/5",
		"Recommendation: Good performance! Focus on weak areas for improvement.",
	} {
		if !strings.Contains(report, expected) {
			t.Errorf("Expected report to contain %q", expected)
		}
	}
}

func TestRenderTextReport_NoCategories(t *testing.T) {
	summary := testSummary()
	summary.CategoryScores = nil

	report := renderTextReport(summary)
	if strings.Contains(report, "CATEGORIES") {
		t.Error("Expected no CATEGORIES block without category scores")
	}
}

func TestPaginationParams(t *testing.T) {
	tests := []struct {
		name          string
		query         string
		expectedPage  int
		expectedLimit int
	}{
		{"defaults", "", 1, 10},
		{"explicit values", "page=3&limit=25", 3, 25},
		{"zero page clamps", "page=0", 1, 10},
		{"negative page clamps", "page=-2", 1, 10},
		{"limit capped", "limit=500", 1, 50},
		{"non-numeric falls back", "page=abc&limit=xyz", 1, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/api/v1/reports?"+tc.query, nil)
			page, limit := paginationParams(r)
			if page != tc.expectedPage {
				t.Errorf("Expected page %d, got %d", tc.expectedPage, page)
			}
			if limit != tc.expectedLimit {
				t.Errorf("Expected limit %d, got %d", tc.expectedLimit, limit)
			}
		})
	}
}

func TestWriteJSON(t *testing.T) {
	w := httptest.NewRecorder()
	writeJSON(w, http.StatusCreated, map[string]string{"hello": "world"})

	if w.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Invalid JSON body: %v", err)
	}
	if body["hello"] != "world" {
		t.Errorf("Expected hello=world, got %v", body)
	}
}

func TestErrorResp_IncludesRequestID(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)
	r.Header.Set("X-Request-ID", "req-123")

	resp := errorResp("NOT_FOUND", "Interview not found", r)
	if resp.Error.Code != "NOT_FOUND" {
		t.Errorf("Expected NOT_FOUND, got %s", resp.Error.Code)
	}
	if resp.Error.RequestID != "req-123" {
		t.Errorf("Expected request ID req-123, got %q", resp.Error.RequestID)
	}
}

func TestHandleServiceError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"not found", &services.NotFoundError{Message: "Interview not found"}, http.StatusNotFound, "NOT_FOUND"},
		{"not completed", &services.PreconditionError{Message: "Interview must be completed to generate summary"}, http.StatusBadRequest, "INTERVIEW_NOT_COMPLETED"},
		{"forbidden", &services.ForbiddenError{Message: "PDF export requires a Pro plan"}, http.StatusForbidden, "FORBIDDEN"},
		{"render failure", &services.RenderError{Err: errors.New("font missing")}, http.StatusInternalServerError, "PDF_GENERATION_FAILED"},
		{"validation", &services.ValidationError{Fields: map[string]string{"format": "unsupported"}}, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/api/v1/reports", nil)

			handleServiceError(w, r, tc.err)

			if w.Code != tc.expectedStatus {
				t.Errorf("Expected status %d, got %d", tc.expectedStatus, w.Code)
			}

			var resp models.ErrorResponse
			if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
				t.Fatalf("Invalid error body: %v", err)
			}
			if resp.Error.Code != tc.expectedCode {
				t.Errorf("Expected code %s, got %s", tc.expectedCode, resp.Error.Code)
			}
		})
	}
}

func TestParseInterviewID_Invalid(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/reports/not-a-hex-id/session-summary", nil)
	if _, err := parseInterviewID(r); err == nil {
		t.Error("Expected error for malformed interview ID")
	}
}
