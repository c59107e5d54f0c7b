package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"mockmate-backend/internal/middleware"
	"mockmate-backend/internal/models"
	"mockmate-backend/internal/services"
)

// Narrow views over the services and repos this handler calls, so tests can
// substitute in-memory fakes.
type summaryGenerator interface {
	Generate(ctx context.Context, interviewID primitive.ObjectID, userID string) (*models.SessionSummary, error)
}

type pdfRenderer interface {
	GenerateSessionSummaryPDF(summary *models.SessionSummary, profile *models.UserProfile) ([]byte, error)
}

type progressProvider interface {
	Progress(ctx context.Context, userID, timeRange string) (*models.ProgressAnalytics, error)
}

type planChecker interface {
	HasProAccess(ctx context.Context, userID string) (bool, error)
}

type interviewLister interface {
	ListCompleted(ctx context.Context, userID string, page, limit int) ([]models.Interview, int64, error)
}

type profileFinder interface {
	FindByUserID(ctx context.Context, userID string) (*models.UserProfile, error)
}

type ReportHandler struct {
	summaries  summaryGenerator
	pdf        pdfRenderer
	progress   progressProvider
	plans      planChecker
	interviews interviewLister
	users      profileFinder
}

func NewReportHandler(
	summaries summaryGenerator,
	pdf pdfRenderer,
	progress progressProvider,
	plans planChecker,
	interviews interviewLister,
	users profileFinder,
) *ReportHandler {
	return &ReportHandler{
		summaries:  summaries,
		pdf:        pdf,
		progress:   progress,
		plans:      plans,
		interviews: interviews,
		users:      users,
	}
}

// List returns the user's completed interviews as report stubs, newest
// first.
func (h *ReportHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	page, limit := paginationParams(r)

	interviews, total, err := h.interviews.ListCompleted(r.Context(), userID, page, limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to retrieve reports", r))
		return
	}

	reports := make([]models.ReportStub, 0, len(interviews))
	for _, interview := range interviews {
		stub := models.ReportStub{
			InterviewID:      interview.ID.Hex(),
			ReportID:         "report_" + interview.ID.Hex(),
			JobRole:          interview.Config.JobRole,
			InterviewType:    interview.Config.InterviewType,
			OverallScore:     interview.OverallScore(),
			CompletedAt:      interview.CompletedAt,
			Duration:         interview.Timing.TotalDuration,
			AvailableReports: []string{"summary"},
		}
		if interview.Results != nil {
			stub.Performance = interview.Results.Performance
		}
		reports = append(reports, stub)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"reports": reports,
			"pagination": models.Pagination{
				CurrentPage:  page,
				TotalPages:   totalPages,
				TotalReports: total,
				HasNextPage:  page < totalPages,
				HasPrevPage:  page > 1,
			},
		},
	})
}

// SessionSummary returns the derived summary for one completed interview.
func (h *ReportHandler) SessionSummary(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	interviewID, err := parseInterviewID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Interview not found", r))
		return
	}

	summary, err := h.summaries.Generate(r.Context(), interviewID, userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	// A failed capability lookup downgrades to free rather than failing the
	// whole summary.
	pro, err := h.plans.HasProAccess(r.Context(), userID)
	if err != nil {
		pro = false
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data": map[string]interface{}{
			"summary":          summary,
			"hasProAccess":     pro,
			"availableExports": services.AvailableExports(pro),
		},
	})
}

// ExportPDF renders the session summary as a downloadable PDF. Pro plans
// only.
func (h *ReportHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	interviewID, err := parseInterviewID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Interview not found", r))
		return
	}

	pro, err := h.plans.HasProAccess(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to verify plan", r))
		return
	}
	if !pro {
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", "PDF export requires a Pro plan", r))
		return
	}

	summary, err := h.summaries.Generate(r.Context(), interviewID, userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	profile, err := h.users.FindByUserID(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to load profile", r))
		return
	}

	pdfBytes, err := h.pdf.GenerateSessionSummaryPDF(summary, profile)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "interview-summary-"+interviewID.Hex()+".pdf"))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdfBytes)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdfBytes)
}

// Export downloads the session summary as JSON or plain text.
func (h *ReportHandler) Export(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	interviewID, err := parseInterviewID(r)
	if err != nil {
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", "Interview not found", r))
		return
	}

	format := strings.ToLower(r.URL.Query().Get("format"))
	if format == "" {
		format = "json"
	}
	if format != "json" && format != "txt" {
		writeJSON(w, http.StatusBadRequest, errorResp("VALIDATION_ERROR", "Unsupported export format. Supported formats: json, txt", r))
		return
	}

	summary, err := h.summaries.Generate(r.Context(), interviewID, userID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	switch format {
	case "json":
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "interview-report-"+interviewID.Hex()+".json"))
		json.NewEncoder(w).Encode(summary)
	case "txt":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "interview-report-"+interviewID.Hex()+".txt"))
		w.Write([]byte(renderTextReport(summary)))
	}
}

// Progress returns cross-interview analytics for the authenticated user.
func (h *ReportHandler) Progress(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	timeRange := r.URL.Query().Get("timeRange")
	if timeRange == "" {
		timeRange = "6months"
	}

	analytics, err := h.progress.Progress(r.Context(), userID, timeRange)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "Failed to retrieve progress analytics", r))
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    analytics,
	})
}

// renderTextReport flattens a summary into a plain-text document for the txt
// export format.
func renderTextReport(summary *models.SessionSummary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "INTERVIEW SESSION SUMMARY\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", summary.GeneratedAt.Format("Jan 2, 2006 15:04"))

	fmt.Fprintf(&b, "SESSION\n")
	fmt.Fprintf(&b, "Role: %s (%s)\n", summary.SessionInfo.JobRole, summary.SessionInfo.ExperienceLevel)
	fmt.Fprintf(&b, "Type: %s\n", summary.SessionInfo.InterviewType)
	fmt.Fprintf(&b, "Duration: %d minutes\n\n", summary.SessionInfo.TotalDuration)

	metrics := summary.AggregateMetrics
	fmt.Fprintf(&b, "PERFORMANCE\n")
	fmt.Fprintf(&b, "Questions Answered: %d/%d\n", metrics.AnsweredQuestions, metrics.TotalQuestions)
	fmt.Fprintf(&b, "Completion Rate: %d%%\n", metrics.CompletionRate)
	fmt.Fprintf(&b, "Average Score: %d/100\n\n", metrics.AverageScore)

	if len(summary.CategoryScores) > 0 {
		fmt.Fprintf(&b, "CATEGORIES\n")
		for _, category := range summary.CategoryScores {
			fmt.Fprintf(&b, "%s: %d/100 (%s, %d questions)\n",
				category.Category, category.AverageScore, category.Performance, category.QuestionsCount)
		}
		fmt.Fprintf(&b, "\n")
	}

	assessment := summary.OverallAssessment
	fmt.Fprintf(&b, "ASSESSMENT\n")
	fmt.Fprintf(&b, "Overall Score: %d/100\n", assessment.OverallScore)
	fmt.Fprintf(&b, "Readiness: %s\n", assessment.ReadinessLevel)
	fmt.Fprintf(&b, "Session Rating: %.1f/5\n", assessment.SessionRating)
	fmt.Fprintf(&b, "Recommendation: %s\n", assessment.Recommendation)

	return b.String()
}

func parseInterviewID(r *http.Request) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(chi.URLParam(r, "interviewId"))
}

func paginationParams(r *http.Request) (page, limit int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	return page, limit
}

// Shared helpers

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(code, message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error: models.APIError{
			Code:      code,
			Message:   message,
			RequestID: r.Header.Get("X-Request-ID"),
		},
	}
}

func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch e := err.(type) {
	case *services.ValidationError:
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{
			Error: models.APIError{
				Code:      "VALIDATION_ERROR",
				Message:   "Validation failed",
				Fields:    e.Fields,
				RequestID: r.Header.Get("X-Request-ID"),
			},
		})
	case *services.NotFoundError:
		writeJSON(w, http.StatusNotFound, errorResp("NOT_FOUND", e.Message, r))
	case *services.PreconditionError:
		writeJSON(w, http.StatusBadRequest, errorResp("INTERVIEW_NOT_COMPLETED", e.Message, r))
	case *services.ForbiddenError:
		writeJSON(w, http.StatusForbidden, errorResp("FORBIDDEN", e.Message, r))
	case *services.RenderError:
		writeJSON(w, http.StatusInternalServerError, errorResp("PDF_GENERATION_FAILED", "Failed to generate PDF report", r))
	default:
		writeJSON(w, http.StatusInternalServerError, errorResp("INTERNAL_ERROR", "An unexpected error occurred", r))
	}
}
