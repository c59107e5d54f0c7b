package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"mockmate-backend/internal/handlers"
	"mockmate-backend/internal/middleware"
)

func New(
	jwtAuth *middleware.JWTAuth,
	reportHandler *handlers.ReportHandler,
	pdfExportPerMin int,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// PDF rendering is the most expensive endpoint, so it gets its own
	// per-IP limiter.
	pdfLimiter := middleware.NewRateLimiter(pdfExportPerMin, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/v1", func(r chi.Router) {

		// ──── Report Routes ────
		r.Route("/reports", func(r chi.Router) {
			r.Use(jwtAuth.Middleware)
			r.Get("/", reportHandler.List)
			r.Get("/analytics/progress", reportHandler.Progress)
			r.Get("/{interviewId}/session-summary", reportHandler.SessionSummary)
			r.Get("/{interviewId}/export", reportHandler.Export)

			r.Group(func(r chi.Router) {
				r.Use(pdfLimiter.Middleware)
				r.Get("/{interviewId}/export-pdf", reportHandler.ExportPDF)
			})
		})
	})

	return r
}
