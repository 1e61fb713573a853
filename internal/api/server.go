/*
server.go - HTTP router and middleware for `guidelog serve`

ROUTES:
  GET    /api/plans                    List a month of planned entries
  POST   /api/plans                    Submit a plan for days or a period
  DELETE /api/plans                    Cancel entries by exact key
  POST   /api/plans/substitutions      Register a substitute
  POST   /api/plans/approve            Approve a month of plans
  GET    /api/logs                     List activity (?person=, ?status=pending)
  POST   /api/logs                     Submit a month's activity form
  POST   /api/logs/approve             Approve pending activity
  GET    /api/reports/monthly          Reconciled grid as JSON
  GET    /api/reports/monthly.xlsx     Printable workbook
  GET    /api/stats                    Monthly totals per island and post
  GET    /api/roster                   List guides
  POST   /api/roster                   Add or replace guides
  GET    /api/disruptions              Ferry disruption days of a month
  POST   /api/disruptions              Record ferry departures

MIDDLEWARE:
  RequestID, slog request logging, Recoverer, CORS.
*/
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type Options struct {
	Logger         *slog.Logger
	AllowedOrigins []string
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts Options) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if opts.Logger != nil {
		r.Use(requestLogger(opts.Logger))
	}
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/plans", func(r chi.Router) {
			r.Get("/", h.ListPlans)
			r.Post("/", h.SubmitPlan)
			r.Delete("/", h.CancelPlans)
			r.Post("/substitutions", h.RegisterSubstitution)
			r.Post("/approve", h.ApprovePlans)
		})

		r.Route("/logs", func(r chi.Router) {
			r.Get("/", h.ListLogs)
			r.Post("/", h.SubmitLogs)
			r.Post("/approve", h.ApproveLogs)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/monthly", h.MonthlyReport)
			r.Get("/monthly.xlsx", h.PrintReport)
		})

		r.Get("/stats", h.MonthlyStats)

		r.Route("/roster", func(r chi.Router) {
			r.Get("/", h.ListRoster)
			r.Post("/", h.AddGuides)
		})

		r.Route("/disruptions", func(r chi.Router) {
			r.Get("/", h.DisruptionDays)
			r.Post("/", h.RecordDisruptions)
		})
	})

	return r
}

// requestLogger logs one line per request through logger.
func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				logger.InfoContext(r.Context(), "http_request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration_ms", time.Since(start).Milliseconds(),
					"request_id", middleware.GetReqID(r.Context()),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
