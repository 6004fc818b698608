// Package server exposes the reporting engine over a thin JSON HTTP API.
// Routes do no work beyond parameter parsing, calling one engine operation,
// and serializing the result; all validation and aggregation logic lives in
// internal/report.
package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sells-group/call-analytics/internal/report"
)

// Server holds the router and its reporting engine.
type Server struct {
	reports *report.Service
	router  chi.Router
}

// New builds the HTTP API around the given reporting engine.
func New(reports *report.Service) *Server {
	s := &Server{reports: reports}

	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	r.Get("/health", s.handleHealth)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/connected-calls", s.handleConnectedCalls)
		r.Get("/outbound-calls", s.handleOutboundCalls)
		r.Get("/connected-outbound-calls", s.handleConnectedOutboundCalls)

		r.Get("/surveys/last-week", s.handleSurveysLastWeek)
		r.Get("/surveys/by-date-range", s.handleSurveysByRange)
		r.Get("/surveys/today", s.handleSurveysToday)
		r.Get("/surveys/by-end-date", s.handleSurveysByEndDate)

		r.Get("/total-survey", s.handleTotalSurvey)
		r.Get("/installed-survey", s.handleInstalledSurvey)
		r.Get("/pending-tasks", s.handlePendingTasks)
		r.Get("/payments-report", s.handlePaymentsReport)
		r.Get("/feedback", s.handleFeedback)
		r.Get("/converted-calls/analysis", s.handleConvertedCalls)

		r.Post("/integration/compare", s.handleCompareB2B)
	})

	s.router = r
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// requestLogger tags each request with an ID and logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		zap.L().Info("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
