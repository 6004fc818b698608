package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/sells-group/call-analytics/internal/report"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) handleConnectedCalls(w http.ResponseWriter, r *http.Request) {
	out, err := s.reports.ConnectedCalls(r.Context(),
		r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	respond(w, out, err)
}

func (s *Server) handleOutboundCalls(w http.ResponseWriter, r *http.Request) {
	out, err := s.reports.OutboundCalls(r.Context(),
		r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	respond(w, out, err)
}

func (s *Server) handleConnectedOutboundCalls(w http.ResponseWriter, r *http.Request) {
	out, err := s.reports.ConnectedOutboundCalls(r.Context(),
		r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	respond(w, out, err)
}

func (s *Server) handleSurveysLastWeek(w http.ResponseWriter, r *http.Request) {
	out, err := s.reports.SurveysLastWeek(r.Context())
	respond(w, out, err)
}

func (s *Server) handleSurveysByRange(w http.ResponseWriter, r *http.Request) {
	out, err := s.reports.SurveysByRange(r.Context(),
		r.URL.Query().Get("start"), r.URL.Query().Get("end"))
	respond(w, out, err)
}

func (s *Server) handleSurveysToday(w http.ResponseWriter, r *http.Request) {
	out, err := s.reports.SurveysToday(r.Context())
	respond(w, out, err)
}

func (s *Server) handleSurveysByEndDate(w http.ResponseWriter, r *http.Request) {
	out, err := s.reports.SurveysByEndDate(r.Context(), r.URL.Query().Get("end_date"))
	respond(w, out, err)
}

func (s *Server) handleTotalSurvey(w http.ResponseWriter, r *http.Request) {
	out, err := s.reports.TotalSurveys(r.Context(), r.URL.Query().Get("date"))
	respond(w, out, err)
}

func (s *Server) handleInstalledSurvey(w http.ResponseWriter, r *http.Request) {
	out, err := s.reports.InstalledSurveys(r.Context(), r.URL.Query().Get("date"))
	respond(w, out, err)
}

func (s *Server) handlePendingTasks(w http.ResponseWriter, r *http.Request) {
	out, err := s.reports.PendingTasks(r.Context(),
		r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	respond(w, out, err)
}

func (s *Server) handlePaymentsReport(w http.ResponseWriter, r *http.Request) {
	out, err := s.reports.PaymentsReport(r.Context(),
		r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	respond(w, out, err)
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	out, err := s.reports.FeedbackReport(r.Context(),
		r.URL.Query().Get("start_date"), r.URL.Query().Get("end_date"))
	respond(w, out, err)
}

func (s *Server) handleConvertedCalls(w http.ResponseWriter, r *http.Request) {
	days := 0
	if raw := r.URL.Query().Get("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(w, report.Validationf("days must be a positive integer"))
			return
		}
		days = parsed
	}
	out, err := s.reports.ConvertedCalls(r.Context(), days)
	respond(w, out, err)
}

func (s *Server) handleCompareB2B(w http.ResponseWriter, r *http.Request) {
	var body struct {
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, report.Validationf("invalid request body"))
			return
		}
	}
	out, err := s.reports.CompareB2B(r.Context(), body.StartDate, body.EndDate)
	respond(w, out, err)
}

func respond(w http.ResponseWriter, out any, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		zap.L().Error("encode response", zap.Error(err))
	}
}

// writeError maps validation failures to 400 and everything else to a
// generic 500 so upstream error detail never leaks a stack trace.
func writeError(w http.ResponseWriter, err error) {
	if report.IsValidation(err) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	zap.L().Error("request failed", zap.Error(err))
	writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
}
