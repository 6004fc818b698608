package report

import (
	"context"
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/call-analytics/internal/extract"
	"github.com/sells-group/call-analytics/internal/model"
	"github.com/sells-group/call-analytics/pkg/clickup"
)

// dayMillis pads the server-side feedback date predicate by one day on each
// side; the exact window check happens client-side on the extracted date.
const dayMillis = int64(24 * 60 * 60 * 1000)

// FeedbackReport aggregates customer feedback entries with their NPS scores
// per day. Scores outside [0, 10] are treated as absent, not clamped.
func (s *Service) FeedbackReport(ctx context.Context, startStr, endStr string) (model.FeedbackReport, error) {
	w, err := s.window(startStr, endStr)
	if err != nil {
		return model.FeedbackReport{}, err
	}

	filters := []clickup.FieldFilter{
		{FieldID: s.cfg.Fields.FeedbackDate, Operator: ">=", Value: w.StartMillis() - dayMillis},
		{FieldID: s.cfg.Fields.FeedbackDate, Operator: "<=", Value: w.EndMillisExclusive() + dayMillis},
	}
	if s.cfg.Fields.FeedbackStatus != "" && s.cfg.Fields.FeedbackDoneID != "" {
		filters = append(filters, clickup.FieldFilter{
			FieldID:  s.cfg.Fields.FeedbackStatus,
			Operator: "=",
			Value:    s.cfg.Fields.FeedbackDoneID,
		})
	}

	query := clickup.TaskQuery{
		IncludeClosed: true,
		Subtasks:      true,
		CustomFields:  filters,
	}
	tasks, err := clickup.FetchAll(ctx, s.clickup, s.cfg.FeedbackList, query, s.caps)
	if err != nil {
		return model.FeedbackReport{}, eris.Wrap(err, "report: feedback")
	}

	byDate := make(map[model.Date][]model.FeedbackEntry)
	for _, t := range tasks {
		d, ok, err := extract.FieldDate(t, s.cfg.Fields.FeedbackDate)
		if err != nil {
			zap.L().Warn("skipping feedback task with malformed date",
				zap.String("task_id", t.ID),
				zap.Error(err),
			)
			continue
		}
		if !ok || !w.Contains(d) {
			continue
		}

		comment, _ := extract.FieldString(t, s.cfg.Fields.FeedbackComments)
		byDate[d] = append(byDate[d], model.FeedbackEntry{
			Name:    t.Name,
			NPS:     s.feedbackNPS(t),
			Comment: comment,
			TaskURL: t.URL,
		})
	}

	report := model.FeedbackReport{
		DailyBreakdown: make([]model.DailyFeedback, 0, w.Days()),
	}
	for _, d := range w.Dates() {
		entries := byDate[d]
		report.TotalFeedbackCalls += len(entries)
		report.DailyBreakdown = append(report.DailyBreakdown, model.DailyFeedback{
			Date:         d,
			TotalEntries: len(entries),
			AvgNPS:       averageNPS(entries),
			Entries:      entries,
		})
	}
	return report, nil
}

// feedbackNPS reads the NPS field; a value outside [0, 10] is dropped, not
// truncated to the range.
func (s *Service) feedbackNPS(t model.Task) *float64 {
	v, ok, err := extract.FieldNumber(t, s.cfg.Fields.FeedbackNPS)
	if err != nil {
		zap.L().Warn("dropping malformed NPS value",
			zap.String("task_id", t.ID),
			zap.Error(err),
		)
		return nil
	}
	if !ok || v < 0 || v > 10 {
		return nil
	}
	return &v
}

func averageNPS(entries []model.FeedbackEntry) *float64 {
	var sum float64
	var n int
	for _, e := range entries {
		if e.NPS != nil {
			sum += *e.NPS
			n++
		}
	}
	if n == 0 {
		return nil
	}
	avg := math.Round(sum/float64(n)*10) / 10
	return &avg
}
