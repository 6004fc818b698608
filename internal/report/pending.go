package report

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/call-analytics/internal/dateparse"
	"github.com/sells-group/call-analytics/internal/model"
	"github.com/sells-group/call-analytics/pkg/clickup"
)

// PendingTasks reports tasks still in a pending status, queried by due date
// and bucketed by creation date.
func (s *Service) PendingTasks(ctx context.Context, startStr, endStr string) (model.PendingReport, error) {
	w, err := s.window(startStr, endStr)
	if err != nil {
		return model.PendingReport{}, err
	}

	startMillis := w.StartMillis()
	endMillis := w.EndMillisExclusive()
	query := clickup.TaskQuery{
		DueDateGT: &startMillis,
		DueDateLT: &endMillis,
	}
	tasks, err := clickup.FetchAll(ctx, s.clickup, s.cfg.PendingList, query, s.caps)
	if err != nil {
		return model.PendingReport{}, eris.Wrap(err, "report: pending tasks")
	}

	counts := make(map[model.Date]int)
	report := model.PendingReport{}
	for _, t := range tasks {
		if !strings.EqualFold(t.Status.Status, "pending") {
			continue
		}
		created, err := dateparse.Millis(t.DateCreated)
		if err != nil {
			zap.L().Warn("skipping pending task with malformed creation date",
				zap.String("task_id", t.ID),
				zap.Error(err),
			)
			continue
		}
		counts[created]++
		report.TotalPending++
	}

	report.DateWise = make([]model.DailyPending, 0, w.Days())
	for _, d := range w.Dates() {
		report.DateWise = append(report.DateWise, model.DailyPending{
			Date:         d,
			PendingCalls: counts[d],
		})
	}
	return report, nil
}
