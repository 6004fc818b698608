package report

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/call-analytics/internal/extract"
	"github.com/sells-group/call-analytics/internal/model"
	"github.com/sells-group/call-analytics/pkg/clickup"
)

// InstalledSurveys reports installations with recorded install hours over
// the 30 days leading up to dateStr. Tasks without positive hours are not
// counted.
func (s *Service) InstalledSurveys(ctx context.Context, dateStr string) (model.InstalledSurveyReport, error) {
	if dateStr == "" {
		return model.InstalledSurveyReport{}, Validationf("date is required")
	}
	end, err := model.ParseDate(dateStr)
	if err != nil {
		return model.InstalledSurveyReport{}, Validationf("invalid date %q, use YYYY-MM-DD", dateStr)
	}
	w := Window{Start: end.AddDays(-30), End: end}

	query := clickup.TaskQuery{IncludeClosed: true, Subtasks: true}
	tasks, err := clickup.FetchAll(ctx, s.clickup, s.cfg.InstalledList, query, s.caps)
	if err != nil {
		return model.InstalledSurveyReport{}, eris.Wrap(err, "report: installed surveys")
	}

	type dayAgg struct {
		count int
		hours float64
	}
	byDate := make(map[model.Date]dayAgg)
	report := model.InstalledSurveyReport{}

	for _, t := range tasks {
		d, ok, err := extract.FieldDate(t, s.cfg.Fields.SurveyDate)
		if err != nil {
			zap.L().Warn("skipping task with malformed install date",
				zap.String("task_id", t.ID),
				zap.Error(err),
			)
			continue
		}
		if !ok || !w.Contains(d) {
			continue
		}

		hours, ok, err := extract.FieldNumber(t, s.cfg.Fields.InstallHours)
		if err != nil {
			zap.L().Warn("skipping task with malformed install hours",
				zap.String("task_id", t.ID),
				zap.Error(err),
			)
			continue
		}
		if !ok || hours <= 0 {
			continue
		}

		agg := byDate[d]
		agg.count++
		agg.hours += hours
		byDate[d] = agg
		report.TotalInstalled++
		report.TotalHours += hours
	}

	report.DateWise = make([]model.InstalledDay, 0, w.Days())
	for _, d := range w.Dates() {
		agg := byDate[d]
		report.DateWise = append(report.DateWise, model.InstalledDay{
			Date:  d,
			Count: agg.count,
			Hours: agg.hours,
		})
	}
	return report, nil
}
