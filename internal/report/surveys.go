package report

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/call-analytics/internal/extract"
	"github.com/sells-group/call-analytics/internal/model"
	"github.com/sells-group/call-analytics/pkg/clickup"
)

// SurveysLastWeek returns daily survey counts for the trailing 7 days.
func (s *Service) SurveysLastWeek(ctx context.Context) ([]model.DailySurveyCount, error) {
	w, err := ResolveWindow("", "", 7, s.now())
	if err != nil {
		return nil, err
	}
	return s.surveysForWindow(ctx, w)
}

// SurveysToday returns today's survey count.
func (s *Service) SurveysToday(ctx context.Context) (model.DailySurveyCount, error) {
	w, err := ResolveWindow("", "", 1, s.now())
	if err != nil {
		return model.DailySurveyCount{}, err
	}
	daily, err := s.surveysForWindow(ctx, w)
	if err != nil {
		return model.DailySurveyCount{}, err
	}
	if len(daily) == 0 {
		return model.DailySurveyCount{Date: w.End}, nil
	}
	return daily[0], nil
}

// SurveysByRange returns daily survey counts for an explicit range, capped
// at the configured maximum span.
func (s *Service) SurveysByRange(ctx context.Context, startStr, endStr string) ([]model.DailySurveyCount, error) {
	if startStr == "" || endStr == "" {
		return nil, Validationf("start and end are required")
	}
	w, err := s.window(startStr, endStr)
	if err != nil {
		return nil, err
	}
	maxDays := s.cfg.MaxRangeDays
	if maxDays <= 0 {
		maxDays = 60
	}
	if w.Days() > maxDays {
		return nil, Validationf("date range too large (max %d days)", maxDays)
	}
	return s.surveysForWindow(ctx, w)
}

// SurveysByEndDate returns daily counts for the 30 days ending at endStr.
func (s *Service) SurveysByEndDate(ctx context.Context, endStr string) ([]model.DailySurveyCount, error) {
	if endStr == "" {
		return nil, Validationf("end_date is required")
	}
	end, err := model.ParseDate(endStr)
	if err != nil {
		return nil, Validationf("invalid end_date %q, use YYYY-MM-DD", endStr)
	}
	w := Window{Start: end.AddDays(-29), End: end}
	return s.surveysForWindow(ctx, w)
}

// TotalSurveys returns the total and per-day survey counts for the 30 days
// leading up to dateStr.
func (s *Service) TotalSurveys(ctx context.Context, dateStr string) (model.SurveyTotals, error) {
	if dateStr == "" {
		return model.SurveyTotals{}, Validationf("date is required")
	}
	end, err := model.ParseDate(dateStr)
	if err != nil {
		return model.SurveyTotals{}, Validationf("invalid date %q, use YYYY-MM-DD", dateStr)
	}
	w := Window{Start: end.AddDays(-30), End: end}

	daily, err := s.surveysForWindow(ctx, w)
	if err != nil {
		return model.SurveyTotals{}, err
	}
	total := 0
	for _, d := range daily {
		total += d.Count
	}
	return model.SurveyTotals{TotalSurveyCount: total, DateWise: daily}, nil
}

// surveysForWindow fetches the configured survey lists concurrently,
// filters server-side on the survey date field, and buckets by survey date.
func (s *Service) surveysForWindow(ctx context.Context, w Window) ([]model.DailySurveyCount, error) {
	query := clickup.TaskQuery{
		IncludeClosed: true,
		Subtasks:      true,
		CustomFields:  s.dateRangeFilters(s.cfg.Fields.SurveyDate, w),
	}

	g, gctx := errgroup.WithContext(ctx)
	results := make([][]model.Task, len(s.cfg.SurveyLists))
	for i, listID := range s.cfg.SurveyLists {
		i, listID := i, listID
		g.Go(func() error {
			tasks, err := clickup.FetchAll(gctx, s.clickup, listID, query, s.caps)
			if err != nil {
				return eris.Wrapf(err, "report: survey list %s", listID)
			}
			results[i] = tasks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	counts := make(map[model.Date]int)
	for _, tasks := range results {
		for _, t := range tasks {
			d, ok, err := extract.FieldDate(t, s.cfg.Fields.SurveyDate)
			if err != nil {
				zap.L().Warn("skipping task with malformed survey date",
					zap.String("task_id", t.ID),
					zap.Error(err),
				)
				continue
			}
			if !ok || !w.Contains(d) {
				continue
			}
			counts[d]++
		}
	}

	daily := make([]model.DailySurveyCount, 0, w.Days())
	for _, d := range w.Dates() {
		daily = append(daily, model.DailySurveyCount{Date: d, Count: counts[d]})
	}
	return daily, nil
}

// dateRangeFilters builds the server-side window predicate on a date field.
func (s *Service) dateRangeFilters(fieldID string, w Window) []clickup.FieldFilter {
	return []clickup.FieldFilter{
		{FieldID: fieldID, Operator: ">=", Value: w.StartMillis()},
		{FieldID: fieldID, Operator: "<=", Value: w.EndMillisExclusive()},
	}
}
