package report

import (
	"context"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/call-analytics/internal/extract"
	"github.com/sells-group/call-analytics/internal/model"
	"github.com/sells-group/call-analytics/pkg/clickup"
)

// PaymentsReport reconciles amount payable against amount received for
// installations in the window, bucketed by installation date.
func (s *Service) PaymentsReport(ctx context.Context, startStr, endStr string) (model.PaymentReport, error) {
	w, err := s.window(startStr, endStr)
	if err != nil {
		return model.PaymentReport{}, err
	}

	query := clickup.TaskQuery{IncludeClosed: true}
	tasks, err := clickup.FetchAll(ctx, s.clickup, s.cfg.InstalledList, query, s.caps)
	if err != nil {
		return model.PaymentReport{}, eris.Wrap(err, "report: payments")
	}

	byDate := make(map[model.Date]model.DailyPayment)
	report := model.PaymentReport{}

	for _, t := range tasks {
		d, ok, err := extract.FieldDate(t, s.cfg.Fields.InstalledDate)
		if err != nil {
			zap.L().Warn("skipping task with malformed installation date",
				zap.String("task_id", t.ID),
				zap.Error(err),
			)
			continue
		}
		if !ok || !w.Contains(d) {
			continue
		}

		payable := s.paymentAmount(t, s.cfg.Fields.AmountPayable)
		received := s.paymentAmount(t, s.cfg.Fields.AmountReceived)

		day := byDate[d]
		day.Date = d
		day.Installations++
		day.TotalPayable += payable
		day.TotalReceived += received
		byDate[d] = day

		report.TotalInstallations++
		report.TotalAmountPayable += payable
		report.TotalAmountReceived += received
	}
	report.TotalAmountRemaining = report.TotalAmountPayable - report.TotalAmountReceived

	report.DailyBreakdown = make([]model.DailyPayment, 0, w.Days())
	for _, d := range w.Dates() {
		day := byDate[d]
		day.Date = d
		report.DailyBreakdown = append(report.DailyBreakdown, day)
	}
	return report, nil
}

// paymentAmount reads a money field, treating absent or malformed values as
// zero so one bad record never aborts the report.
func (s *Service) paymentAmount(t model.Task, fieldID string) float64 {
	v, ok, err := extract.FieldNumber(t, fieldID)
	if err != nil {
		zap.L().Warn("malformed amount field treated as zero",
			zap.String("task_id", t.ID),
			zap.String("field_id", fieldID),
			zap.Error(err),
		)
		return 0
	}
	if !ok {
		return 0
	}
	return v
}
