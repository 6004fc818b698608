package report

import (
	"context"
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/call-analytics/internal/dateparse"
	"github.com/sells-group/call-analytics/internal/extract"
	"github.com/sells-group/call-analytics/internal/model"
	"github.com/sells-group/call-analytics/internal/phone"
	"github.com/sells-group/call-analytics/pkg/clickup"
	"github.com/sells-group/call-analytics/pkg/zong"
)

// ConvertedCalls matches outbound connected calls against leads installed
// in the trailing window and reports the conversion rate. This join uses
// the last-ten-digits phone strategy; the lead source stores numbers with
// inconsistent country-code prefixes.
func (s *Service) ConvertedCalls(ctx context.Context, days int) (model.ConversionReport, error) {
	if days <= 0 {
		days = s.defaultDays()
	}
	w, err := ResolveWindow("", "", days, s.now())
	if err != nil {
		return model.ConversionReport{}, err
	}

	var calls []model.CallRecord
	var leads []model.Task

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := s.zong.CallRecords(gctx, w.Start, w.End)
		if err != nil {
			return eris.Wrap(err, "report: fetch outbound calls")
		}
		calls = zong.FilterConnectedOutbound(recs)
		return nil
	})
	g.Go(func() error {
		createdGT := w.StartMillis()
		createdLT := w.EndMillisExclusive()
		query := clickup.TaskQuery{
			IncludeClosed: true,
			DateCreatedGT: &createdGT,
			DateCreatedLT: &createdLT,
		}
		fetched, err := clickup.FetchAll(gctx, s.clickup, s.cfg.InstalledList, query, s.caps)
		if err != nil {
			return eris.Wrap(err, "report: fetch installed leads")
		}
		leads = fetched
		return nil
	})
	if err := g.Wait(); err != nil {
		return model.ConversionReport{}, err
	}

	type leadInfo struct {
		name string
		url  string
	}
	byPhone := make(map[string]leadInfo, len(leads))
	for _, lead := range leads {
		key := phone.LastTen(extract.TaskPhone(lead, s.cfg.Fields.PrimaryPhone))
		if key == "" {
			continue
		}
		if _, seen := byPhone[key]; !seen {
			byPhone[key] = leadInfo{name: lead.Name, url: lead.URL}
		}
	}

	var converted []model.ConvertedCall
	dailyCounts := make(map[model.Date]int)
	for _, call := range calls {
		raw := extract.CallPhone(call)
		key := phone.LastTen(raw)
		if key == "" {
			continue
		}
		lead, ok := byPhone[key]
		if !ok {
			continue
		}

		callDate, err := dateparse.CallTime(call.Time)
		if err != nil {
			// Best-effort default; the record still counts for the day the
			// report runs.
			zap.L().Warn("unparseable call time, defaulting to today",
				zap.String("call_id", call.ID),
				zap.String("time", call.Time),
				zap.Error(err),
			)
			callDate = model.DateOf(s.now())
		}

		name := lead.name
		if name == "" {
			name = "Unknown Customer"
		}
		converted = append(converted, model.ConvertedCall{
			CallID:          call.ID,
			PhoneNumber:     raw,
			NormalizedPhone: key,
			CallTime:        call.Time,
			Duration:        int(call.Duration),
			CustomerName:    name,
			TaskURL:         lead.url,
			CallDate:        callDate,
		})
		dailyCounts[callDate]++
	}

	report := model.ConversionReport{
		TotalConvertedCalls: len(converted),
		ConvertedCalls:      converted,
		DailyBreakdown:      make([]model.DailyCount, 0, w.Days()),
		TimePeriod:          w.Period(),
	}
	if len(calls) > 0 {
		report.ConversionRate = math.Round(float64(len(converted))/float64(len(calls))*100*100) / 100
	}
	for _, d := range w.Dates() {
		report.DailyBreakdown = append(report.DailyBreakdown, model.DailyCount{
			Date:  d,
			Count: dailyCounts[d],
		})
	}
	return report, nil
}
