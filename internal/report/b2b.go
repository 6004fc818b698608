package report

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/call-analytics/internal/model"
	"github.com/sells-group/call-analytics/internal/phone"
	"github.com/sells-group/call-analytics/internal/reconcile"
	"github.com/sells-group/call-analytics/pkg/clickup"
)

// CompareB2B joins call records against tasks tagged as potential B2B
// leads. At most one call claims each normalized phone; the first call in
// source order wins. This join uses the prefix-stripping phone strategy;
// both sides carry country-code and trunk prefixes inconsistently.
func (s *Service) CompareB2B(ctx context.Context, startStr, endStr string) ([]model.MatchedResult, error) {
	w, err := s.window(startStr, endStr)
	if err != nil {
		return nil, err
	}

	var calls []model.CallRecord
	taskLists := make([][]model.Task, len(s.cfg.B2BLists))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := s.zong.CallRecords(gctx, w.Start, w.End)
		if err != nil {
			return eris.Wrap(err, "report: b2b call records")
		}
		calls = recs
		return nil
	})
	for i, listID := range s.cfg.B2BLists {
		i, listID := i, listID
		g.Go(func() error {
			query := clickup.TaskQuery{
				IncludeClosed: true,
				Subtasks:      true,
				Tags:          []string{s.cfg.B2BTag},
			}
			tasks, err := clickup.FetchAll(gctx, s.clickup, listID, query, s.caps)
			if err != nil {
				return eris.Wrapf(err, "report: b2b list %s", listID)
			}
			taskLists[i] = tasks
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var tasks []model.Task
	for _, lst := range taskLists {
		tasks = append(tasks, lst...)
	}

	matcher := reconcile.Matcher{
		Strategy:     phone.StripPrefixes,
		PhoneFieldID: s.cfg.Fields.PrimaryPhone,
	}
	results := matcher.Match(calls, tasks)
	if results == nil {
		results = []model.MatchedResult{}
	}
	return results, nil
}
