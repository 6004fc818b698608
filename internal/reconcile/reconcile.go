// Package reconcile joins call records against tasks by normalized phone
// number. At most one call claims each phone key; the first call in source
// order wins.
package reconcile

import (
	"github.com/sells-group/call-analytics/internal/extract"
	"github.com/sells-group/call-analytics/internal/model"
	"github.com/sells-group/call-analytics/internal/phone"
)

// Matcher joins one list of call records against one list of tasks. The
// same normalization strategy is applied to both sides of the join.
type Matcher struct {
	Strategy phone.Strategy
	// PhoneFieldID is the configured custom-field ID holding the task's
	// phone number, used when no field matches by name.
	PhoneFieldID string
}

// Match returns one MatchedResult per phone key shared by a call and a
// task. Tasks never claimed by a call, and calls whose phone is absent or
// unmatched, produce nothing.
func (m Matcher) Match(calls []model.CallRecord, tasks []model.Task) []model.MatchedResult {
	byPhone := make(map[string]model.Task, len(tasks))
	for _, t := range tasks {
		key := m.Strategy(extract.TaskPhone(t, m.PhoneFieldID))
		if key == "" {
			continue
		}
		if _, seen := byPhone[key]; !seen {
			byPhone[key] = t
		}
	}

	var results []model.MatchedResult
	claimed := make(map[string]bool, len(byPhone))
	for _, call := range calls {
		raw := extract.CallPhone(call)
		key := m.Strategy(raw)
		if key == "" || claimed[key] {
			continue
		}
		task, ok := byPhone[key]
		if !ok {
			continue
		}
		claimed[key] = true
		results = append(results, model.MatchedResult{
			TaskID:   task.ID,
			TaskName: task.Name,
			TaskURL:  task.URL,
			Phone:    raw,
			Call:     call,
		})
	}
	return results
}
