// Package report implements the aggregation engine: each aggregator fetches
// one or more upstream record sets for a date window, extracts per-record
// dates and values, and buckets them by calendar day. Every day in the
// requested window appears in the output, zero-filled when nothing
// contributed; the output is never sparse.
package report

import (
	"fmt"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/call-analytics/internal/model"
)

// ValidationError marks malformed caller input: bad date strings or invalid
// ranges. It is raised at the boundary, before any upstream call.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Validationf builds a ValidationError with a caller-facing message.
func Validationf(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return eris.As(err, &ve)
}

// Window is an inclusive calendar-date range.
type Window struct {
	Start model.Date
	End   model.Date
}

// ResolveWindow parses optional start/end date strings, defaulting to the
// trailing defaultDays ending today. end must not precede start. All
// violations surface as ValidationError before any fetch is issued.
func ResolveWindow(startStr, endStr string, defaultDays int, now time.Time) (Window, error) {
	today := model.DateOf(now)

	end := today
	if endStr != "" {
		parsed, err := model.ParseDate(endStr)
		if err != nil {
			return Window{}, Validationf("invalid end_date %q, use YYYY-MM-DD", endStr)
		}
		end = parsed
	}

	start := end.AddDays(-(defaultDays - 1))
	if startStr != "" {
		parsed, err := model.ParseDate(startStr)
		if err != nil {
			return Window{}, Validationf("invalid start_date %q, use YYYY-MM-DD", startStr)
		}
		start = parsed
	}

	w := Window{Start: start, End: end}
	if w.End.Before(w.Start) {
		return Window{}, Validationf("end_date %s precedes start_date %s", w.End, w.Start)
	}
	return w, nil
}

// Days returns the number of days in the window, inclusive.
func (w Window) Days() int {
	return w.Start.DaysUntil(w.End) + 1
}

// Dates enumerates every day in the window in order. This is the gap-fill
// basis for every daily report.
func (w Window) Dates() []model.Date {
	out := make([]model.Date, 0, w.Days())
	for d := w.Start; !d.After(w.End); d = d.AddDays(1) {
		out = append(out, d)
	}
	return out
}

// Contains reports whether d falls inside the window.
func (w Window) Contains(d model.Date) bool {
	return !d.Before(w.Start) && !d.After(w.End)
}

// StartMillis returns epoch milliseconds at the start of the window.
func (w Window) StartMillis() int64 {
	return w.Start.UnixMilli()
}

// EndMillisExclusive returns epoch milliseconds at midnight after the last
// day of the window.
func (w Window) EndMillisExclusive() int64 {
	return w.End.AddDays(1).UnixMilli()
}

// Period returns the window as a response TimePeriod.
func (w Window) Period() model.TimePeriod {
	return model.TimePeriod{StartDate: w.Start, EndDate: w.End}
}
