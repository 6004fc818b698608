// Package dateparse turns the heterogeneous date representations emitted by
// the upstream APIs into calendar dates. The task source emits epoch
// milliseconds (as numbers or digit strings) and occasionally ISO dates; the
// telephony source emits free-text date-times in 12- or 24-hour form.
package dateparse

import (
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/call-analytics/internal/model"
)

// Millis interprets v as epoch milliseconds. It accepts JSON numbers
// (float64 after decoding), integers, and digit strings.
func Millis(v any) (model.Date, error) {
	switch x := v.(type) {
	case float64:
		return model.DateOf(time.UnixMilli(int64(x))), nil
	case int64:
		return model.DateOf(time.UnixMilli(x)), nil
	case int:
		return model.DateOf(time.UnixMilli(int64(x))), nil
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return model.Date{}, eris.Wrapf(err, "dateparse: millis %q", x)
		}
		return model.DateOf(time.UnixMilli(n)), nil
	default:
		return model.Date{}, eris.Errorf("dateparse: unsupported millis value %T", v)
	}
}

// FieldValue parses a task custom-field date value. The source is known to
// emit epoch milliseconds, so that interpretation is tried first, then an
// ISO-8601 date-time, then a bare YYYY-MM-DD date.
func FieldValue(v any) (model.Date, error) {
	s, isString := v.(string)
	if !isString {
		return Millis(v)
	}

	s = strings.TrimSpace(s)
	if isDigits(s) {
		return Millis(s)
	}
	if i := strings.IndexByte(s, 'T'); i >= 0 {
		return model.ParseDate(s[:i])
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, eris.Errorf("dateparse: unsupported date value %q", s)
	}
	return d, nil
}

var callTimeLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 03:04:05 PM",
	"2006-01-02 15:04:05",
}

// CallTime parses a call record timestamp: ISO-8601, 12-hour AM/PM, or
// 24-hour form. Callers that must not reject the record may log the error
// and fall back to the current date.
func CallTime(s string) (model.Date, error) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "Z"))
	if s == "" {
		return model.Date{}, eris.New("dateparse: empty call time")
	}
	for _, layout := range callTimeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return model.DateOf(t), nil
		}
	}
	return model.Date{}, eris.Errorf("dateparse: unsupported call time %q", s)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
