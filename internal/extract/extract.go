// Package extract pulls typed values out of raw upstream records. Task
// custom fields are addressed by deployment-configured opaque IDs, never by
// position or a fixed schema; phone numbers come from a known set of field
// names on the task side and a fixed fallback chain on the call side.
package extract

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/call-analytics/internal/dateparse"
	"github.com/sells-group/call-analytics/internal/model"
)

// CustomField returns the value of the custom field with the given ID. A
// nested `{"value": ...}` object is unwrapped one level, matching how the
// task API encodes dropdown and relation fields.
func CustomField(t model.Task, fieldID string) (any, bool) {
	for _, f := range t.CustomFields {
		if f.ID != fieldID || f.Value == nil {
			continue
		}
		if m, ok := f.Value.(map[string]any); ok {
			inner, ok := m["value"]
			return inner, ok && inner != nil
		}
		return f.Value, true
	}
	return nil, false
}

// FieldString returns the field's value rendered as a string.
func FieldString(t model.Task, fieldID string) (string, bool) {
	v, ok := CustomField(t, fieldID)
	if !ok {
		return "", false
	}
	switch x := v.(type) {
	case string:
		return x, true
	default:
		return fmt.Sprint(x), true
	}
}

// FieldNumber returns the field's numeric value. ok is false when the field
// is absent or empty; a present but non-numeric value is an error so the
// caller can skip and log the record.
func FieldNumber(t model.Task, fieldID string) (val float64, ok bool, err error) {
	v, present := CustomField(t, fieldID)
	if !present {
		return 0, false, nil
	}
	switch x := v.(type) {
	case float64:
		return x, true, nil
	case int:
		return float64(x), true, nil
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false, nil
		}
		n, perr := strconv.ParseFloat(s, 64)
		if perr != nil {
			return 0, false, eris.Wrapf(perr, "extract: field %s not numeric", fieldID)
		}
		return n, true, nil
	default:
		return 0, false, eris.Errorf("extract: field %s has unsupported type %T", fieldID, v)
	}
}

// FieldDate returns the field's value as a calendar date. ok is false when
// the field is absent; a present but unparseable value is an error.
func FieldDate(t model.Task, fieldID string) (d model.Date, ok bool, err error) {
	v, present := CustomField(t, fieldID)
	if !present {
		return model.Date{}, false, nil
	}
	parsed, perr := dateparse.FieldValue(v)
	if perr != nil {
		return model.Date{}, false, eris.Wrapf(perr, "extract: field %s", fieldID)
	}
	return parsed, true, nil
}

// FieldMillis returns the field's value as raw epoch milliseconds, for
// window checks finer than a calendar date.
func FieldMillis(t model.Task, fieldID string) (int64, bool, error) {
	v, present := CustomField(t, fieldID)
	if !present {
		return 0, false, nil
	}
	switch x := v.(type) {
	case float64:
		return int64(x), true, nil
	case string:
		n, perr := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if perr != nil {
			return 0, false, eris.Wrapf(perr, "extract: field %s not a timestamp", fieldID)
		}
		return n, true, nil
	default:
		return 0, false, eris.Errorf("extract: field %s has unsupported type %T", fieldID, v)
	}
}

// phoneFieldNames are the custom-field names known to carry a customer
// phone number, compared case-insensitively as substrings.
var phoneFieldNames = []string{
	"primary phone",
	"phone number",
	"contact number",
	"phone",
	"mobile",
}

// TaskPhone returns the raw phone string attached to a task, or "" when
// none is present. Fields are matched by name first; phoneFieldID, when
// configured, matches by opaque ID as a fallback.
func TaskPhone(t model.Task, phoneFieldID string) string {
	for _, f := range t.CustomFields {
		if f.Value == nil {
			continue
		}
		name := strings.ToLower(f.Name)
		for _, known := range phoneFieldNames {
			if strings.Contains(name, known) {
				return fieldValueString(f.Value)
			}
		}
		if phoneFieldID != "" && f.ID == phoneFieldID {
			return fieldValueString(f.Value)
		}
	}
	return ""
}

// CallPhone returns the first populated phone field of a call record, in
// the source's precedence order.
func CallPhone(r model.CallRecord) string {
	for _, candidate := range []string{
		r.CustomerNumber,
		r.MasterNumber,
		r.CallerID,
		r.SourceNumber,
	} {
		if candidate != "" {
			return candidate
		}
	}
	return ""
}

func fieldValueString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case map[string]any:
		if inner, ok := x["value"]; ok && inner != nil {
			return fmt.Sprint(inner)
		}
		return ""
	default:
		return fmt.Sprint(x)
	}
}
