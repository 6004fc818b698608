package model

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
)

// Seconds is a call duration. The telephony API emits it as either a JSON
// number or a numeric string depending on the endpoint.
type Seconds int

// UnmarshalJSON accepts a number, a numeric string, or null.
func (s *Seconds) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*s = 0
		return nil
	}
	raw := string(data)
	if raw[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return eris.Wrap(err, "model: duration string")
		}
		raw = strings.TrimSpace(str)
		if raw == "" {
			*s = 0
			return nil
		}
	}
	n, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return eris.Wrap(err, "model: duration value")
	}
	*s = Seconds(int(n))
	return nil
}

// CallRecord is one telephony event fetched from the provider. Records are
// immutable once fetched and are never persisted.
type CallRecord struct {
	ID             string  `json:"id,omitempty"`
	CustomerNumber string  `json:"customer_number"`
	MasterNumber   string  `json:"master_number,omitempty"`
	CallerID       string  `json:"caller_id,omitempty"`
	SourceNumber   string  `json:"source_number,omitempty"`
	Prefix         string  `json:"prefix,omitempty"`
	Extension      string  `json:"extension,omitempty"`
	CallType       string  `json:"call_type"`
	CallResponse   string  `json:"call_response"`
	Duration       Seconds `json:"duration"`
	Time           string  `json:"time"`
	Recording      string  `json:"recording,omitempty"`
}

// MatchedResult pairs a call record with the task claimed by its normalized
// phone number. Phone holds the raw matching number as it appeared on the
// call side.
type MatchedResult struct {
	TaskID   string     `json:"task_id"`
	TaskName string     `json:"task_name"`
	TaskURL  string     `json:"task_url"`
	Phone    string     `json:"phone,omitempty"`
	Call     CallRecord `json:"call"`
}
