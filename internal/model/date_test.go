package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-01-05")
	require.NoError(t, err)
	assert.Equal(t, NewDate(2024, time.January, 5), d)

	_, err = ParseDate("05/01/2024")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDateAddDaysAndDaysUntil(t *testing.T) {
	d := NewDate(2024, time.January, 30)
	assert.Equal(t, NewDate(2024, time.February, 1), d.AddDays(2))
	assert.Equal(t, NewDate(2023, time.December, 31), d.AddDays(-30))
	assert.Equal(t, 2, d.DaysUntil(NewDate(2024, time.February, 1)))
	assert.Equal(t, -1, d.DaysUntil(NewDate(2024, time.January, 29)))
}

func TestDateOrdering(t *testing.T) {
	a := NewDate(2024, time.March, 1)
	b := NewDate(2024, time.March, 2)
	assert.True(t, a.Before(b))
	assert.True(t, b.After(a))
	assert.False(t, a.Before(a))
	assert.False(t, a.After(a))
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.June, 9)
	data, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-06-09"`, string(data))

	var back Date
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, d, back)

	assert.Error(t, json.Unmarshal([]byte(`123`), &back))
}

func TestSecondsUnmarshal(t *testing.T) {
	cases := map[string]Seconds{
		`42`:     42,
		`"42"`:   42,
		`"42.7"`: 42,
		`null`:   0,
		`""`:     0,
	}
	for raw, want := range cases {
		var s Seconds
		require.NoError(t, json.Unmarshal([]byte(raw), &s), "input %s", raw)
		assert.Equal(t, want, s, "input %s", raw)
	}

	var s Seconds
	assert.Error(t, json.Unmarshal([]byte(`"not a number"`), &s))
}

func TestCallRecordDecode(t *testing.T) {
	raw := `{"customer_number":"03001234567","call_type":"outbound","call_response":"Connected","duration":"42","time":"2024-01-05 10:00:00"}`
	var rec CallRecord
	require.NoError(t, json.Unmarshal([]byte(raw), &rec))
	assert.Equal(t, "03001234567", rec.CustomerNumber)
	assert.Equal(t, Seconds(42), rec.Duration)
	assert.Equal(t, "Connected", rec.CallResponse)
}
