package zong

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/call-analytics/internal/model"
)

func window() (model.Date, model.Date) {
	return model.NewDate(2024, time.January, 1), model.NewDate(2024, time.January, 7)
}

func okEnvelope(records ...model.CallRecord) recordsEnvelope {
	return recordsEnvelope{Status: true, Code: 200, Data: records}
}

func TestCallRecords_SendsCredentialsAndRange(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req recordsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "vpbx-1", req.VPBXID)
		assert.Equal(t, "secret", req.Token)
		assert.Equal(t, "2024-01-01", req.StartDate)
		assert.Equal(t, "2024-01-07", req.EndDate)

		json.NewEncoder(w).Encode(okEnvelope(model.CallRecord{ID: "c1"}))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL, VPBXID: "vpbx-1", Token: "secret"})
	start, end := window()
	records, err := c.CallRecords(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "c1", records[0].ID)
}

func TestCallRecords_StringDurationDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":true,"code":200,"data":[{"id":"c1","duration":"42"},{"id":"c2","duration":17}]}`))
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	start, end := window()
	records, err := c.CallRecords(context.Background(), start, end)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, model.Seconds(42), records[0].Duration)
	assert.Equal(t, model.Seconds(17), records[1].Duration)
}

func TestCallRecords_EnvelopeErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(recordsEnvelope{Status: false, Code: 403, Message: "invalid token"})
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	start, end := window()
	_, err := c.CallRecords(context.Background(), start, end)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid token")
}

func TestCallRecords_RetriesTransientStatus(t *testing.T) {
	var attempts atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		json.NewEncoder(w).Encode(okEnvelope())
	}))
	defer srv.Close()

	c := New(Config{BaseURL: srv.URL})
	c.(*client).retry.InitialBackoff = time.Millisecond
	start, end := window()
	_, err := c.CallRecords(context.Background(), start, end)
	require.NoError(t, err)
	assert.Equal(t, int32(2), attempts.Load())
}

func TestFilters(t *testing.T) {
	records := []model.CallRecord{
		{ID: "c1", CallType: "outbound", CallResponse: "Connected"},
		{ID: "c2", CallType: "Outbound", CallResponse: "No Answer"},
		{ID: "c3", CallType: "inbound", CallResponse: "Connected"},
	}

	connected := FilterConnected(records)
	require.Len(t, connected, 2)
	assert.Equal(t, "c1", connected[0].ID)
	assert.Equal(t, "c3", connected[1].ID)

	outbound := FilterOutbound(records)
	require.Len(t, outbound, 2)
	assert.Equal(t, "c1", outbound[0].ID)
	assert.Equal(t, "c2", outbound[1].ID)

	both := FilterConnectedOutbound(records)
	require.Len(t, both, 1)
	assert.Equal(t, "c1", both[0].ID)
}
