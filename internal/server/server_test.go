package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/call-analytics/internal/config"
	"github.com/sells-group/call-analytics/internal/model"
	"github.com/sells-group/call-analytics/internal/report"
	"github.com/sells-group/call-analytics/pkg/clickup"
)

type stubZong struct {
	mu      sync.Mutex
	records []model.CallRecord
	err     error
	calls   int
}

func (s *stubZong) CallRecords(_ context.Context, _, _ model.Date) ([]model.CallRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.records, s.err
}

type stubClickUp struct {
	tasks map[string][]model.Task
}

func (s *stubClickUp) ListTasks(_ context.Context, listID string, q clickup.TaskQuery) ([]model.Task, error) {
	if q.Page > 0 {
		return nil, nil
	}
	return s.tasks[listID], nil
}

func newTestServer(zc *stubZong, cc *stubClickUp) *Server {
	svc := report.New(zc, cc, config.ReportsConfig{
		DefaultDays:  30,
		MaxRangeDays: 60,
		SurveyLists:  []string{"sv-1"},
		B2BLists:     []string{"b2b-1"},
		B2BTag:       "potential b2b",
		Fields:       config.FieldIDs{PrimaryPhone: "f-phone", SurveyDate: "f-survey-date"},
	}, config.ClickUpConfig{})
	return New(svc)
}

func doRequest(t *testing.T, h http.Handler, method, target string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := newTestServer(&stubZong{}, &stubClickUp{})
	rec := doRequest(t, srv.Handler(), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"healthy"}`, rec.Body.String())
}

func TestCompareB2B_MatchesCallToLead(t *testing.T) {
	zc := &stubZong{records: []model.CallRecord{{
		ID:             "c1",
		CustomerNumber: "03001234567",
		CallType:       "outbound",
		CallResponse:   "Connected",
		Duration:       42,
		Time:           "2024-01-05 10:00:00",
	}}}
	cc := &stubClickUp{tasks: map[string][]model.Task{
		"b2b-1": {{
			ID:   "t1",
			Name: "B2B Lead",
			URL:  "https://app.clickup.com/t/t1",
			CustomFields: []model.CustomField{
				{ID: "f-phone", Name: "Primary Phone", Value: "+923001234567"},
			},
		}},
	}}
	srv := newTestServer(zc, cc)

	body := []byte(`{"start_date":"2024-01-01","end_date":"2024-01-07"}`)
	rec := doRequest(t, srv.Handler(), http.MethodPost, "/api/v1/integration/compare", body)
	require.Equal(t, http.StatusOK, rec.Code)

	var results []model.MatchedResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "t1", results[0].TaskID)
	assert.Equal(t, "B2B Lead", results[0].TaskName)
	assert.Equal(t, "03001234567", results[0].Phone)
	assert.Equal(t, model.Seconds(42), results[0].Call.Duration)
}

func TestCompareB2B_NoMatchesIsEmptyArray(t *testing.T) {
	srv := newTestServer(&stubZong{}, &stubClickUp{})

	body := []byte(`{"start_date":"2024-01-01","end_date":"2024-01-07"}`)
	rec := doRequest(t, srv.Handler(), http.MethodPost, "/api/v1/integration/compare", body)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestCompareB2B_BadBody(t *testing.T) {
	srv := newTestServer(&stubZong{}, &stubClickUp{})

	rec := doRequest(t, srv.Handler(), http.MethodPost, "/api/v1/integration/compare", []byte(`{nope`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConnectedCalls_ValidationBeforeFetch(t *testing.T) {
	zc := &stubZong{}
	srv := newTestServer(zc, &stubClickUp{})

	rec := doRequest(t, srv.Handler(), http.MethodGet, "/api/v1/connected-calls", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "required")
	assert.Zero(t, zc.calls)
}

func TestConnectedCalls_OK(t *testing.T) {
	zc := &stubZong{records: []model.CallRecord{
		{ID: "c1", CallResponse: "Connected"},
		{ID: "c2", CallResponse: "Missed"},
	}}
	srv := newTestServer(zc, &stubClickUp{})

	rec := doRequest(t, srv.Handler(), http.MethodGet,
		"/api/v1/connected-calls?start_date=2024-01-01&end_date=2024-01-07", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var listing model.CallListing
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &listing))
	assert.Equal(t, 1, listing.TotalCount)
}

func TestUpstreamFailure_Generic500(t *testing.T) {
	zc := &stubZong{err: errors.New("gateway exploded: token=secret")}
	srv := newTestServer(zc, &stubClickUp{})

	rec := doRequest(t, srv.Handler(), http.MethodGet,
		"/api/v1/connected-calls?start_date=2024-01-01&end_date=2024-01-07", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
	assert.NotContains(t, rec.Body.String(), "secret")
}

func TestConvertedCalls_RejectsBadDays(t *testing.T) {
	srv := newTestServer(&stubZong{}, &stubClickUp{})

	for _, days := range []string{"abc", "0", "-3"} {
		rec := doRequest(t, srv.Handler(), http.MethodGet, "/api/v1/converted-calls/analysis?days="+days, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "days=%s", days)
	}
}

func TestSurveysByRange_BadDates(t *testing.T) {
	srv := newTestServer(&stubZong{}, &stubClickUp{})

	rec := doRequest(t, srv.Handler(), http.MethodGet,
		"/api/v1/surveys/by-date-range?start=2024-01-07&end=2024-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
