// Package clickup wraps the project-management provider's task API: a
// paginated list endpoint filtered server-side by tags, creation/due dates,
// and custom-field predicates.
package clickup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/call-analytics/internal/model"
	"github.com/sells-group/call-analytics/internal/resilience"
)

// PageSize is the fixed page size the task API serves. A page shorter than
// this is the last one.
const PageSize = 100

// Client defines the task API operations used by this application.
type Client interface {
	ListTasks(ctx context.Context, listID string, q TaskQuery) ([]model.Task, error)
}

// Config holds credentials and connection settings for the task API.
type Config struct {
	BaseURL    string
	Token      string
	Timeout    time.Duration
	RatePerSec float64
}

// FieldFilter is one server-side custom-field predicate.
type FieldFilter struct {
	FieldID  string `json:"field_id"`
	Operator string `json:"operator"`
	Value    any    `json:"value"`
}

// TaskQuery holds the filter parameters for one list page request.
type TaskQuery struct {
	Page          int
	IncludeClosed bool
	Subtasks      bool
	Tags          []string
	CustomFields  []FieldFilter
	DateCreatedGT *int64
	DateCreatedLT *int64
	DueDateGT     *int64
	DueDateLT     *int64
}

type client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// New creates a task API client. Requests are rate limited and retried on
// transient failures.
func New(cfg Config) Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.clickup.com/api/v2"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RatePerSec <= 0 {
		cfg.RatePerSec = 5
	}
	retry := resilience.DefaultRetryConfig()
	retry.OnRetry = resilience.RetryLogger("clickup", "list_tasks")
	return &client{
		cfg:     cfg,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), max(int(cfg.RatePerSec), 1)),
		retry:   retry,
	}
}

type tasksResponse struct {
	Tasks []model.Task `json:"tasks"`
}

// ListTasks fetches one page of tasks from the given list.
func (c *client) ListTasks(ctx context.Context, listID string, q TaskQuery) ([]model.Task, error) {
	params, err := q.values()
	if err != nil {
		return nil, err
	}
	reqURL := fmt.Sprintf("%s/list/%s/task?%s", c.cfg.BaseURL, url.PathEscape(listID), params.Encode())

	return resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]model.Task, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "clickup: rate limit")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, eris.Wrap(err, "clickup: create request")
		}
		req.Header.Set("Authorization", c.cfg.Token)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, eris.Wrapf(err, "clickup: list %s", listID)
		}
		defer resp.Body.Close() //nolint:errcheck

		if resp.StatusCode != http.StatusOK {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			err := eris.Errorf("clickup: list %s: http %d: %s", listID, resp.StatusCode, string(msg))
			if resilience.IsTransientHTTPStatus(resp.StatusCode) {
				return nil, resilience.NewTransientError(err, resp.StatusCode)
			}
			return nil, err
		}

		var body tasksResponse
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return nil, eris.Wrapf(err, "clickup: decode list %s", listID)
		}

		for i := range body.Tasks {
			if body.Tasks[i].URL == "" {
				body.Tasks[i].URL = "https://app.clickup.com/t/" + body.Tasks[i].ID
			}
		}
		return body.Tasks, nil
	})
}

func (q TaskQuery) values() (url.Values, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(q.Page))
	if q.IncludeClosed {
		params.Set("include_closed", "true")
	}
	if q.Subtasks {
		params.Set("subtasks", "true")
	}
	for _, tag := range q.Tags {
		params.Add("tags[]", tag)
	}
	if len(q.CustomFields) > 0 {
		encoded, err := json.Marshal(q.CustomFields)
		if err != nil {
			return nil, eris.Wrap(err, "clickup: encode field filters")
		}
		params.Set("custom_fields", string(encoded))
	}
	setMillis := func(key string, v *int64) {
		if v != nil {
			params.Set(key, strconv.FormatInt(*v, 10))
		}
	}
	setMillis("date_created_gt", q.DateCreatedGT)
	setMillis("date_created_lt", q.DateCreatedLT)
	setMillis("due_date_gt", q.DueDateGT)
	setMillis("due_date_lt", q.DueDateLT)
	return params, nil
}
