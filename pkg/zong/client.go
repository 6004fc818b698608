// Package zong wraps the telephony provider's VPBX custom reports API. The
// endpoint is a single POST that returns every call record in a date range
// inside a status envelope; there is no pagination on this side.
package zong

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/call-analytics/internal/model"
	"github.com/sells-group/call-analytics/internal/resilience"
)

// Client defines the telephony API operations used by this application.
type Client interface {
	CallRecords(ctx context.Context, start, end model.Date) ([]model.CallRecord, error)
}

// Config holds the credentials and connection settings for the provider.
type Config struct {
	BaseURL string
	VPBXID  string
	Token   string
	Timeout time.Duration
	// InsecureSkipVerify disables TLS certificate verification. The
	// provider's gateway serves a certificate that does not match its
	// hostname.
	InsecureSkipVerify bool
}

type client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	retry   resilience.RetryConfig
}

// New creates a telephony client. Calls are throttled to 2 req/s and
// retried on transient failures.
func New(cfg Config) Client {
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	transport := &http.Transport{}
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}
	retry := resilience.DefaultRetryConfig()
	retry.OnRetry = resilience.RetryLogger("zong", "call_records")
	return &client{
		cfg: cfg,
		http: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
		},
		limiter: rate.NewLimiter(2, 1),
		retry:   retry,
	}
}

type recordsRequest struct {
	VPBXID    string `json:"vpbx_id"`
	Token     string `json:"token"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

type recordsEnvelope struct {
	Status  bool               `json:"status"`
	Code    int                `json:"code"`
	Message string             `json:"message"`
	Data    []model.CallRecord `json:"data"`
}

// CallRecords fetches every call record in [start, end]. The fetch is
// read-only; records are never persisted.
func (c *client) CallRecords(ctx context.Context, start, end model.Date) ([]model.CallRecord, error) {
	body, err := json.Marshal(recordsRequest{
		VPBXID:    c.cfg.VPBXID,
		Token:     c.cfg.Token,
		StartDate: start.String(),
		EndDate:   end.String(),
	})
	if err != nil {
		return nil, eris.Wrap(err, "zong: marshal request")
	}

	return resilience.DoVal(ctx, c.retry, func(ctx context.Context) ([]model.CallRecord, error) {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "zong: rate limit")
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
		if err != nil {
			return nil, eris.Wrap(err, "zong: create request")
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, eris.Wrap(err, "zong: call records")
		}
		defer resp.Body.Close() //nolint:errcheck

		if resp.StatusCode != http.StatusOK {
			msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
			err := eris.Errorf("zong: http %d: %s", resp.StatusCode, string(msg))
			if resilience.IsTransientHTTPStatus(resp.StatusCode) {
				return nil, resilience.NewTransientError(err, resp.StatusCode)
			}
			return nil, err
		}

		var env recordsEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			return nil, eris.Wrap(err, "zong: decode response")
		}
		if !env.Status || env.Code != http.StatusOK {
			return nil, eris.Errorf("zong: api error code %d: %s", env.Code, env.Message)
		}
		return env.Data, nil
	})
}
