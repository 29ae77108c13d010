package marvel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/phrazzld/marvel-api/internal/config"
	"github.com/phrazzld/marvel-api/internal/platform/logger"
	"github.com/phrazzld/marvel-api/internal/redact"
)

// Results is the data.results array of an upstream response. A nil Results
// means the upstream gave no usable answer; a non-nil empty Results means it
// answered with zero records.
type Results []json.RawMessage

// successCode is the envelope code of a successful upstream response.
const successCode = "200"

// Client fetches signed upstream URLs.
type Client struct {
	http   *resty.Client
	logger *slog.Logger
}

// NewClient creates a Client with the timeout and retry policy from cfg.
func NewClient(cfg config.UpstreamConfig, l *slog.Logger) *Client {
	if l == nil {
		l = slog.Default()
	}
	l = l.With(slog.String("component", "marvel_client"))

	rc := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetRetryWaitTime(250*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetLogger(restyLogger{logger: l}).
		SetHeader("Accept", "application/json").
		AddRetryCondition(func(r *resty.Response, err error) bool {
			if err != nil {
				return true
			}
			return r.StatusCode() == http.StatusTooManyRequests || r.StatusCode() >= http.StatusInternalServerError
		})

	return &Client{http: rc, logger: l}
}

// Fetch performs a GET on url and returns data.results.
//
// The only error returned is the context's; every upstream failure is logged
// and reported as nil Results.
func (c *Client) Fetch(ctx context.Context, url string) (Results, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)
	safeURL := redact.URL(url)

	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		log.WarnContext(ctx, "upstream request failed",
			slog.String("url", safeURL),
			slog.String("error", redact.Error(err)))
		return nil, nil
	}

	if !resp.IsSuccess() {
		log.WarnContext(ctx, "upstream returned non-success status",
			slog.String("url", safeURL),
			slog.Int("status", resp.StatusCode()))
		return nil, nil
	}

	results, err := decodeResults(resp.Body())
	if err != nil {
		log.WarnContext(ctx, "upstream response rejected",
			slog.String("url", safeURL),
			slog.String("error", err.Error()))
		return nil, nil
	}

	log.DebugContext(ctx, "upstream request completed",
		slog.String("url", safeURL),
		slog.Int("results", len(results)))

	return results, nil
}

type envelope struct {
	Code json.RawMessage `json:"code"`
	Data *struct {
		Results json.RawMessage `json:"results"`
	} `json:"data"`
}

// decodeResults extracts data.results from an upstream body. It fails for an
// empty or malformed body, for a code other than 200 in either string or
// number form, and when the results array is missing.
func decodeResults(body []byte) (Results, error) {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil, fmt.Errorf("empty body")
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("malformed body: %w", err)
	}

	if code := coerceCode(env.Code); code != successCode {
		return nil, fmt.Errorf("unexpected code %q", code)
	}

	if env.Data == nil || len(env.Data.Results) == 0 || string(env.Data.Results) == "null" {
		return nil, fmt.Errorf("missing data.results")
	}

	var results Results
	if err := json.Unmarshal(env.Data.Results, &results); err != nil {
		return nil, fmt.Errorf("malformed data.results: %w", err)
	}
	if results == nil {
		results = Results{}
	}

	return results, nil
}

func coerceCode(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if unquoted, err := strconv.Unquote(string(raw)); err == nil {
		return unquoted
	}
	return string(raw)
}

// restyLogger routes resty's internal messages through slog with signed
// query parameters removed.
type restyLogger struct {
	logger *slog.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) {
	l.logger.Error(redact.String(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Warnf(format string, v ...interface{}) {
	l.logger.Warn(redact.String(fmt.Sprintf(format, v...)))
}

func (l restyLogger) Debugf(format string, v ...interface{}) {
	l.logger.Debug(redact.String(fmt.Sprintf(format, v...)))
}
