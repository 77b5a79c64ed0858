package fathom

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	backoff "github.com/cenkalti/backoff/v4"

	"github.com/fathomsync/fathomsync/internal/instrumentation"
	"github.com/fathomsync/fathomsync/internal/logging"
)

const (
	// defaultMaxAttempts is the per-request attempt budget, including the
	// first attempt.
	defaultMaxAttempts = 3

	// defaultBackoffInitial and defaultBackoffMax bound the exponential
	// backoff between transient-failure retries.
	defaultBackoffInitial = 5 * time.Second
	defaultBackoffMax     = 30 * time.Second

	// defaultRateLimitSleep is the fixed pause after an HTTP 429 before the
	// retry layer takes over again. Deliberately much longer than ordinary
	// backoff: a 429 means the whole window is exhausted.
	defaultRateLimitSleep = 65 * time.Second
)

// Client talks to the Fathom external API. All outbound requests pass through
// the limiter and the retry policy. Client is not safe for concurrent use;
// the sync loop is strictly sequential.
type Client struct {
	baseURL   string
	apiKey    string
	pageSize  int
	userAgent string

	httpClient *http.Client
	limiter    *Limiter
	logger     *slog.Logger
	metrics    *instrumentation.Metrics

	maxAttempts    int
	backoffInitial time.Duration
	backoffMax     time.Duration
	rateLimitSleep time.Duration
	sleep          func(time.Duration)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithMetrics attaches a metrics recorder for API request instrumentation.
func WithMetrics(m *instrumentation.Metrics) ClientOption {
	return func(c *Client) { c.metrics = m }
}

// WithRetryPolicy overrides the attempt budget and backoff bounds.
// Intended for tests; production uses the defaults.
func WithRetryPolicy(maxAttempts int, initial, max time.Duration) ClientOption {
	return func(c *Client) {
		c.maxAttempts = maxAttempts
		c.backoffInitial = initial
		c.backoffMax = max
	}
}

// WithRateLimitSleep overrides the fixed post-429 pause.
func WithRateLimitSleep(d time.Duration) ClientOption {
	return func(c *Client) { c.rateLimitSleep = d }
}

// WithSleep replaces the sleep function used for the 429 pause.
func WithSleep(sleep func(time.Duration)) ClientOption {
	return func(c *Client) { c.sleep = sleep }
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) { c.userAgent = ua }
}

// NewClient creates a Fathom API client.
func NewClient(baseURL, apiKey string, pageSize int, limiter *Limiter, logger *slog.Logger, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:        baseURL,
		apiKey:         apiKey,
		pageSize:       pageSize,
		userAgent:      "fathomsync/1.0",
		httpClient:     &http.Client{Timeout: 60 * time.Second},
		limiter:        limiter,
		logger:         logging.WithService(logger, "fathom"),
		maxAttempts:    defaultMaxAttempts,
		backoffInitial: defaultBackoffInitial,
		backoffMax:     defaultBackoffMax,
		rateLimitSleep: defaultRateLimitSleep,
		sleep:          time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListMeetings fetches all meetings using cursor-based pagination. Retry is
// per page, not per full pagination. If a page fails after exhausting its
// retries, the meetings accumulated so far are returned without error;
// partial results are a valid outcome. Only a failure on the very first page,
// with nothing accumulated, is reported as an error so that callers never
// mistake a listing failure for an empty account.
func (c *Client) ListMeetings(ctx context.Context) ([]Meeting, error) {
	logger := logging.WithOperation(c.logger, "list_meetings")

	var all []Meeting
	cursor := ""
	page := 0

	for {
		page++

		params := url.Values{}
		params.Set("limit", strconv.Itoa(c.pageSize))
		params.Set("calendar_invitees_domains_type", "all")
		if cursor != "" {
			params.Set("cursor", cursor)
		}

		logger.Info("fetching meetings page", slog.Int(logging.KeyPage, page))

		body, err := c.doRequest(ctx, "list_meetings", c.baseURL+"/meetings?"+params.Encode())
		if err != nil {
			logger.Error("failed to fetch page after retries",
				slog.Int(logging.KeyPage, page), logging.Err(err))
			if len(all) == 0 {
				return nil, fmt.Errorf("listing meetings failed on first page: %w", err)
			}
			logger.Info("returning partial meeting list",
				slog.Int("meetings", len(all)), slog.Int("pages", page-1))
			return all, nil
		}

		meetings, nextCursor := decodePage(body)
		all = append(all, meetings...)

		if nextCursor == "" || len(meetings) == 0 {
			break
		}
		cursor = nextCursor
	}

	logger.Info("fetched all meetings", slog.Int("meetings", len(all)), slog.Int("pages", page))
	return all, nil
}

// GetTranscript fetches the transcript for one recording. A terminal HTTP
// status is returned as *HTTPError; an exhausted retry budget wraps
// ErrRetriesExhausted. A successful response with zero entries is returned
// as-is and is not an error.
func (c *Client) GetTranscript(ctx context.Context, recordingID string) (*Transcript, error) {
	logger := logging.WithOperation(c.logger, "get_transcript")
	logger.Info("fetching transcript", logging.Recording(recordingID))

	endpoint := fmt.Sprintf("%s/recordings/%s/transcript", c.baseURL, url.PathEscape(recordingID))
	body, err := c.doRequest(ctx, "get_transcript", endpoint)
	if err != nil {
		return nil, err
	}

	var tr Transcript
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("failed to decode transcript for %s: %w", recordingID, err)
	}
	return &tr, nil
}

// doRequest performs a single throttled GET with the retry policy applied:
// up to maxAttempts attempts, exponential backoff on transient failures,
// a fixed long sleep before retrying after a 429, and no retry on terminal
// HTTP statuses.
func (c *Client) doRequest(ctx context.Context, operation, endpoint string) ([]byte, error) {
	var body []byte
	attempt := 0

	op := func() error {
		attempt++
		start := time.Now()

		c.limiter.Throttle()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return backoff.Permanent(fmt.Errorf("failed to build request: %w", err))
		}
		req.Header.Set("X-Api-Key", c.apiKey)
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.metrics.RecordAPIRequest(ctx, operation, "transport_error", time.Since(start))
			c.logger.Warn("transport error, will retry",
				slog.Int(logging.KeyAttempt, attempt), logging.Err(err))
			return err
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusTooManyRequests:
			c.metrics.RecordAPIRequest(ctx, operation, "rate_limited", time.Since(start))
			c.logger.Warn("hit 429 rate limit, sleeping before retry",
				slog.Duration("sleep", c.rateLimitSleep),
				slog.Int(logging.KeyAttempt, attempt))
			c.sleep(c.rateLimitSleep)
			return &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}

		case resp.StatusCode >= 500:
			c.metrics.RecordAPIRequest(ctx, operation, strconv.Itoa(resp.StatusCode), time.Since(start))
			c.logger.Warn("server error, will retry",
				slog.Int("status_code", resp.StatusCode),
				slog.Int(logging.KeyAttempt, attempt))
			return &HTTPError{StatusCode: resp.StatusCode, Status: resp.Status}

		case resp.StatusCode >= 400:
			c.metrics.RecordAPIRequest(ctx, operation, strconv.Itoa(resp.StatusCode), time.Since(start))
			return backoff.Permanent(&HTTPError{StatusCode: resp.StatusCode, Status: resp.Status})
		}

		body, err = io.ReadAll(resp.Body)
		if err != nil {
			c.metrics.RecordAPIRequest(ctx, operation, "read_error", time.Since(start))
			return err
		}

		c.metrics.RecordAPIRequest(ctx, operation, "success", time.Since(start))
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.backoffInitial
	bo.MaxInterval = c.backoffMax
	bo.Multiplier = 2

	err := backoff.Retry(op, backoff.WithContext(
		backoff.WithMaxRetries(bo, uint64(c.maxAttempts-1)), ctx))
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode != http.StatusTooManyRequests && httpErr.StatusCode < 500 {
			return nil, httpErr
		}
		if ctx.Err() != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w after %d attempts: %v", ErrRetriesExhausted, attempt, err)
	}
	return body, nil
}
