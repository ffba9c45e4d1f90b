package floorball

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"golang.org/x/time/rate"

	"github.com/markussdumpis/lv-floorball-fantasy-sub001/internal/platform/logging"
)

const (
	defaultBaseURL    = "https://www.floorball.lv"
	defaultUserAgent  = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0 Safari/537.36"
	defaultMinGap     = 1500 * time.Millisecond
	defaultMaxRetries = 3
	maxBodyBytes      = 4 << 20
)

// errTransient marks failures worth retrying. ErrUpstreamFormat marks
// responses that came back 2xx but hold the wrong shape, the site's way of
// signaling a block or a markup change. Callers treat it as a per-unit skip.
var (
	errTransient      = crerr.New("floorball transient failure")
	ErrUpstreamFormat = crerr.New("floorball upstream format drift")
)

type ClientConfig struct {
	HTTPClient *http.Client
	BaseURL    string
	Cookie     string
	UserAgent  string
	MinGap     time.Duration
	MaxRetries int
	Logger     *logging.Logger
}

// Client fetches pages from the league site. All requests go through one
// rate limiter so the whole process keeps a minimum gap between requests
// regardless of which job is running; ingestion is sequential on purpose.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cookie     string
	userAgent  string
	maxRetries int
	limiter    *rate.Limiter
	logger     *logging.Logger
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	if httpClient.Timeout <= 0 {
		httpClient.Timeout = 30 * time.Second
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	minGap := cfg.MinGap
	if minGap <= 0 {
		minGap = defaultMinGap
	}
	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = defaultMaxRetries
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		cookie:     strings.TrimSpace(cfg.Cookie),
		userAgent:  userAgent,
		maxRetries: maxRetries,
		limiter:    rate.NewLimiter(rate.Every(minGap), 1),
		logger:     logger,
	}
}

func (c *Client) get(ctx context.Context, path string, query url.Values) ([]byte, error) {
	fullURL := c.baseURL + path
	if encoded := query.Encode(); encoded != "" {
		fullURL += "?" + encoded
	}
	return c.execute(ctx, http.MethodGet, fullURL, "")
}

func (c *Client) postForm(ctx context.Context, path string, form url.Values) ([]byte, error) {
	return c.execute(ctx, http.MethodPost, c.baseURL+path, form.Encode())
}

func (c *Client) execute(ctx context.Context, method, fullURL, form string) ([]byte, error) {
	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		var body io.Reader
		if form != "" {
			body = strings.NewReader(form)
		}
		req, err := http.NewRequestWithContext(ctx, method, fullURL, body)
		if err != nil {
			return nil, fmt.Errorf("build request: %w", err)
		}
		req.Header.Set("User-Agent", c.userAgent)
		if c.cookie != "" {
			req.Header.Set("Cookie", c.cookie)
		}
		if form != "" {
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			req.Header.Set("X-Requested-With", "XMLHttpRequest")
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("%w: send request: %v", errTransient, err)
		} else {
			raw, readErr := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
			_ = resp.Body.Close()
			if readErr != nil {
				lastErr = fmt.Errorf("%w: read response body: %v", errTransient, readErr)
			} else if resp.StatusCode >= 200 && resp.StatusCode < 300 {
				return raw, nil
			} else if isRetryableStatus(resp.StatusCode) {
				lastErr = fmt.Errorf("%w: site status=%d", errTransient, resp.StatusCode)
			} else {
				return nil, fmt.Errorf("site status=%d body=%s", resp.StatusCode, abbreviateBody(raw))
			}
		}

		if attempt == c.maxRetries {
			break
		}
		backoff := time.Duration(attempt+1) * time.Second
		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	if lastErr == nil {
		lastErr = fmt.Errorf("site request failed")
	}
	c.logger.WarnContext(ctx, "floorball request failed", "url", fullURL, "error", lastErr)
	return nil, lastErr
}

func isRetryableStatus(status int) bool {
	if status >= 500 {
		return true
	}
	switch status {
	case http.StatusRequestTimeout, http.StatusTooManyRequests:
		return true
	default:
		return false
	}
}

func abbreviateBody(raw []byte) string {
	text := strings.TrimSpace(string(raw))
	if len(text) > 256 {
		return text[:256] + "..."
	}
	return text
}

// IsTransient reports whether the error is a retryable-category failure
// that exhausted its retries, as opposed to format drift or a hard status.
func IsTransient(err error) bool {
	return crerr.Is(err, errTransient)
}
