package rulebook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/pkg/httpx"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/platform/envutil"
	"github.com/MEMAtest/horizon-scanner-backend-sub013/internal/platform/logger"
)

// Client fetches taxonomy documents from the regulator's published rulebook
// API. Each call carries its own retry budget; there is no circuit breaker
// across calls.
type Client interface {
	BaseURL() string
	Index(ctx context.Context) (*IndexDocument, error)
	ChapterProvisions(ctx context.Context, chapterKey string) (*ProvisionsDocument, error)
}

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxAttempts int
	BackoffBase time.Duration
	// HTTPClient overrides the default transport, mainly for tests.
	HTTPClient *http.Client
}

type client struct {
	log         *logger.Logger
	baseURL     string
	httpClient  *http.Client
	maxAttempts int
	backoffBase time.Duration
	sleep       func(time.Duration)
}

const (
	defaultMaxAttempts = 3
	defaultBackoffBase = 800 * time.Millisecond
	defaultTimeout     = 30 * time.Second
)

// NewFromEnv builds a client from RULEBOOK_* environment variables.
func NewFromEnv(log *logger.Logger) (Client, error) {
	cfg := Config{
		BaseURL:     envutil.String("RULEBOOK_BASE_URL", ""),
		Timeout:     time.Duration(envutil.Int("RULEBOOK_TIMEOUT_SECONDS", 30)) * time.Second,
		MaxAttempts: envutil.Int("RULEBOOK_MAX_ATTEMPTS", defaultMaxAttempts),
	}
	return New(log, cfg)
}

func New(log *logger.Logger, cfg Config) (Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("missing rulebook base URL")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	backoffBase := cfg.BackoffBase
	if backoffBase <= 0 {
		backoffBase = defaultBackoffBase
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: timeout}
	}
	return &client{
		log:         log.With("client", "RulebookClient"),
		baseURL:     baseURL,
		httpClient:  httpClient,
		maxAttempts: maxAttempts,
		backoffBase: backoffBase,
		sleep:       time.Sleep,
	}, nil
}

func (c *client) BaseURL() string { return c.baseURL }

func (c *client) Index(ctx context.Context) (*IndexDocument, error) {
	var doc IndexDocument
	if err := c.get(ctx, "/index", &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *client) ChapterProvisions(ctx context.Context, chapterKey string) (*ProvisionsDocument, error) {
	if strings.TrimSpace(chapterKey) == "" {
		return nil, fmt.Errorf("missing chapter key")
	}
	var doc ProvisionsDocument
	path := "/chapter-provisions/" + url.PathEscape(chapterKey)
	if err := c.get(ctx, path, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

type httpError struct {
	StatusCode int
	Body       string
}

func (e *httpError) Error() string {
	return fmt.Sprintf("rulebook http %d: %s", e.StatusCode, e.Body)
}
func (e *httpError) HTTPStatusCode() int { return e.StatusCode }

// get fetches path with a bounded retry budget: up to maxAttempts tries,
// sleeping backoffBase × attemptNumber between them. Decode failures and
// non-retryable statuses surface immediately.
func (c *client) get(ctx context.Context, path string, out interface{}) error {
	var lastErr error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		raw, err := c.getOnce(ctx, path)
		if err == nil {
			if uErr := json.Unmarshal(raw, out); uErr != nil {
				return fmt.Errorf("rulebook decode %s: %w", path, uErr)
			}
			return nil
		}
		lastErr = err
		if !httpx.IsRetryableError(err) {
			return err
		}
		if attempt == c.maxAttempts {
			break
		}
		wait := c.backoffBase * time.Duration(attempt)
		c.log.Warn("Rulebook fetch retrying",
			"path", path,
			"attempt", attempt,
			"max_attempts", c.maxAttempts,
			"wait", wait.String(),
			"error", err.Error(),
		)
		c.sleep(wait)
	}
	return fmt.Errorf("rulebook fetch %s failed after %d attempts: %w", path, c.maxAttempts, lastErr)
}

func (c *client) getOnce(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	raw, readErr := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	if readErr != nil {
		return nil, readErr
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body := string(raw)
		if len(body) > 512 {
			body = body[:512]
		}
		return nil, &httpError{StatusCode: resp.StatusCode, Body: body}
	}
	return raw, nil
}
