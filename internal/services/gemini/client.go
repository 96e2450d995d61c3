package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"subtrans/internal/language"
	"subtrans/internal/logging"
	"subtrans/internal/services"
	"subtrans/internal/translate"
)

const (
	defaultEndpoint       = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultModel          = "gemini-2.0-flash"
	defaultHTTPTimeout    = 2 * time.Minute
	defaultRetryAttempts  = 4
	defaultRetryBaseDelay = 2 * time.Second
	defaultRetryMaxDelay  = 30 * time.Second
)

// Config captures the runtime settings required to talk to Gemini.
type Config struct {
	APIKey      string
	Model       string
	Endpoint    string
	Temperature float64
}

// Client calls the Gemini generateContent endpoint.
type Client struct {
	cfg        Config
	httpClient *http.Client
	logger     *slog.Logger

	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration
	sleeper          func(context.Context, time.Duration) error
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRetryMaxAttempts overrides the default retry count.
func WithRetryMaxAttempts(attempts int) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.retryMaxAttempts = attempts
		}
	}
}

// WithRetryBackoff overrides the retry backoff delays.
func WithRetryBackoff(baseDelay, maxDelay time.Duration) Option {
	return func(c *Client) {
		if baseDelay > 0 {
			c.retryBaseDelay = baseDelay
		}
		if maxDelay > 0 {
			c.retryMaxDelay = maxDelay
		}
	}
}

// WithSleeper overrides how retry sleeps are performed (useful for tests).
func WithSleeper(sleeper func(context.Context, time.Duration) error) Option {
	return func(c *Client) {
		if sleeper != nil {
			c.sleeper = sleeper
		}
	}
}

// WithLogger attaches a logger for retry diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logging.NewComponentLogger(logger, "gemini")
		}
	}
}

// NewClient constructs a Gemini client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	client := &Client{
		cfg: Config{
			APIKey:      strings.TrimSpace(cfg.APIKey),
			Model:       strings.TrimSpace(cfg.Model),
			Endpoint:    strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/"),
			Temperature: cfg.Temperature,
		},
		httpClient:       &http.Client{Timeout: defaultHTTPTimeout},
		logger:           logging.NewNop(),
		retryMaxAttempts: defaultRetryAttempts,
		retryBaseDelay:   defaultRetryBaseDelay,
		retryMaxDelay:    defaultRetryMaxDelay,
		sleeper:          sleepContext,
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.Model == "" {
		client.cfg.Model = defaultModel
	}
	if client.cfg.Endpoint == "" {
		client.cfg.Endpoint = defaultEndpoint
	}
	return client
}

// Name identifies the provider in logs and summaries.
func (c *Client) Name() string { return "gemini" }

// Translate renders texts into a single target language.
func (c *Client) Translate(ctx context.Context, texts []string, target language.Language) ([]string, error) {
	content, err := c.generateWithRetry(ctx, translate.BuildSingleLanguagePrompt(texts, target))
	if err != nil {
		return nil, err
	}
	var out []string
	if err := services.DecodeModelJSON(content, &out); err != nil {
		return nil, services.Wrap(services.ErrValidation, "gemini", "decode", "parse translation payload", err)
	}
	return out, nil
}

// TranslateAll renders texts into every target in one combined request.
func (c *Client) TranslateAll(ctx context.Context, texts []string, targets []language.Language) (map[string][]string, error) {
	content, err := c.generateWithRetry(ctx, translate.BuildCombinedPrompt(texts, targets))
	if err != nil {
		return nil, err
	}
	var decoded map[string][]string
	if err := services.DecodeModelJSON(content, &decoded); err != nil {
		return nil, services.Wrap(services.ErrValidation, "gemini", "decode", "parse combined translation payload", err)
	}
	out := make(map[string][]string, len(decoded))
	for key, value := range decoded {
		out[strings.ToLower(strings.TrimSpace(key))] = value
	}
	return out, nil
}

type generateRequest struct {
	SystemInstruction content          `json:"system_instruction"`
	Contents          []content        `json:"contents"`
	GenerationConfig  generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type generateResponse struct {
	Candidates []struct {
		Content      content `json:"content"`
		FinishReason string  `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

type httpStatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("gemini request: http %d: %s", e.StatusCode, services.PayloadSnippet(e.Body))
}

func (c *Client) generateWithRetry(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", services.Wrap(services.ErrAuth, "gemini", "request", "api key required", nil)
	}

	attempts := c.retryMaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		content, err := c.generateOnce(ctx, prompt)
		if err == nil {
			return content, nil
		}

		marker, retryable := classify(err)
		if !retryable || ctx.Err() != nil {
			return "", services.Wrap(marker, "gemini", "request", "generate content", err)
		}
		lastErr = services.Wrap(marker, "gemini", "request", "generate content", err)
		if attempt == attempts {
			break
		}

		delay := c.backoffDelay(attempt)
		var statusErr *httpStatusError
		if errors.As(err, &statusErr) && statusErr.RetryAfter > 0 {
			delay = min(statusErr.RetryAfter, c.retryMaxDelay)
		}
		c.logger.Warn("retrying after failure",
			logging.Args(
				logging.Int(logging.FieldAttempt, attempt),
				logging.Duration("delay", delay),
				logging.Error(err),
			)...)
		if err := c.sleeper(ctx, delay); err != nil {
			return "", err
		}
	}

	return "", fmt.Errorf("gemini request: failed after %d attempts: %w", attempts, lastErr)
}

func (c *Client) generateOnce(ctx context.Context, prompt string) (string, error) {
	payload := generateRequest{
		SystemInstruction: content{Parts: []part{{Text: translate.SystemInstruction}}},
		Contents:          []content{{Parts: []part{{Text: prompt}}}},
		GenerationConfig: generationConfig{
			Temperature:      c.cfg.Temperature,
			ResponseMimeType: "application/json",
		},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("gemini request: encode body: %w", err)
	}

	endpoint := fmt.Sprintf("%s/%s:generateContent", c.cfg.Endpoint, c.cfg.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return "", fmt.Errorf("gemini request: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.cfg.APIKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("gemini request: http error: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("gemini request: read body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		retryAfter, _ := parseRetryAfter(resp.Header.Get("Retry-After"))
		return "", &httpStatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			RetryAfter: retryAfter,
		}
	}

	var decoded generateResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("gemini request: decode response: %w", err)
	}
	if decoded.Error != nil {
		return "", fmt.Errorf("gemini request: api error: %s", strings.TrimSpace(decoded.Error.Message))
	}
	if reason := strings.TrimSpace(decoded.PromptFeedback.BlockReason); reason != "" {
		return "", fmt.Errorf("gemini request: prompt blocked: %s", reason)
	}
	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini request: empty response (snippet: %s)", services.PayloadSnippet(string(body)))
	}
	if reason := decoded.Candidates[0].FinishReason; reason != "" && reason != "STOP" {
		return "", fmt.Errorf("gemini request: finished with reason %s", reason)
	}

	text := decoded.Candidates[0].Content.Parts[0].Text
	if strings.TrimSpace(text) == "" {
		return "", errors.New("gemini request: empty candidate text")
	}
	return text, nil
}

// classify maps a raw request failure to its error marker and whether another
// attempt may succeed.
func classify(err error) (error, bool) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return services.ErrTransient, false
	}

	var statusErr *httpStatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode == http.StatusUnauthorized,
			statusErr.StatusCode == http.StatusForbidden:
			return services.ErrAuth, false
		case statusErr.StatusCode == http.StatusTooManyRequests:
			return services.ErrRateLimited, true
		case statusErr.StatusCode == http.StatusRequestTimeout,
			statusErr.StatusCode >= http.StatusInternalServerError:
			return services.ErrTransient, true
		default:
			return services.ErrTransient, false
		}
	}

	// Blocked prompts, bad finish reasons, and malformed responses are
	// permanent for this request.
	msg := err.Error()
	if strings.Contains(msg, "blocked") || strings.Contains(msg, "finished with reason") {
		return services.ErrTransient, false
	}

	// Everything else is connection-level trouble.
	return services.ErrTransient, true
}

func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := c.retryBaseDelay
	for i := 1; i < attempt; i++ {
		if delay > c.retryMaxDelay/2 {
			return c.retryMaxDelay
		}
		delay *= 2
	}
	return min(delay, c.retryMaxDelay)
}

func parseRetryAfter(value string) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		if seconds < 0 {
			return 0, false
		}
		return time.Duration(seconds) * time.Second, true
	}
	if when, err := http.ParseTime(value); err == nil {
		delay := time.Until(when)
		if delay < 0 {
			return 0, false
		}
		return delay, true
	}
	return 0, false
}

func sleepContext(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return nil
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
