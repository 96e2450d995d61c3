package openai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"subtrans/internal/language"
	"subtrans/internal/logging"
	"subtrans/internal/services"
	"subtrans/internal/translate"
)

const (
	defaultModel          = "gpt-4o-mini"
	defaultRetryAttempts  = 4
	defaultRetryBaseDelay = 2 * time.Second
	defaultRetryMaxDelay  = 30 * time.Second
)

// Config captures the runtime settings required to talk to OpenAI.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float64
}

// Client calls the OpenAI chat completions endpoint.
type Client struct {
	cfg    Config
	api    chatCompleter
	logger *slog.Logger

	retryMaxAttempts int
	retryBaseDelay   time.Duration
	retryMaxDelay    time.Duration
	sleeper          func(context.Context, time.Duration) error
}

// chatCompleter is the slice of the go-openai client we depend on.
type chatCompleter interface {
	CreateChatCompletion(ctx context.Context, request openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Option customizes the client.
type Option func(*Client)

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
			c.logger = logging.NewComponentLogger(logger, "openai")
		}
	}
}

// NewClient constructs an OpenAI client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Model = strings.TrimSpace(cfg.Model)
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}

	apiConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		apiConfig.BaseURL = cfg.BaseURL
	}

	client := &Client{
		cfg:              cfg,
		api:              openai.NewClientWithConfig(apiConfig),
		logger:           logging.NewNop(),
		retryMaxAttempts: defaultRetryAttempts,
		retryBaseDelay:   defaultRetryBaseDelay,
		retryMaxDelay:    defaultRetryMaxDelay,
		sleeper:          sleepContext,
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Name identifies the provider in logs and summaries.
func (c *Client) Name() string { return "openai" }

// Translate renders texts into a single target language.
func (c *Client) Translate(ctx context.Context, texts []string, target language.Language) ([]string, error) {
	content, err := c.completeWithRetry(ctx, translate.BuildSingleLanguagePrompt(texts, target))
	if err != nil {
		return nil, err
	}
	var out []string
	if err := services.DecodeModelJSON(content, &out); err != nil {
		return nil, services.Wrap(services.ErrValidation, "openai", "decode", "parse translation payload", err)
	}
	return out, nil
}

// TranslateAll renders texts into every target in one combined request.
func (c *Client) TranslateAll(ctx context.Context, texts []string, targets []language.Language) (map[string][]string, error) {
	content, err := c.completeWithRetry(ctx, translate.BuildCombinedPrompt(texts, targets))
	if err != nil {
		return nil, err
	}
	var decoded map[string][]string
	if err := services.DecodeModelJSON(content, &decoded); err != nil {
		return nil, services.Wrap(services.ErrValidation, "openai", "decode", "parse combined translation payload", err)
	}
	out := make(map[string][]string, len(decoded))
	for key, value := range decoded {
		out[strings.ToLower(strings.TrimSpace(key))] = value
	}
	return out, nil
}

func (c *Client) completeWithRetry(ctx context.Context, prompt string) (string, error) {
	if c.cfg.APIKey == "" {
		return "", services.Wrap(services.ErrAuth, "openai", "request", "api key required", nil)
	}

	attempts := c.retryMaxAttempts
	if attempts <= 0 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		content, err := c.completeOnce(ctx, prompt)
		if err == nil {
			return content, nil
		}

		marker, retryable := classify(err)
		if !retryable || ctx.Err() != nil {
			return "", services.Wrap(marker, "openai", "request", "chat completion", err)
		}
		lastErr = services.Wrap(marker, "openai", "request", "chat completion", err)
		if attempt == attempts {
			break
		}

		delay := c.backoffDelay(attempt)
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

	return "", fmt.Errorf("openai request: failed after %d attempts: %w", attempts, lastErr)
}

func (c *Client) completeOnce(ctx context.Context, prompt string) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.cfg.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: translate.SystemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: float32(c.cfg.Temperature),
	})
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", errors.New("openai request: empty response")
	}
	if reason := resp.Choices[0].FinishReason; reason != "" && reason != openai.FinishReasonStop {
		return "", fmt.Errorf("openai request: finished with reason %s", reason)
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps a raw request failure to its error marker and whether another
// attempt may succeed.
func classify(err error) (error, bool) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return services.ErrTransient, false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.HTTPStatusCode == http.StatusUnauthorized,
			apiErr.HTTPStatusCode == http.StatusForbidden:
			return services.ErrAuth, false
		case apiErr.HTTPStatusCode == http.StatusTooManyRequests:
			return services.ErrRateLimited, true
		case apiErr.HTTPStatusCode == http.StatusRequestTimeout,
			apiErr.HTTPStatusCode >= http.StatusInternalServerError:
			return services.ErrTransient, true
		default:
			return services.ErrTransient, false
		}
	}

	if strings.Contains(err.Error(), "finished with reason") {
		return services.ErrTransient, false
	}

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
