package main

import (
	"fmt"
	"log/slog"
	"time"

	"subtrans/internal/config"
	"subtrans/internal/services/gemini"
	"subtrans/internal/services/openai"
	"subtrans/internal/translate"
)

// newProvider builds the configured translation provider. Tests replace it to
// run the CLI against a stub.
var newProvider = func(cfg config.ProviderConfig, translation config.Translation, logger *slog.Logger) (translate.Provider, error) {
	backoff := time.Duration(translation.RetryBackoffSeconds) * time.Second
	backoffMax := time.Duration(translation.RetryBackoffMaxSeconds) * time.Second

	switch cfg.Name {
	case "gemini":
		return gemini.NewClient(gemini.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			Endpoint:    cfg.Endpoint,
			Temperature: cfg.Temperature,
		},
			gemini.WithRetryMaxAttempts(translation.RetryMaxAttempts),
			gemini.WithRetryBackoff(backoff, backoffMax),
			gemini.WithLogger(logger),
		), nil
	case "openai":
		return openai.NewClient(openai.Config{
			APIKey:      cfg.APIKey,
			Model:       cfg.Model,
			BaseURL:     cfg.Endpoint,
			Temperature: cfg.Temperature,
		},
			openai.WithRetryMaxAttempts(translation.RetryMaxAttempts),
			openai.WithRetryBackoff(backoff, backoffMax),
			openai.WithLogger(logger),
		), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Name)
	}
}
