package config

import (
	"errors"
	"fmt"
)

// Validate ensures the configuration is usable. API keys are deliberately not
// checked here: commands that never contact a provider must work keyless, and
// translate reports a clear authentication error at request time.
func (c *Config) Validate() error {
	if err := c.validateTranslation(); err != nil {
		return err
	}
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateTranslation() error {
	switch c.Translation.Provider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("translation.provider must be \"gemini\" or \"openai\", got %q", c.Translation.Provider)
	}
	switch c.Translation.Mode {
	case "batch", "sequential", "simultaneous":
	default:
		return fmt.Errorf("translation.mode must be \"batch\" or \"simultaneous\", got %q", c.Translation.Mode)
	}
	if err := ensurePositiveMap(map[string]int{
		"translation.request_interval":          c.Translation.RequestInterval,
		"translation.retry_max_attempts":        c.Translation.RetryMaxAttempts,
		"translation.retry_backoff_seconds":     c.Translation.RetryBackoffSeconds,
		"translation.retry_backoff_max_seconds": c.Translation.RetryBackoffMaxSeconds,
	}); err != nil {
		return err
	}
	if c.Translation.RetryBackoffMaxSeconds < c.Translation.RetryBackoffSeconds {
		return errors.New("translation.retry_backoff_max_seconds must be >= translation.retry_backoff_seconds")
	}
	if c.Translation.TokenWarnThreshold < 0 {
		return errors.New("translation.token_warn_threshold must be >= 0")
	}
	return nil
}

func (c *Config) validateOutput() error {
	if c.Output.Encoding != "utf-8" {
		return fmt.Errorf("output.encoding must be \"utf-8\", got %q", c.Output.Encoding)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}

func ensurePositiveMap(values map[string]int) error {
	for key, value := range values {
		if value <= 0 {
			return fmt.Errorf("%s must be positive", key)
		}
	}
	return nil
}
