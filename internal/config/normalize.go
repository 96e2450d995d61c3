package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	c.normalizeTranslation()
	c.normalizeGemini()
	c.normalizeOpenAI()
	if err := c.normalizeOutput(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizeTranslation() {
	c.Translation.Provider = strings.ToLower(strings.TrimSpace(c.Translation.Provider))
	if c.Translation.Provider == "" {
		c.Translation.Provider = defaultProvider
	}
	c.Translation.Mode = strings.ToLower(strings.TrimSpace(c.Translation.Mode))
	if c.Translation.Mode == "" {
		c.Translation.Mode = defaultMode
	}
	if c.Translation.RequestInterval <= 0 {
		c.Translation.RequestInterval = defaultRequestInterval
	}
	if c.Translation.RetryMaxAttempts <= 0 {
		c.Translation.RetryMaxAttempts = defaultRetryMaxAttempts
	}
	if c.Translation.RetryBackoffSeconds <= 0 {
		c.Translation.RetryBackoffSeconds = defaultRetryBackoffSeconds
	}
	if c.Translation.RetryBackoffMaxSeconds <= 0 {
		c.Translation.RetryBackoffMaxSeconds = defaultRetryBackoffMaxSeconds
	}
	if c.Translation.TokenWarnThreshold < 0 {
		c.Translation.TokenWarnThreshold = 0
	}
}

func (c *Config) normalizeGemini() {
	c.Gemini.APIKey = strings.TrimSpace(c.Gemini.APIKey)
	// Environment beats the file; a --api-key flag beats both (applied in
	// SelectedProvider).
	if value, ok := os.LookupEnv("GEMINI_API_KEY"); ok && strings.TrimSpace(value) != "" {
		c.Gemini.APIKey = strings.TrimSpace(value)
	}
	c.Gemini.Model = strings.TrimSpace(c.Gemini.Model)
	if c.Gemini.Model == "" {
		c.Gemini.Model = defaultGeminiModel
	}
	c.Gemini.Endpoint = strings.TrimRight(strings.TrimSpace(c.Gemini.Endpoint), "/")
	if c.Gemini.Endpoint == "" {
		c.Gemini.Endpoint = defaultGeminiEndpoint
	}
}

func (c *Config) normalizeOpenAI() {
	c.OpenAI.APIKey = strings.TrimSpace(c.OpenAI.APIKey)
	if value, ok := os.LookupEnv("OPENAI_API_KEY"); ok && strings.TrimSpace(value) != "" {
		c.OpenAI.APIKey = strings.TrimSpace(value)
	}
	c.OpenAI.Model = strings.TrimSpace(c.OpenAI.Model)
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = defaultOpenAIModel
	}
	c.OpenAI.BaseURL = strings.TrimRight(strings.TrimSpace(c.OpenAI.BaseURL), "/")
}

func (c *Config) normalizeOutput() error {
	c.Output.Directory = strings.TrimSpace(c.Output.Directory)
	if c.Output.Directory != "" {
		expanded, err := expandPath(c.Output.Directory)
		if err != nil {
			return fmt.Errorf("output.directory: %w", err)
		}
		c.Output.Directory = expanded
	}
	c.Output.Encoding = strings.ToLower(strings.TrimSpace(c.Output.Encoding))
	if c.Output.Encoding == "" {
		c.Output.Encoding = defaultOutputEncoding
	}
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if value, ok := os.LookupEnv("SUBTRANS_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(value))
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if len(c.Logging.ErrorOutputPaths) == 0 {
		c.Logging.ErrorOutputPaths = []string{"stderr"}
	}
}
