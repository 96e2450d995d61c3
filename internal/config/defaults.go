package config

const (
	defaultProvider               = "gemini"
	defaultMode                   = "batch"
	defaultRequestInterval        = 1
	defaultRetryMaxAttempts       = 4
	defaultRetryBackoffSeconds    = 2
	defaultRetryBackoffMaxSeconds = 30
	defaultTokenWarnThreshold     = 30000
	defaultGeminiModel            = "gemini-2.0-flash"
	defaultGeminiEndpoint         = "https://generativelanguage.googleapis.com/v1beta/models"
	defaultOpenAIModel            = "gpt-4o-mini"
	defaultOutputEncoding         = "utf-8"
	defaultLogFormat              = "console"
	defaultLogLevel               = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Translation: Translation{
			Provider:               defaultProvider,
			Mode:                   defaultMode,
			RequestInterval:        defaultRequestInterval,
			RetryMaxAttempts:       defaultRetryMaxAttempts,
			RetryBackoffSeconds:    defaultRetryBackoffSeconds,
			RetryBackoffMaxSeconds: defaultRetryBackoffMaxSeconds,
			TokenWarnThreshold:     defaultTokenWarnThreshold,
		},
		Gemini: Gemini{
			Model:    defaultGeminiModel,
			Endpoint: defaultGeminiEndpoint,
		},
		OpenAI: OpenAI{
			Model: defaultOpenAIModel,
		},
		Output: Output{
			Encoding: defaultOutputEncoding,
		},
		Logging: Logging{
			Format:           defaultLogFormat,
			Level:            defaultLogLevel,
			ErrorOutputPaths: []string{"stderr"},
		},
	}
}
