// Package testsupport provides helpers for building test configurations and
// fixture subtitle files.
package testsupport

import (
	"path/filepath"
	"testing"

	"subtrans/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t   testing.TB
	cfg *config.Config
}

// NewConfig produces a config seeded with a unique temp output directory per
// test. It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	cfgVal := config.Default()
	cfgVal.Gemini.APIKey = "test"
	cfgVal.OpenAI.APIKey = "test"
	cfgVal.Output.Directory = filepath.Join(t.TempDir(), "out")

	builder := &configBuilder{
		t:   t,
		cfg: &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithProvider selects the active translation provider on the test config.
func WithProvider(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Translation.Provider = name
	}
}

// WithMode sets the translation mode on the test config.
func WithMode(mode string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Translation.Mode = mode
	}
}

// WithOutputDir overrides the output directory on the test config.
func WithOutputDir(dir string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Output.Directory = dir
	}
}

// WithTokenWarnThreshold overrides the token warning threshold.
func WithTokenWarnThreshold(threshold int) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Translation.TokenWarnThreshold = threshold
	}
}
