package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"subtrans/internal/config"
	"subtrans/internal/language"
	"subtrans/internal/translate"
)

// stubProvider answers every request with deterministic per-language text.
type stubProvider struct {
	name     string
	calls    int
	combined int
	fail     map[string]error
}

func (s *stubProvider) Name() string {
	if s.name == "" {
		return "stub"
	}
	return s.name
}

func (s *stubProvider) Translate(_ context.Context, texts []string, target language.Language) ([]string, error) {
	s.calls++
	if err := s.fail[target.Code]; err != nil {
		return nil, err
	}
	out := make([]string, len(texts))
	for i, text := range texts {
		out[i] = "[" + target.Code + "] " + text
	}
	return out, nil
}

func (s *stubProvider) TranslateAll(ctx context.Context, texts []string, targets []language.Language) (map[string][]string, error) {
	s.combined++
	out := make(map[string][]string, len(targets))
	for _, target := range targets {
		translated, err := s.Translate(ctx, texts, target)
		if err != nil {
			return nil, err
		}
		out[target.Code] = translated
	}
	return out, nil
}

// installStubProvider swaps the provider factory for the duration of a test.
func installStubProvider(t *testing.T, stub *stubProvider) {
	t.Helper()
	original := newProvider
	newProvider = func(config.ProviderConfig, config.Translation, *slog.Logger) (translate.Provider, error) {
		return stub, nil
	}
	t.Cleanup(func() { newProvider = original })
}

func setupTestHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("SUBTRANS_LOG_LEVEL", "")
	return home
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, haystack, needle string) {
	t.Helper()
	if !strings.Contains(haystack, needle) {
		t.Fatalf("expected output to contain %q, got:\n%s", needle, haystack)
	}
}
