package translate

import (
	"context"

	"subtrans/internal/language"
)

// Provider is the narrow surface a translation backend must implement. Tests
// substitute a double; production wires the Gemini or OpenAI client.
type Provider interface {
	// Translate renders texts into a single target language, preserving
	// order and count.
	Translate(ctx context.Context, texts []string, target language.Language) ([]string, error)
	// TranslateAll renders texts into every target in one combined request,
	// keyed by language code. Used by simultaneous mode for context
	// consistency across languages.
	TranslateAll(ctx context.Context, texts []string, targets []language.Language) (map[string][]string, error)
	// Name identifies the backend in logs and summaries.
	Name() string
}
