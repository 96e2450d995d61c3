package language

import (
	"fmt"
	"strings"
)

// Language identifies one supported translation target.
type Language struct {
	Code    string // lowercase registry code, e.g. "zh-tw"
	Display string // English display name, e.g. "Traditional Chinese"
}

var registry = []Language{
	{"en", "English"},
	{"ko", "Korean"},
	{"zh-tw", "Traditional Chinese"},
	{"zh-cn", "Simplified Chinese"},
	{"es", "Spanish"},
	{"fr", "French"},
	{"de", "German"},
}

var byCode = func() map[string]Language {
	m := make(map[string]Language, len(registry))
	for _, lang := range registry {
		m[lang.Code] = lang
	}
	return m
}()

// All returns the supported languages in registry order.
func All() []Language {
	out := make([]Language, len(registry))
	copy(out, registry)
	return out
}

// Codes returns the registry codes in order, for error messages and help text.
func Codes() []string {
	out := make([]string, len(registry))
	for i, lang := range registry {
		out[i] = lang.Code
	}
	return out
}

// Parse resolves a single language code, case-insensitively.
func Parse(code string) (Language, error) {
	normalized := strings.ToLower(strings.TrimSpace(code))
	if normalized == "" {
		return Language{}, fmt.Errorf("language code is empty (supported: %s)", strings.Join(Codes(), ", "))
	}
	if lang, ok := byCode[normalized]; ok {
		return lang, nil
	}
	return Language{}, fmt.Errorf("unsupported language %q (supported: %s)", code, strings.Join(Codes(), ", "))
}

// ParseSet resolves a comma-separated list of language codes. Order is
// preserved, duplicates are dropped, and the first unknown code fails the
// whole set.
func ParseSet(csv string) ([]Language, error) {
	parts := strings.Split(csv, ",")
	out := make([]Language, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		lang, err := Parse(part)
		if err != nil {
			return nil, err
		}
		if _, ok := seen[lang.Code]; ok {
			continue
		}
		seen[lang.Code] = struct{}{}
		out = append(out, lang)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no target languages specified (supported: %s)", strings.Join(Codes(), ", "))
	}
	return out, nil
}
