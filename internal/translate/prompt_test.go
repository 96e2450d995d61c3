package translate

import (
	"strings"
	"testing"
)

func TestBuildSingleLanguagePrompt(t *testing.T) {
	prompt := BuildSingleLanguagePrompt([]string{"Hello", "World"}, mustLangs(t, "ko")[0])
	for _, fragment := range []string{"Korean", "[1] Hello", "[2] World", "exactly 2 translations", "JSON array"} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("prompt missing %q:\n%s", fragment, prompt)
		}
	}
}

func TestBuildCombinedPrompt(t *testing.T) {
	langs := mustLangs(t, "en,zh-tw")
	prompt := BuildCombinedPrompt([]string{"Hello"}, langs)
	for _, fragment := range []string{"English (en)", "Traditional Chinese (zh-tw)", "[1] Hello", "keyed by language code", "exactly 1"} {
		if !strings.Contains(prompt, fragment) {
			t.Fatalf("prompt missing %q:\n%s", fragment, prompt)
		}
	}
}
