package translate

import (
	"fmt"
	"strings"

	"subtrans/internal/language"
)

// SystemInstruction frames the translation task for the model. Keep updates
// centralized here so both providers stay in sync.
const SystemInstruction = `You are a professional subtitle translator.

Translate naturally and consistently, considering the context of the whole
subtitle track rather than each line in isolation. Keep proper nouns and
technical terms accurate. Respect the register of the source dialogue.

Language-specific guidance:
- Korean: choose honorific levels appropriate to the speakers' relationship.
- Traditional Chinese and Simplified Chinese are distinct targets; use the
  correct script and regional vocabulary for each.

You must respond with JSON only, exactly in the shape the request describes.
Never add commentary, numbering, or markdown around the JSON payload.`

// BuildSingleLanguagePrompt numbers the cues and asks for a JSON array of
// translated strings for one target language.
func BuildSingleLanguagePrompt(texts []string, target language.Language) string {
	var prompt strings.Builder
	fmt.Fprintf(&prompt, "Translate the following %d subtitle cues into %s.\n\n", len(texts), target.Display)
	writeNumberedCues(&prompt, texts)
	fmt.Fprintf(&prompt, "\nReturn exactly %d translations as a JSON array of strings, in cue order.\n", len(texts))
	prompt.WriteString(`Example: ["translated cue 1", "translated cue 2"]`)
	return prompt.String()
}

// BuildCombinedPrompt asks for every target language at once, as a JSON
// object keyed by language code mapping to arrays of translated strings.
func BuildCombinedPrompt(texts []string, targets []language.Language) string {
	var prompt strings.Builder
	names := make([]string, len(targets))
	for i, target := range targets {
		names[i] = fmt.Sprintf("%s (%s)", target.Display, target.Code)
	}
	fmt.Fprintf(&prompt, "Translate the following %d subtitle cues into each of these languages: %s.\n", len(texts), strings.Join(names, ", "))
	prompt.WriteString("Translate all languages from the same reading of the text so they stay consistent with each other.\n\n")
	writeNumberedCues(&prompt, texts)
	prompt.WriteString("\nReturn a JSON object keyed by language code. Each value must be an array of exactly ")
	fmt.Fprintf(&prompt, "%d translated strings in cue order.\n", len(texts))
	fmt.Fprintf(&prompt, "Example: {%q: [\"...\"], %q: [\"...\"]}", targets[0].Code, targets[len(targets)-1].Code)
	return prompt.String()
}

func writeNumberedCues(prompt *strings.Builder, texts []string) {
	prompt.WriteString("Input cues:\n")
	for i, text := range texts {
		fmt.Fprintf(prompt, "[%d] %s\n", i+1, text)
	}
}
