package translate

import (
	"strings"
	"unicode/utf8"
)

// DefaultTokenWarnThreshold is the estimate above which a run logs a warning
// before issuing requests. Conservative for free-tier provider quotas.
const DefaultTokenWarnThreshold = 30000

// TokenEstimate approximates provider token usage for a run.
type TokenEstimate struct {
	Input  int
	Output int
	Total  int
}

// EstimateTokens roughly counts tokens in text as words + runes/4. The rune
// term dominates for CJK sources where whitespace-delimited words are rare.
func EstimateTokens(text string) int {
	return len(strings.Fields(text)) + utf8.RuneCountInString(text)/4
}

// EstimateRun estimates token usage for translating texts into the given
// number of target languages. Output is assumed to run about 1.5x the input
// per language.
func EstimateRun(texts []string, languages int) TokenEstimate {
	input := 0
	for _, text := range texts {
		input += EstimateTokens(text)
	}
	output := input * languages * 3 / 2
	return TokenEstimate{Input: input, Output: output, Total: input + output}
}

// Exceeds reports whether the run estimate crosses the warning threshold.
// A non-positive threshold disables the warning.
func (e TokenEstimate) Exceeds(threshold int) bool {
	return threshold > 0 && e.Total > threshold
}
