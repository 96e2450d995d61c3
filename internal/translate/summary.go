package translate

import (
	"time"

	"subtrans/internal/language"
)

// Outcome is the per-language result of a run.
type Outcome struct {
	Language   language.Language
	OutputPath string
	Err        error
	Elapsed    time.Duration
}

// Succeeded reports whether an output file was written for the language.
func (o Outcome) Succeeded() bool {
	return o.Err == nil && o.OutputPath != ""
}

// Summary aggregates a run for reporting.
type Summary struct {
	RunID        string
	InputPath    string
	Mode         Mode
	Provider     string
	Captions     int
	Outcomes     []Outcome
	Tokens       TokenEstimate
	TokenWarning bool
}

// SuccessCount returns how many languages produced output files.
func (s Summary) SuccessCount() int {
	count := 0
	for _, outcome := range s.Outcomes {
		if outcome.Succeeded() {
			count++
		}
	}
	return count
}

// Total returns the number of requested languages.
func (s Summary) Total() int {
	return len(s.Outcomes)
}
