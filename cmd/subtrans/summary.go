package main

import (
	"fmt"
	"io"
	"time"

	"subtrans/internal/services"
	"subtrans/internal/translate"
)

// printSummary renders the per-language run summary table followed by the
// aggregate success line.
func printSummary(out io.Writer, summary translate.Summary) {
	colorize := shouldColorize(out)

	rows := make([][]string, 0, len(summary.Outcomes))
	for _, outcome := range summary.Outcomes {
		status := statusLabel(statusOK, colorize)
		detail := outcome.OutputPath
		if !outcome.Succeeded() {
			status = statusLabel(statusError, colorize)
			detail = services.FailureKind(outcome.Err)
		}
		rows = append(rows, []string{
			outcome.Language.Code,
			outcome.Language.Display,
			status,
			outcome.Elapsed.Round(time.Millisecond).String(),
			detail,
		})
	}

	fmt.Fprintln(out, renderTable(
		[]string{"CODE", "LANGUAGE", "STATUS", "ELAPSED", "OUTPUT"},
		rows,
		3, // ELAPSED
	))
	fmt.Fprintf(out, "%d/%d languages translated\n", summary.SuccessCount(), summary.Total())
	if summary.TokenWarning {
		fmt.Fprintf(out, "Note: estimated token usage (%d) exceeded the configured threshold\n", summary.Tokens.Total)
	}
}
