// Package translate coordinates subtitle translation runs.
//
// The orchestrator issues provider requests per the selected mode, paces
// successive calls against provider rate limits, validates translated entry
// counts, and isolates per-language failures so one bad language never
// discards the others. The service wires parse, translate, and write into a
// single run and reports a per-language summary.
package translate
