// Package logging assembles the structured slog loggers used across subtrans.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes small attribute helpers so translation code can tag
// log lines with run IDs, providers, and target languages consistently. A
// no-op logger is provided for tests and wiring code that cannot fail.
package logging
