// Package services defines shared utilities consumed by the translation
// pipeline and the provider integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run identifiers, target languages, and
//     provider names for logging and tracing.
//   - Structured error markers plus the Wrap helper that classify failures
//     consistently (retryable vs permanent, and the summary label shown per
//     language at the end of a run).
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability, retries) stays uniform across providers.
package services
