// Package gemini implements the translation provider backed by the Gemini
// generateContent REST API.
//
// The client retries rate-limited and transient failures with exponential
// backoff, honoring Retry-After when the server sends one. Authentication
// failures are never retried.
package gemini
