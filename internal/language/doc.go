// Package language holds the fixed registry of translation targets.
//
// Validation happens here, before any provider request is issued, so an
// unsupported code fails the run fast instead of burning API quota.
package language
