// Package config loads, normalizes, and validates subtrans configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment overrides such as
// GEMINI_API_KEY and OPENAI_API_KEY (environment beats the file; the
// --api-key flag beats both). A missing config file is not an error;
// the defaults are complete enough to run with only an API key from the
// environment or the --api-key flag.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical enum values, and clear validation errors.
package config
