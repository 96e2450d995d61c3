package logging

// Standardized attribute keys. Use these instead of ad-hoc strings so log
// lines stay greppable across packages.
const (
	FieldComponent = "component"
	FieldRunID     = "run_id"
	FieldLanguage  = "language"
	FieldProvider  = "provider"
	FieldMode      = "mode"
	FieldInput     = "input"
	FieldOutput    = "output"
	FieldAttempt   = "attempt"
)
