package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] and
// [Notion.Validate] when required configuration groups are incomplete or
// invalid.
var (
	// ErrInvalidStorageConfigs indicates invalid local storage settings
	// (for example, an empty DSN).
	ErrInvalidStorageConfigs = errors.New("invalid storage configuration")

	// ErrInvalidRetryConfigs indicates invalid retry policy settings
	// (for example, a negative attempt cap or retry delay).
	ErrInvalidRetryConfigs = errors.New("invalid retry configuration")

	// ErrNotionNotConfigured indicates that the Notion integration settings
	// required for a sync pass are missing or malformed. This is the
	// systemic pre-flight failure: it is reported once per sync run, never
	// per note.
	ErrNotionNotConfigured = errors.New("notion integration is not configured")
)
