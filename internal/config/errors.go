package config

import "errors"

// Validation errors returned by [StructuredConfig.validate] when required
// configuration groups are incomplete or invalid.
var (
	// ErrInvalidMirrorConfigs indicates invalid mirror layout settings
	// (for example, an empty data directory or database path).
	ErrInvalidMirrorConfigs = errors.New("invalid mirror configuration")
	// ErrInvalidTransferConfigs indicates invalid transfer settings
	// (for example, a non-positive chunk size).
	ErrInvalidTransferConfigs = errors.New("invalid transfer configuration")
	// ErrInvalidWorkerConfigs indicates invalid background worker settings
	// (for example, a negative sync interval).
	ErrInvalidWorkerConfigs = errors.New("invalid worker configuration")
)
