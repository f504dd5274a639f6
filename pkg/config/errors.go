package config

import "errors"

var (
	// ErrParsingFailed wraps env-tag parsing failures, missing required
	// variables included.
	ErrParsingFailed = errors.New("failed to parse environment into config")

	// ErrEnvFileLoading wraps failures reading an explicitly named .env file.
	ErrEnvFileLoading = errors.New("failed to load env file")
)
