package coh2live

import "github.com/coh2live/coh2live-go/internal/logfinder"

// Sentinel errors returned by this package.
var (
	// ErrLogFileNotFound is returned when the CoH2 log file cannot be
	// found or accessed.
	ErrLogFileNotFound = logfinder.ErrLogFileNotFound
)
