package model

import "errors"

// Common errors used across the application
var (
	// User errors
	ErrUserNotFound = errors.New("user not found")

	// Checkpoint errors
	ErrCheckpointNotFound = errors.New("checkpoint not found")

	// Scan errors
	ErrScanInProgress = errors.New("a scan is already being processed")
	ErrNoDecodedText  = errors.New("no decoded text in scan payload")
)
