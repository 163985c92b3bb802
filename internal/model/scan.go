package model

import "time"

// ScanState is the lifecycle state of a scan workflow
type ScanState string

const (
	ScanIdle       ScanState = "idle"
	ScanProcessing ScanState = "processing"
	ScanSucceeded  ScanState = "succeeded"
	ScanFailed     ScanState = "failed"
)

// ScanOutcome classifies how a completed scan ended
type ScanOutcome string

const (
	OutcomeSuccess            ScanOutcome = "success"
	OutcomeCheckpointNotFound ScanOutcome = "checkpoint_not_found"
	OutcomeLookupError        ScanOutcome = "lookup_error"
	OutcomeUpdateError        ScanOutcome = "update_error"
	OutcomeInternalError      ScanOutcome = "internal_error"
)

// ScanResult is the terminal report for one scan workflow
type ScanResult struct {
	Outcome     ScanOutcome
	DecodedText string
	Checkpoint  *Checkpoint // set when the lookup found a row
	Score       int         // score as reconciled with storage
	Message     string      // user-visible status line
}

// ScanEventType identifies a scan status event
type ScanEventType string

const (
	// Emitted before and after each remote call so a slow backend
	// is observable as a sequence of status updates
	EventScanStarted    ScanEventType = "scan_started"
	EventCheckingPoint  ScanEventType = "checking_checkpoint"
	EventUpdatingScore  ScanEventType = "updating_score"
	EventScanSucceeded  ScanEventType = "scan_succeeded"
	EventScanFailed     ScanEventType = "scan_failed"
)

// ScanEvent is a transient status event published during a scan workflow
type ScanEvent struct {
	ID          string        `json:"id"`
	Type        ScanEventType `json:"type"`
	UserID      UserID        `json:"user_id"`
	DecodedText string        `json:"decoded_text,omitempty"`
	Score       int           `json:"score,omitempty"`
	Message     string        `json:"message,omitempty"`
	Timestamp   time.Time     `json:"timestamp"`
}
