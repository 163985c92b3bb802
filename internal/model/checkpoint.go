package model

// CheckpointID is the code value carried in a checkpoint's QR payload
type CheckpointID string

// Checkpoint is a scannable station awarding points
//
// Point may be negative; no score floor is enforced anywhere.
// Read-only from this application's perspective.
type Checkpoint struct {
	CPID  CheckpointID `json:"cp_id"`
	Point int          `json:"point"`
}
