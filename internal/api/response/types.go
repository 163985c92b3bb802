package response

import (
	"github.com/qrally/qrally/internal/model"
	"github.com/qrally/qrally/internal/services/auth"
)

// User represents a user in API responses.
// The password field never leaves the server.
type User struct {
	ID    string `json:"id"`
	Score int    `json:"score"`
}

// UserFromModel converts a model.User to a response User
func UserFromModel(u *model.User) User {
	return User{
		ID:    string(u.ID),
		Score: u.Score,
	}
}

// AuthResponse is the response for the login endpoint
type AuthResponse struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		User:         UserFromModel(&s.User),
		SessionToken: s.Token,
	}
}

// Checkpoint represents a checkpoint in API responses
type Checkpoint struct {
	CPID  string `json:"cp_id"`
	Point int    `json:"point"`
}

// CheckpointFromModel converts a model.Checkpoint
func CheckpointFromModel(cp *model.Checkpoint) Checkpoint {
	return Checkpoint{
		CPID:  string(cp.CPID),
		Point: cp.Point,
	}
}

// ScanResult is the response for the scan endpoint
type ScanResult struct {
	Outcome     string      `json:"outcome"`
	DecodedText string      `json:"decoded_text"`
	Checkpoint  *Checkpoint `json:"checkpoint,omitempty"`
	Score       int         `json:"score"`
	Message     string      `json:"message"`
}

// ScanResultFromModel converts a model.ScanResult
func ScanResultFromModel(r *model.ScanResult) ScanResult {
	var cp *Checkpoint
	if r.Checkpoint != nil {
		c := CheckpointFromModel(r.Checkpoint)
		cp = &c
	}
	return ScanResult{
		Outcome:     string(r.Outcome),
		DecodedText: r.DecodedText,
		Checkpoint:  cp,
		Score:       r.Score,
		Message:     r.Message,
	}
}
