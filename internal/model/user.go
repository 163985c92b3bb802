package model

// UserID uniquely identifies a user across the system
type UserID string

// User represents a participant accumulating points
//
// Rows are provisioned externally (event registration); this application
// reads them at login and only ever mutates Score.
type User struct {
	ID    UserID `json:"id"`
	Pass  string `json:"pass"` // compared for equality; stored as provisioned
	Score int    `json:"score"`
}
