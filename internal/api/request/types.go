package request

// LoginRequest is the request body for logging in
type LoginRequest struct {
	ID   string `json:"id"`
	Pass string `json:"pass"`
}
