package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case User:
		o.printUser(v)
	case AuthResult:
		o.printAuthResult(v)
	case Checkpoint:
		o.printCheckpoint(v)
	case ScanResult:
		o.printScanResult(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// User response type (matches API)
type User struct {
	ID    string `json:"id"`
	Score int    `json:"score"`
}

// AuthResult combines user and token
type AuthResult struct {
	User         User   `json:"user"`
	SessionToken string `json:"session_token"`
}

// Checkpoint response type
type Checkpoint struct {
	CPID  string `json:"cp_id"`
	Point int    `json:"point"`
}

// ScanResult response type
type ScanResult struct {
	Outcome     string      `json:"outcome"`
	DecodedText string      `json:"decoded_text"`
	Checkpoint  *Checkpoint `json:"checkpoint,omitempty"`
	Score       int         `json:"score"`
	Message     string      `json:"message"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printUser(u User) {
	fmt.Printf("User: %s\n", u.ID)
	fmt.Printf("Score: %dP\n", u.Score)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printUser(a.User)
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printCheckpoint(c Checkpoint) {
	fmt.Printf("Checkpoint: %s\n", c.CPID)
	fmt.Printf("Point: %dP\n", c.Point)
}

func (o *Output) printScanResult(r ScanResult) {
	fmt.Printf("Outcome: %s\n", r.Outcome)
	if r.Checkpoint != nil {
		fmt.Printf("Checkpoint: %s (%dP)\n", r.Checkpoint.CPID, r.Checkpoint.Point)
	}
	fmt.Printf("Score: %dP\n", r.Score)
	if r.Message != "" {
		fmt.Printf("Message: %s\n", r.Message)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
