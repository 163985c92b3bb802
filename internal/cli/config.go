package cli

import (
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL   string
	Token       string
	SessionFile string
	Output      string
	Verbose     bool
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:   getEnvOrDefault("QRALLY_SERVER", "http://localhost:8080"),
		Token:       os.Getenv("QRALLY_TOKEN"),
		SessionFile: getEnvOrDefault("QRALLY_SESSION_FILE", defaultSessionFile()),
		Output:      "text",
		Verbose:     false,
	}
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".qrally/session.json"
	}
	return filepath.Join(home, ".qrally", "session.json")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
