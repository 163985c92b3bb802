package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg      *Config
	client   *Client
	sessions *SessionStore
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "qrally",
		Short: "CLI tool for the QRally scan-to-score API",
		Long: `qrally is a CLI tool for interacting with the QRally JSON API.

It supports logging in, submitting decoded QR text as scans, looking up
checkpoints and streaming live scan status events.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			sessions = NewSessionStore(cfg.SessionFile)

			// A token given via flag/env wins over the saved session
			if cfg.Token == "" {
				if session := sessions.Restore(); session != nil {
					cfg.Token = session.Token
				}
			}

			client = NewClient(cfg.ServerURL, cfg.Token)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: QRALLY_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Session token (env: QRALLY_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.SessionFile, "session-file", cfg.SessionFile, "Session file path (env: QRALLY_SESSION_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newScanCmd())
	rootCmd.AddCommand(newCheckpointCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
