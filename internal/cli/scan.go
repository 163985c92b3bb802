package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <text|payload.json>",
		Short: "Submit decoded QR text as a scan",
		Long: `Submit a scan. The argument is either the decoded QR text itself or a
path to a JSON file holding a raw scanner payload, which is forwarded
unchanged for the server to normalize.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var req any = map[string]string{"text": args[0]}
			if raw, err := os.ReadFile(args[0]); err == nil {
				var payload json.RawMessage
				if json.Unmarshal(raw, &payload) != nil {
					return fmt.Errorf("%s is not valid JSON", args[0])
				}
				req = payload
			}

			var result ScanResult
			if err := client.Post("/api/v1/scans", req, &result); err != nil {
				return err
			}

			// An empty response means the payload had no decoded text and
			// the server discarded it; there is no result to report or save
			if result.Outcome == "" {
				out := NewOutput(cfg.Output)
				out.PrintMessage("No decoded text in payload; scan discarded")
				return nil
			}

			// Keep the saved session's score in step with the server
			if session := sessions.Restore(); session != nil {
				session.Score = result.Score
				if err := sessions.Save(session); err != nil {
					return fmt.Errorf("failed to update session: %w", err)
				}
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	return cmd
}

func newCheckpointCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "checkpoint <cp_id>",
		Short: "Look up a checkpoint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Checkpoint

			if err := client.Get("/api/v1/checkpoints/"+args[0], &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
