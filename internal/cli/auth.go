package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLoginCmd() *cobra.Command {
	var id, pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the session",
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"id": id, "pass": pass}
			var result AuthResult

			if err := client.Post("/api/v1/auth/login", req, &result); err != nil {
				return err
			}

			session := &Session{
				Token:  result.SessionToken,
				UserID: result.User.ID,
				Score:  result.User.Score,
			}
			if err := sessions.Save(session); err != nil {
				return fmt.Errorf("failed to save session: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&id, "id", "", "User ID (required)")
	cmd.Flags().StringVar(&pass, "pass", "", "Password (required)")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("pass")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Log out and discard the saved session",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Best-effort server-side invalidation; the local session is
			// cleared regardless
			_ = client.Post("/api/v1/auth/logout", nil, nil)

			if err := sessions.Clear(); err != nil {
				return fmt.Errorf("failed to clear session: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user and score",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result User

			if err := client.Get("/api/v1/users/me", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
