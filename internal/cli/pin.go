package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPINCmd() *cobra.Command {
	pinCmd := &cobra.Command{
		Use:   "pin",
		Short: "Manage juror PINs",
	}

	pinCmd.AddCommand(newPINIssueCmd())
	pinCmd.AddCommand(newPINExistsCmd())
	pinCmd.AddCommand(newPINVerifyCmd())

	return pinCmd
}

func newPINIssueCmd() *cobra.Command {
	var name, dept string

	cmd := &cobra.Command{
		Use:   "issue <juror-id>",
		Short: "Issue a PIN for a juror",
		Long:  "Issue a PIN for a juror. Re-issuing for the same juror returns the existing PIN.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"juror_id": args[0],
				"name":     name,
				"dept":     dept,
			}

			var result IssuePINResult
			if err := client.Post("/api/v1/pins", req, &result); err != nil {
				return err
			}

			if err := cfg.SaveToken(result.Token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Juror display name")
	cmd.Flags().StringVar(&dept, "dept", "", "Juror department")

	return cmd
}

func newPINExistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "exists <juror-id>",
		Short: "Check whether a juror has a PIN set",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result PINExistsResult
			if err := client.Get("/api/v1/pins/"+args[0], &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}
}

func newPINVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <juror-id> <pin>",
		Short: "Verify a juror's PIN",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{
				"juror_id": args[0],
				"pin":      args[1],
			}

			var result VerifyPINResult
			if err := client.Post("/api/v1/pins/verify", req, &result); err != nil {
				return err
			}

			if result.Valid && result.Token != "" {
				if err := cfg.SaveToken(result.Token); err != nil {
					return fmt.Errorf("failed to save token: %w", err)
				}
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}
}
