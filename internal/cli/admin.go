package cli

import (
	"github.com/spf13/cobra"
)

func newAdminCmd() *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Administrative juror account operations",
	}

	adminCmd.AddCommand(newAdminResetPINCmd())
	adminCmd.AddCommand(newAdminClearCmd())

	return adminCmd
}

func newAdminResetPINCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-pin <juror-id>",
		Short: "Clear a juror's PIN and lockout state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AckResult
			if err := client.Post("/api/v1/admin/jurors/"+args[0]+"/reset-pin", nil, &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}
}

func newAdminClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <juror-id>",
		Short: "Delete a juror's account entirely",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AckResult
			if err := client.Delete("/api/v1/admin/jurors/"+args[0], &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}
}
