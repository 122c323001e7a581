package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "jurorctl",
		Short: "Juror panel API client",
		Long:  "Command-line client for the juror panel PIN and evaluation score API.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cfg.LoadToken(); err != nil {
				return err
			}
			client = NewClient(cfg.ServerURL, cfg.Token, cfg.APIKey, cfg.AdminPassword)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&cfg.ServerURL, "server", "s", cfg.ServerURL, "Server URL")
	rootCmd.PersistentFlags().StringVarP(&cfg.Token, "token", "t", cfg.Token, "Bearer token (overrides token file)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Path to token file")
	rootCmd.PersistentFlags().StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "API key for PIN endpoints")
	rootCmd.PersistentFlags().StringVar(&cfg.AdminPassword, "admin-password", cfg.AdminPassword, "Admin password for admin endpoints")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format (text, json)")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")

	rootCmd.AddCommand(newPINCmd())
	rootCmd.AddCommand(newDraftCmd())
	rootCmd.AddCommand(newScoresCmd())
	rootCmd.AddCommand(newAdminCmd())
	rootCmd.AddCommand(newHealthCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
