package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newDraftCmd() *cobra.Command {
	draftCmd := &cobra.Command{
		Use:   "draft",
		Short: "Manage the saved evaluation draft",
	}

	draftCmd.AddCommand(newDraftSaveCmd())
	draftCmd.AddCommand(newDraftLoadCmd())
	draftCmd.AddCommand(newDraftDeleteCmd())

	return draftCmd
}

func newDraftSaveCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "save [payload]",
		Short: "Save a draft payload",
		Long:  "Save a JSON draft payload, given as an argument, from a file with --file, or from stdin with --file -.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var payload []byte
			switch {
			case len(args) == 1:
				payload = []byte(args[0])
			case file == "-":
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				payload = data
			case file != "":
				data, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", file, err)
				}
				payload = data
			default:
				return fmt.Errorf("a payload argument or --file is required")
			}

			if !json.Valid(payload) {
				return fmt.Errorf("payload is not valid JSON")
			}

			req := map[string]json.RawMessage{"payload": payload}

			var result AckResult
			if err := client.Put("/api/v1/draft", req, &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the payload from a file (- for stdin)")

	return cmd
}

func newDraftLoadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Load the saved draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result DraftResult
			if err := client.Get("/api/v1/draft", &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}
}

func newDraftDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete the saved draft",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AckResult
			if err := client.Delete("/api/v1/draft", &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}
}
