package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newScoresCmd() *cobra.Command {
	scoresCmd := &cobra.Command{
		Use:   "scores",
		Short: "Manage evaluation scores",
	}

	scoresCmd.AddCommand(newScoresSubmitCmd())
	scoresCmd.AddCommand(newScoresListCmd())
	scoresCmd.AddCommand(newScoresCountCmd())
	scoresCmd.AddCommand(newScoresDeleteCmd())
	scoresCmd.AddCommand(newResetWindowCmd())

	return scoresCmd
}

func newScoresSubmitCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Submit a batch of score rows",
		Long:  "Submit a batch of score rows read as a JSON array from a file, or from stdin with --file -.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			var err error
			if file == "-" || file == "" {
				data, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
			} else {
				data, err = os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("failed to read %s: %w", file, err)
				}
			}

			var rows []json.RawMessage
			if err := json.Unmarshal(data, &rows); err != nil {
				return fmt.Errorf("input must be a JSON array of score rows: %w", err)
			}

			req := map[string]any{"rows": rows}

			var result SubmitScoresResult
			if err := client.Post("/api/v1/scores", req, &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Read score rows from a file (- or empty for stdin)")

	return cmd
}

func newScoresListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List resolved score records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result ListScoresResult
			if err := client.Get("/api/v1/scores", &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}
}

func newScoresCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count",
		Short: "Count finalized score records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result CountResult
			if err := client.Get("/api/v1/scores/finalized/count", &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}
}

func newScoresDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete all score records and the draft for the authenticated juror",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result DeletedScoresResult
			if err := client.Delete("/api/v1/scores", &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}
}

func newResetWindowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset-window",
		Short: "Open the reset-unlock window for the authenticated juror",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var result AckResult
			if err := client.Post("/api/v1/reset-window", nil, &result); err != nil {
				return err
			}

			return NewOutput(cfg.Output).Print(&result)
		},
	}
}
