package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"weddingapi/internal/sponsor/fallback"
)

var fallbackDatasetPath string

var fallbackCmd = &cobra.Command{
	Use:   "fallback",
	Short: "Print the list served while the remote store is down",
	Long: `Loads the fallback dataset (embedded, or --dataset) and prints the
transformed records exactly as GET /api/principal-sponsor would return them
during an outage.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ds, err := fallback.LoadFile(fallbackDatasetPath)
		if err != nil {
			return err
		}
		out, err := json.MarshalIndent(ds.Records(), "", "  ")
		if err != nil {
			return fmt.Errorf("encode records: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(out))
		return err
	},
}

func init() {
	fallbackCmd.Flags().StringVar(&fallbackDatasetPath, "dataset", "", "YAML dataset to use instead of the embedded one")
}
