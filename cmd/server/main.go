// Command server runs the principal-sponsor proxy.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "server",
	Short: "Principal sponsor proxy for the wedding site",
	Long: `Serves /api/principal-sponsor in front of the spreadsheet script.

Reads fall back to a bundled list when the script is unavailable; writes are
forwarded once and fail with a generic error.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func main() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(fallbackCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
