// Package cli holds the cobra commands of the leave-api binary.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "leave-api",
	Short: "Leave management HTTP API",
	Long: `Leave management HTTP API. Usage:

	leave-api serve
	leave-api migrate
`,
	SilenceUsage: true,
}

// Execute runs the root command with ctx and exits non-zero on failure.
func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "leave-api: %v\n", err)
		os.Exit(1)
	}
}
