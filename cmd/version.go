package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"chatbox-mcp-sync/internal/version"
)

// versionCmd prints build information and exits.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.Info())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
