package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"chatbox-mcp-sync/internal/logger"
	"chatbox-mcp-sync/internal/version"
)

// debug indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// rootCmd is the base command for the CLI tool `chatbox-mcp-sync`.
var rootCmd = &cobra.Command{
	Use:     "chatbox-mcp-sync",
	Short:   "Sync ModelScope MCP servers into the Chatbox config",
	Version: version.Info(),

	// PersistentPreRun runs before any subcommand and sets up the
	// logger according to the debug flag.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug)
	},

	// Errors are logged once in Execute; cobra's own reporting would
	// duplicate them.
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute parses the command line and runs the selected command.
// Any unrecovered error is reported on stderr and exits with status 1.
func Execute() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	if err := rootCmd.Execute(); err != nil {
		logger.Error("[ERROR] %v\n", err)
		os.Exit(1)
	}
}
