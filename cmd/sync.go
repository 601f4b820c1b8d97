package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"chatbox-mcp-sync/internal/config"
	"chatbox-mcp-sync/internal/modelscope"
	"chatbox-mcp-sync/internal/syncer"
)

// Flag values for the sync command. Each has a fallback chain resolved in
// buildSyncer: flag, then environment variable, then the settings file,
// then the built-in default.
var (
	apiToken   string // --token / -t, falls back to MODELSCOPE_API_KEY
	configPath string // --path / -p, falls back to CHATBOX_CONFIG, then the platform default
	apiURL     string // --url, falls back to the official ModelScope endpoint
	noBackup   bool   // --no-backup disables the .bak copy before writing
)

// syncCmd fetches the MCP server list from ModelScope and merges it into
// the Chatbox config file.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch MCP servers from ModelScope and merge them into the Chatbox config",
	Long: `Fetch the operational MCP server list from ModelScope and merge it into
the Chatbox config file. Existing servers are matched by their recorded
source key and get their name and transport refreshed; unknown servers are
added. Servers you created yourself, and the enabled flag on every server,
are never touched.

Do not run two syncs against the same config file at the same time; the
load-merge-write cycle is not guarded against concurrent writers.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := buildSyncer()
		if err != nil {
			return err
		}
		return s.Run()
	},
}

// buildSyncer resolves the effective token, API URL, config path, and
// backup policy, and assembles the Syncer. Everything is decided here,
// once, and passed down; nothing below reads flags or environment.
func buildSyncer() (*syncer.Syncer, error) {
	settings := config.LoadSettings()

	token := config.ResolveToken(apiToken, settings)
	if token == "" {
		return nil, fmt.Errorf("no API token: use --token or set %s", config.EnvToken)
	}

	url := apiURL
	if url == "" {
		url = settings.APIURL
	}

	backup := !noBackup
	if settings.Backup != nil && !*settings.Backup {
		backup = false
	}

	return syncer.New(modelscope.NewClient(url, token), syncer.Options{
		ConfigPath: config.ResolveConfigPath(configPath, settings),
		Backup:     backup,
	}), nil
}

// init registers the sync command and its flags.
func init() {
	syncCmd.Flags().StringVarP(&apiToken, "token", "t", "", "ModelScope API token (or MODELSCOPE_API_KEY)")
	syncCmd.Flags().StringVarP(&configPath, "path", "p", "", "Chatbox config file path (or CHATBOX_CONFIG)")
	syncCmd.Flags().StringVar(&apiURL, "url", "", "ModelScope MCP API URL")
	syncCmd.Flags().BoolVar(&noBackup, "no-backup", false, "Do not back up the config file before writing")

	rootCmd.AddCommand(syncCmd)
}
