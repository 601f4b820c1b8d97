package cmd

import (
	"github.com/spf13/cobra"
)

// exportPath is the destination for the exported mcp.json document.
var exportPath string

// exportCmd writes the fetched server list as a standalone mcp.json
// document instead of merging it into the Chatbox config.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the ModelScope MCP servers as a standalone mcp.json file",
	Long: `Fetch the operational MCP server list from ModelScope and write it as a
plain mcpServers mapping, the mcp.json format most MCP clients read.
The Chatbox config file is not read or written.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := buildSyncer()
		if err != nil {
			return err
		}
		return s.Export(exportPath)
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportPath, "output", "o", "", "Output file path for the exported JSON")
	exportCmd.Flags().StringVarP(&apiToken, "token", "t", "", "ModelScope API token (or MODELSCOPE_API_KEY)")
	exportCmd.Flags().StringVar(&apiURL, "url", "", "ModelScope MCP API URL")
	_ = exportCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(exportCmd)
}
