package main

import (
	"chatbox-mcp-sync/cmd" // CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line parsing and
// execution.
//
// chatbox-mcp-sync keeps the MCP server list of the Chatbox desktop app
// in step with the ModelScope platform:
//   - Fetches the operational MCP service descriptors from the ModelScope
//     API with a bearer token
//   - Picks a display name per service from an ordered preference chain
//     (Chinese name, zh/en locales, default name, id-derived placeholder)
//   - Merges the descriptors into the server list inside Chatbox's
//     config.json, matching existing entries by a recorded source key,
//     adding new ones with fresh UUIDs, and leaving user-created entries
//     and the enabled flag strictly alone
//   - Backs up the config to a .bak sibling and replaces it atomically,
//     so a failed write never truncates the original
//   - Optionally exports the same server set as a standalone mcp.json
//
// Error handling strategy:
//   - A descriptor that cannot be resolved (no identity, no transport) is
//     skipped with a warning; the rest of the batch still merges
//   - Everything else (API failure, unreadable config, foreign data at
//     the server-list path, write failure) aborts the run with a single
//     red diagnostic on stderr and a non-zero exit
func main() {
	cmd.Execute()
}
