package config

// Transport holds the connection parameters for one MCP server.
// Two shapes exist in the wild: HTTP servers carry a URL, stdio servers
// carry a command line plus optional environment. The zero fields of the
// unused shape are omitted from JSON so entries stay in the exact form
// Chatbox writes itself.
type Transport struct {
	Type    string            `json:"type"`              // "http" or "stdio"
	URL     string            `json:"url,omitempty"`     // HTTP transport endpoint
	Command string            `json:"command,omitempty"` // stdio executable
	Args    []string          `json:"args,omitempty"`    // stdio arguments
	Env     map[string]string `json:"env,omitempty"`     // stdio environment
}

// TransportTypeHTTP and TransportTypeStdio are the transport type tags
// Chatbox understands in its server entries.
const (
	TransportTypeHTTP  = "http"
	TransportTypeStdio = "stdio"
)

// AsMap converts the transport to the generic map form used inside the
// loaded config document. Entries in the document are kept as plain maps
// so fields this tool does not know about survive a round trip; writing
// a typed struct value into one would break that symmetry.
func (t Transport) AsMap() map[string]any {
	m := map[string]any{"type": t.Type}
	if t.URL != "" {
		m["url"] = t.URL
	}
	if t.Command != "" {
		m["command"] = t.Command
	}
	if len(t.Args) > 0 {
		args := make([]any, len(t.Args))
		for i, a := range t.Args {
			args[i] = a
		}
		m["args"] = args
	}
	if len(t.Env) > 0 {
		env := make(map[string]any, len(t.Env))
		for k, v := range t.Env {
			env[k] = v
		}
		m["env"] = env
	}
	return m
}

// Settings is the tool's own optional configuration file
// (~/.config/chatbox-mcp-sync/config.yaml). It supplies defaults for
// values that can also come from flags or environment variables;
// flags win over environment variables, which win over this file.
type Settings struct {
	Token      string `yaml:"token"`       // ModelScope API token
	APIURL     string `yaml:"api_url"`     // Override for the ModelScope API endpoint
	ConfigPath string `yaml:"config_path"` // Override for the Chatbox config.json path
	Backup     *bool  `yaml:"backup"`      // Set false to disable the pre-write backup
}
