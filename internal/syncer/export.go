package syncer

import (
	"fmt"
	"strings"

	"chatbox-mcp-sync/internal/config"
)

// ExportServer is one entry of the exported mcp.json document: transport
// parameters only, no enablement or bookkeeping fields.
type ExportServer struct {
	Type    string            `json:"type"`
	URL     string            `json:"url,omitempty"`
	Command string            `json:"command,omitempty"`
	Args    []string          `json:"args,omitempty"`
	Env     map[string]string `json:"env,omitempty"`
}

// ExportDocument is the standalone mcp.json shape understood by most MCP
// clients: a map from server key to transport descriptor.
type ExportDocument struct {
	MCPServers map[string]ExportServer `json:"mcpServers"`
}

// Project builds the export document from a resolved descriptor set.
// Keys are slugs of the display names, disambiguated with a numeric
// suffix when two names collapse to the same slug, so keys are unique
// within one export. HTTP transports are rewritten as SSE endpoints
// (the URL gets a /sse suffix when it lacks one), the form MCP clients
// expect in mcp.json. Pure and independent of any local document.
func Project(resolved []Resolved) ExportDocument {
	out := ExportDocument{MCPServers: make(map[string]ExportServer, len(resolved))}

	for _, r := range resolved {
		key := Slug(r.Name)
		if key == "" {
			key = Slug(r.SourceKey)
		}
		if key == "" {
			key = "server"
		}
		if _, taken := out.MCPServers[key]; taken {
			for n := 2; ; n++ {
				candidate := fmt.Sprintf("%s-%d", key, n)
				if _, taken := out.MCPServers[candidate]; !taken {
					key = candidate
					break
				}
			}
		}

		if r.Transport.Type == config.TransportTypeHTTP {
			out.MCPServers[key] = ExportServer{Type: "sse", URL: sseURL(r.Transport.URL)}
			continue
		}
		out.MCPServers[key] = ExportServer{
			Type:    r.Transport.Type,
			Command: r.Transport.Command,
			Args:    r.Transport.Args,
			Env:     r.Transport.Env,
		}
	}
	return out
}

// Slug lowercases a name and reduces it to alphanumerics and dashes,
// mapping spaces and underscores to dashes. Non-ASCII letters (Chinese
// service names in particular) are dropped, so the result may be empty.
func Slug(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.ReplaceAll(name, " ", "-")
	name = strings.ReplaceAll(name, "_", "-")

	var b strings.Builder
	for _, c := range name {
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == '-' {
			b.WriteRune(c)
		}
	}
	return b.String()
}

// sseURL ensures a URL addresses the SSE endpoint of an MCP server.
func sseURL(url string) string {
	if strings.HasSuffix(url, "/sse") {
		return url
	}
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	return url + "sse"
}
