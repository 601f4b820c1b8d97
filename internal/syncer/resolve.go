package syncer

import (
	"fmt"
	"strings"

	"chatbox-mcp-sync/internal/config"
	"chatbox-mcp-sync/internal/modelscope"
)

// Resolved is a remote descriptor reduced to the three things the merge
// needs: a stable identity key, a chosen display name, and a transport.
type Resolved struct {
	SourceKey string
	Name      string
	Transport config.Transport
}

// ResolutionError marks a descriptor that cannot participate in the sync.
// It is non-fatal: the descriptor is skipped and the rest of the batch
// proceeds.
type ResolutionError struct {
	Index  int    // Position in the fetched descriptor list
	ID     string // Raw descriptor id, may be empty
	Reason string
}

func (e *ResolutionError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("descriptor #%d skipped: %s", e.Index, e.Reason)
	}
	return fmt.Sprintf("descriptor #%d (%s) skipped: %s", e.Index, e.ID, e.Reason)
}

// ResolveName picks the display name for a descriptor. The candidates are
// tried in a fixed preference order and the first trimmed non-empty one
// wins: the Chinese name, the zh locale, the en locale, the default name,
// and finally a placeholder derived from the id. Pure; identity matching
// never depends on the result.
func ResolveName(svc modelscope.Service) string {
	candidates := []func() string{
		func() string { return svc.ChineseName },
		func() string { return svc.Locales["zh"].Name },
		func() string { return svc.Locales["en"].Name },
		func() string { return svc.Name },
		func() string { return idPlaceholder(svc.ID) },
	}
	for _, candidate := range candidates {
		if name := strings.TrimSpace(candidate()); name != "" {
			return name
		}
	}
	return ""
}

// idPlaceholder turns a raw id like "@modelscope/server1" into a
// presentable fallback name: "modelscope-server1".
func idPlaceholder(id string) string {
	id = strings.ReplaceAll(id, "@", "")
	return strings.ReplaceAll(id, "/", "-")
}

// SourceKey derives the identity string used to match a descriptor to a
// local entry across runs. The machine id is preferred; a descriptor
// without one falls back to a slug of its default name. Deterministic by
// construction, which is what makes re-running a sync update entries
// instead of duplicating them.
func SourceKey(svc modelscope.Service) string {
	if key := strings.TrimSpace(svc.ID); key != "" {
		return key
	}
	return Slug(svc.Name)
}

// Resolve validates one descriptor and reduces it to a Resolved value.
// Descriptors without any identity field, or without a usable transport,
// yield a *ResolutionError; index is only used for reporting.
func Resolve(index int, svc modelscope.Service) (Resolved, error) {
	key := SourceKey(svc)
	if key == "" {
		return Resolved{}, &ResolutionError{Index: index, ID: svc.ID, Reason: "no identity fields (id or name)"}
	}

	transport, ok := resolveTransport(svc)
	if !ok {
		return Resolved{}, &ResolutionError{Index: index, ID: svc.ID, Reason: "no usable transport (url or command)"}
	}

	// A descriptor with an identity always yields a non-empty name, the
	// id placeholder being the last link of the chain.
	return Resolved{
		SourceKey: key,
		Name:      ResolveName(svc),
		Transport: transport,
	}, nil
}

// resolveTransport extracts the connection parameters. The first
// operational URL wins for HTTP servers, mirroring what Chatbox stores;
// a command line makes a stdio server.
func resolveTransport(svc modelscope.Service) (config.Transport, bool) {
	for _, op := range svc.Operational {
		if url := strings.TrimSpace(op.URL); url != "" {
			return config.Transport{Type: config.TransportTypeHTTP, URL: url}, true
		}
	}
	if cmd := strings.TrimSpace(svc.Command); cmd != "" {
		return config.Transport{
			Type:    config.TransportTypeStdio,
			Command: cmd,
			Args:    svc.Args,
			Env:     svc.Env,
		}, true
	}
	return config.Transport{}, false
}

// ResolveAll resolves a whole fetched batch, partitioning descriptors
// into usable entries and per-descriptor skip errors.
func ResolveAll(services []modelscope.Service) ([]Resolved, []error) {
	resolved := make([]Resolved, 0, len(services))
	var skipped []error
	for i, svc := range services {
		r, err := Resolve(i, svc)
		if err != nil {
			skipped = append(skipped, err)
			continue
		}
		resolved = append(resolved, r)
	}
	return resolved, skipped
}
