package syncer

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/google/uuid"

	"chatbox-mcp-sync/internal/config"
	"chatbox-mcp-sync/internal/logger"
)

// The server list lives at settings.mcp.servers inside the Chatbox
// config document. That is the only path the merge touches.
const (
	settingsKey    = "settings"
	mcpKey         = "mcp"
	serversKey     = "servers"
	sourceKeyField = "sourceKey"
)

// ErrServerList indicates the settings.mcp.servers path cannot be merged
// into: either the list itself or one of its ancestors holds foreign,
// non-syncable data. The merge never overwrites such a value.
var ErrServerList = errors.New("server list path holds foreign data")

// MergeStats reports what one merge did to the document.
type MergeStats struct {
	Updated int // Existing entries whose name or transport changed
	Added   int // New entries appended to the list
}

// Changed reports whether the merge altered the document at all.
func (s MergeStats) Changed() bool {
	return s.Updated > 0 || s.Added > 0
}

// Merge reconciles the document's server list with the resolved remote
// descriptors, in place:
//
//   - A descriptor whose SourceKey matches an existing entry updates that
//     entry's name and transport; id, enabled, and every other field stay
//     as the user left them.
//   - A descriptor with no match is appended as a new, enabled entry with
//     a freshly generated unique id and its SourceKey recorded.
//   - Entries the remote list does not mention are never touched, and in
//     particular never removed: entries without a sourceKey belong to the
//     user, not to this tool.
//
// Duplicate SourceKeys within one batch collapse onto one entry, last
// descriptor winning for name and transport. A missing server list path
// is created; a path occupied by anything other than a list fails with
// ErrServerList before the document is modified.
func Merge(doc config.Document, resolved []Resolved) (MergeStats, error) {
	var stats MergeStats

	servers, err := serverList(doc)
	if err != nil {
		return stats, err
	}

	// Index the entries this tool manages (those carrying a sourceKey)
	// and collect every id in the list for collision checking. Entries
	// that are not JSON objects are left alone entirely.
	byKey := make(map[string]map[string]any)
	ids := make(map[string]bool)
	for _, item := range servers {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := entry["id"].(string); ok {
			ids[id] = true
		}
		if key, ok := entry[sourceKeyField].(string); ok && key != "" {
			byKey[key] = entry
		}
	}

	for _, r := range resolved {
		transport := r.Transport.AsMap()

		if entry, ok := byKey[r.SourceKey]; ok {
			oldName, _ := entry["name"].(string)
			if oldName == r.Name && reflect.DeepEqual(entry["transport"], transport) {
				logger.Debug("[DEBUG] %s unchanged, skipping\n", r.SourceKey)
				continue
			}
			entry["name"] = r.Name
			entry["transport"] = transport
			stats.Updated++
			logger.Info("[INFO] Updated: %s -> %s\n", oldName, r.Name)
			continue
		}

		entry := map[string]any{
			"id":           newEntryID(ids),
			"name":         r.Name,
			"enabled":      true,
			"transport":    transport,
			sourceKeyField: r.SourceKey,
		}
		servers = append(servers, entry)
		byKey[r.SourceKey] = entry
		stats.Added++
		logger.Info("[INFO] Added: %s\n", r.Name)
	}

	// The append above may have reallocated the slice, so the list is
	// written back into the document unconditionally.
	doc[settingsKey].(map[string]any)[mcpKey].(map[string]any)[serversKey] = servers
	return stats, nil
}

// serverList returns the settings.mcp.servers slice, creating missing
// levels of the path. Nothing is created on the error path, so a failed
// merge leaves the document exactly as loaded.
func serverList(doc config.Document) ([]any, error) {
	settings, err := childObject(doc, settingsKey)
	if err != nil {
		return nil, err
	}
	mcp, err := childObject(settings, mcpKey)
	if err != nil {
		return nil, err
	}

	v, ok := mcp[serversKey]
	if !ok || v == nil {
		list := []any{}
		mcp[serversKey] = list
		return list, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("%s.%s.%s is %T, not a list: %w",
			settingsKey, mcpKey, serversKey, v, ErrServerList)
	}
	return list, nil
}

// childObject descends one level of the document, creating the child map
// when the key is absent and failing when the key holds a non-object.
func childObject(parent map[string]any, key string) (map[string]any, error) {
	v, ok := parent[key]
	if !ok || v == nil {
		child := map[string]any{}
		parent[key] = child
		return child, nil
	}
	child, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("config field %q is %T, not an object: %w", key, v, ErrServerList)
	}
	return child, nil
}

// newEntryID mints a unique id for a new entry. UUIDs make collisions
// with existing ids effectively impossible, but the list may contain
// entries written by anything, so the id is still checked against every
// id already present.
func newEntryID(ids map[string]bool) string {
	for {
		id := uuid.NewString()
		if !ids[id] {
			ids[id] = true
			return id
		}
	}
}
