package syncer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatbox-mcp-sync/internal/config"
)

// docWithServers builds a config document holding the given server list
// plus an unrelated sibling subtree that must survive a merge untouched.
func docWithServers(servers []any) config.Document {
	return config.Document{
		"settings": map[string]any{
			"mcp": map[string]any{
				"servers": servers,
			},
			"theme": "dark",
		},
		"sessions": []any{map[string]any{"id": "sess-1"}},
	}
}

func getServers(t *testing.T, doc config.Document) []any {
	t.Helper()
	servers, ok := doc["settings"].(map[string]any)["mcp"].(map[string]any)["servers"].([]any)
	require.True(t, ok, "servers path should hold a list")
	return servers
}

func httpResolved(key, name, url string) Resolved {
	return Resolved{
		SourceKey: key,
		Name:      name,
		Transport: config.Transport{Type: config.TransportTypeHTTP, URL: url},
	}
}

func TestMerge_AddsNewEntryAndPreservesUnmanaged(t *testing.T) {
	existing := map[string]any{
		"id":      "e1",
		"name":    "现有服务器",
		"enabled": true,
		"transport": map[string]any{
			"type": "http",
			"url":  "http://localhost:8080",
		},
	}
	doc := docWithServers([]any{existing})

	stats, err := Merge(doc, []Resolved{
		httpResolved("srv-1", "ModelScope中文模型", "https://modelscope.cn/api/mcp/server1"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 0, stats.Updated)

	servers := getServers(t, doc)
	require.Len(t, servers, 2)

	// The unmanaged entry (no sourceKey) is byte-for-byte what it was.
	assert.Equal(t, existing, servers[0])

	added := servers[1].(map[string]any)
	assert.Equal(t, "ModelScope中文模型", added["name"])
	assert.Equal(t, true, added["enabled"])
	assert.Equal(t, "srv-1", added["sourceKey"])
	assert.NotEmpty(t, added["id"])
	assert.NotEqual(t, "e1", added["id"])
	assert.Equal(t, map[string]any{
		"type": "http",
		"url":  "https://modelscope.cn/api/mcp/server1",
	}, added["transport"])
}

func TestMerge_Idempotent(t *testing.T) {
	resolved := []Resolved{
		httpResolved("srv-1", "Server One", "https://example.com/one"),
		httpResolved("srv-2", "Server Two", "https://example.com/two"),
	}

	doc := docWithServers(nil)
	stats, err := Merge(doc, resolved)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Added)

	firstID := getServers(t, doc)[0].(map[string]any)["id"]

	again, err := Merge(doc, resolved)
	require.NoError(t, err)
	assert.False(t, again.Changed(), "re-merging the same set must be a no-op")

	servers := getServers(t, doc)
	require.Len(t, servers, 2, "re-merge must not add a third entry")
	assert.Equal(t, firstID, servers[0].(map[string]any)["id"], "re-merge must keep the minted id")
}

func TestMerge_UpdateKeepsIDEnabledAndForeignFields(t *testing.T) {
	doc := docWithServers([]any{map[string]any{
		"id":        "e1",
		"name":      "Old Name",
		"enabled":   false,
		"note":      "user wrote this",
		"sourceKey": "srv-1",
		"transport": map[string]any{"type": "http", "url": "https://old.example.com"},
	}})

	stats, err := Merge(doc, []Resolved{
		httpResolved("srv-1", "New Name", "https://new.example.com"),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Updated)
	assert.Equal(t, 0, stats.Added)

	servers := getServers(t, doc)
	require.Len(t, servers, 1)
	entry := servers[0].(map[string]any)
	assert.Equal(t, "e1", entry["id"], "update must never change the id")
	assert.Equal(t, false, entry["enabled"], "update must never flip enabled")
	assert.Equal(t, "user wrote this", entry["note"], "unknown entry fields must survive")
	assert.Equal(t, "New Name", entry["name"])
	assert.Equal(t, "https://new.example.com", entry["transport"].(map[string]any)["url"])
}

func TestMerge_UnchangedEntryNotCounted(t *testing.T) {
	doc := docWithServers(nil)
	resolved := []Resolved{httpResolved("srv-1", "Same", "https://example.com")}

	_, err := Merge(doc, resolved)
	require.NoError(t, err)

	stats, err := Merge(doc, resolved)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.Updated)
	assert.False(t, stats.Changed())
}

func TestMerge_DuplicateSourceKeyLastWins(t *testing.T) {
	doc := docWithServers(nil)

	stats, err := Merge(doc, []Resolved{
		httpResolved("srv-1", "First", "https://example.com/first"),
		httpResolved("srv-1", "Last", "https://example.com/last"),
	})
	require.NoError(t, err)

	servers := getServers(t, doc)
	require.Len(t, servers, 1, "duplicate source keys must collapse onto one entry")
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, 1, stats.Updated)

	entry := servers[0].(map[string]any)
	assert.Equal(t, "Last", entry["name"])
	assert.Equal(t, "https://example.com/last", entry["transport"].(map[string]any)["url"])
}

func TestMerge_ServersNotListFails(t *testing.T) {
	doc := config.Document{
		"settings": map[string]any{
			"mcp": map[string]any{
				"servers": "not a list",
			},
		},
	}

	_, err := Merge(doc, []Resolved{httpResolved("srv-1", "X", "https://example.com")})
	require.ErrorIs(t, err, ErrServerList)
	assert.Equal(t, "not a list", doc["settings"].(map[string]any)["mcp"].(map[string]any)["servers"],
		"a failed merge must leave the document unchanged")
}

func TestMerge_NonObjectAncestorFails(t *testing.T) {
	doc := config.Document{"settings": "oops"}

	_, err := Merge(doc, []Resolved{httpResolved("srv-1", "X", "https://example.com")})
	require.ErrorIs(t, err, ErrServerList)
	assert.Equal(t, "oops", doc["settings"])
}

func TestMerge_CreatesMissingPath(t *testing.T) {
	doc := config.Document{"other": "kept"}

	stats, err := Merge(doc, []Resolved{httpResolved("srv-1", "X", "https://example.com")})
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Added)
	assert.Equal(t, "kept", doc["other"])
	require.Len(t, getServers(t, doc), 1)
}

func TestMerge_PreservesDocumentSiblings(t *testing.T) {
	doc := docWithServers(nil)

	_, err := Merge(doc, []Resolved{httpResolved("srv-1", "X", "https://example.com")})
	require.NoError(t, err)

	assert.Equal(t, "dark", doc["settings"].(map[string]any)["theme"])
	assert.Equal(t, []any{map[string]any{"id": "sess-1"}}, doc["sessions"])
}

func TestMerge_NeverRemovesEntries(t *testing.T) {
	stale := map[string]any{
		"id":        "old-1",
		"name":      "Gone Upstream",
		"enabled":   true,
		"sourceKey": "srv-gone",
		"transport": map[string]any{"type": "http", "url": "https://gone.example.com"},
	}
	doc := docWithServers([]any{stale})

	_, err := Merge(doc, []Resolved{httpResolved("srv-1", "X", "https://example.com")})
	require.NoError(t, err)

	servers := getServers(t, doc)
	require.Len(t, servers, 2)
	assert.Equal(t, stale, servers[0], "entries missing from the remote list stay as they are")
}
