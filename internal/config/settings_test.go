package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigPathPerOS(t *testing.T) {
	home := "/home/u"
	assert.Equal(t,
		filepath.Join(home, "AppData", "Roaming", "xyz.chatboxapp.app", "config.json"),
		defaultConfigPath("windows", home))
	assert.Equal(t,
		filepath.Join(home, "Library", "Application Support", "xyz.chatboxapp.app", "config.json"),
		defaultConfigPath("darwin", home))
	assert.Equal(t,
		filepath.Join(home, ".config", "xyz.chatboxapp.app", "config.json"),
		defaultConfigPath("linux", home))
}

func TestResolveToken_Precedence(t *testing.T) {
	settings := Settings{Token: "from-file"}

	t.Setenv(EnvToken, "from-env")
	assert.Equal(t, "flag-wins", ResolveToken("flag-wins", settings))
	assert.Equal(t, "from-env", ResolveToken("", settings))

	t.Setenv(EnvToken, "")
	assert.Equal(t, "from-file", ResolveToken("", settings))
	assert.Equal(t, "", ResolveToken("  ", Settings{}))
}

func TestResolveConfigPath_Precedence(t *testing.T) {
	settings := Settings{ConfigPath: "/from/file.json"}

	t.Setenv(EnvConfigPath, "/from/env.json")
	assert.Equal(t, "/flag.json", ResolveConfigPath("/flag.json", settings))
	assert.Equal(t, "/from/env.json", ResolveConfigPath("", settings))

	t.Setenv(EnvConfigPath, "")
	assert.Equal(t, "/from/file.json", ResolveConfigPath("", settings))
	assert.Equal(t, DefaultConfigPath(), ResolveConfigPath("", Settings{}))
}

func TestLoadSettingsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("token: abc\napi_url: https://example.com\nbackup: false\n"), 0644))

	s := loadSettingsFile(path)
	assert.Equal(t, "abc", s.Token)
	assert.Equal(t, "https://example.com", s.APIURL)
	require.NotNil(t, s.Backup)
	assert.False(t, *s.Backup)
}

func TestLoadSettingsFile_MissingOrMalformed(t *testing.T) {
	assert.Equal(t, Settings{}, loadSettingsFile(filepath.Join(t.TempDir(), "nope.yaml")))

	bad := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(":\n\t-"), 0644))
	assert.Equal(t, Settings{}, loadSettingsFile(bad))
}
