package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"chatbox-mcp-sync/internal/logger"
)

// Environment variables honored as fallbacks for the corresponding flags.
const (
	EnvToken      = "MODELSCOPE_API_KEY"
	EnvConfigPath = "CHATBOX_CONFIG"
)

// settingsFileName is the tool's own settings file, looked up under the
// user's config directory (~/.config/chatbox-mcp-sync/config.yaml on
// Linux, the platform equivalent elsewhere).
const settingsFileName = "config.yaml"

// LoadSettings reads the optional tool settings file. A missing file is
// normal and yields zero-valued settings; a present but malformed file is
// reported and otherwise ignored so a typo in the settings file never
// blocks a sync driven entirely by flags.
func LoadSettings() Settings {
	dir, err := os.UserConfigDir()
	if err != nil {
		logger.Debug("[DEBUG] No user config dir: %v\n", err)
		return Settings{}
	}
	return loadSettingsFile(filepath.Join(dir, "chatbox-mcp-sync", settingsFileName))
}

func loadSettingsFile(path string) Settings {
	var s Settings
	raw, err := os.ReadFile(path)
	if err != nil {
		logger.Debug("[DEBUG] No settings file at %s\n", path)
		return s
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		logger.Warn("[WARN] Ignoring malformed settings file %s: %v\n", path, err)
		return Settings{}
	}
	logger.Debug("[DEBUG] Loaded settings from %s\n", path)
	return s
}

// ResolveToken picks the API token: --token flag, then MODELSCOPE_API_KEY,
// then the settings file. Returns "" when no source provides one.
func ResolveToken(flagValue string, s Settings) string {
	if v := strings.TrimSpace(flagValue); v != "" {
		return v
	}
	if v := strings.TrimSpace(os.Getenv(EnvToken)); v != "" {
		return v
	}
	return strings.TrimSpace(s.Token)
}

// ResolveConfigPath picks the Chatbox config.json path: --path flag, then
// CHATBOX_CONFIG, then the settings file, then the platform default.
func ResolveConfigPath(flagValue string, s Settings) string {
	if flagValue != "" {
		return flagValue
	}
	if v := os.Getenv(EnvConfigPath); v != "" {
		return v
	}
	if s.ConfigPath != "" {
		return s.ConfigPath
	}
	return DefaultConfigPath()
}

// DefaultConfigPath returns the default Chatbox config.json location for
// the current platform.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		// No home directory to anchor on; fall back to the working dir
		// the way the legacy tool did.
		return "config.json"
	}
	return defaultConfigPath(runtime.GOOS, home)
}

// defaultConfigPath maps an OS family to the Chatbox config location.
// Chatbox stores its config under the app identifier xyz.chatboxapp.app:
//   - Windows: ~/AppData/Roaming/xyz.chatboxapp.app/config.json
//   - macOS:   ~/Library/Application Support/xyz.chatboxapp.app/config.json
//   - others:  ~/.config/xyz.chatboxapp.app/config.json
func defaultConfigPath(goos, home string) string {
	switch goos {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "xyz.chatboxapp.app", "config.json")
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "xyz.chatboxapp.app", "config.json")
	default:
		return filepath.Join(home, ".config", "xyz.chatboxapp.app", "config.json")
	}
}
