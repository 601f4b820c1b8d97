package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"chatbox-mcp-sync/internal/logger"
)

// Document is the full Chatbox configuration file held in memory as a
// generic JSON tree. Only the settings.mcp.servers list is ever touched;
// every other field passes through load and save untouched, which is why
// the document is not decoded into typed structs.
type Document = map[string]any

// BackupSuffix is appended to the config path for the pre-write backup.
const BackupSuffix = ".bak"

// NewDocument returns the minimal document written on first run, when no
// Chatbox config exists yet: an empty server list under settings.mcp.
func NewDocument() Document {
	return Document{
		"settings": map[string]any{
			"mcp": map[string]any{
				"servers": []any{},
			},
		},
	}
}

// LoadDocument reads the Chatbox config file into memory.
// A missing file is not an error: the tool bootstraps a fresh document so
// a sync works against a clean Chatbox install. Any other read failure,
// and malformed JSON in particular, is fatal: merging into a document we
// could not parse would destroy the user's configuration on save.
func LoadDocument(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Warn("[WARN] Config file %s not found, starting from an empty document\n", path)
			return NewDocument(), nil
		}
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("config file %s is not valid JSON: %w", path, err)
	}
	logger.Debug("[DEBUG] Loaded config document from %s (%d bytes)\n", path, len(raw))
	return doc, nil
}

// SaveDocument writes the document back to path. The JSON is written the
// way Chatbox itself writes it: UTF-8, two-space indent, no HTML escaping
// so URLs keep literal ampersands. The write goes to a temp file in the
// same directory followed by a rename, so a failure partway through never
// leaves a truncated config behind.
func SaveDocument(path string, doc Document) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to marshal config document: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory for %s: %w", path, err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		// Leave nothing behind on a failed replace.
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace config file %s: %w", path, err)
	}

	logger.Debug("[DEBUG] Wrote config document to %s (%d bytes)\n", path, buf.Len())
	return nil
}

// WriteJSON marshals v and writes it to path, creating parent directories
// as needed. Used for the export file, which this tool never reads back,
// so there is no backup or atomic-replace dance here.
func WriteJSON(path string, v any) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", path, err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// BackupDocument copies the existing config file to a .bak sibling before
// it gets overwritten. A missing source is fine (first run); any other
// failure is fatal because the caller is about to overwrite the original.
func BackupDocument(path string) (string, error) {
	backupPath := path + BackupSuffix

	in, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Debug("[DEBUG] Nothing to back up at %s\n", path)
			return "", nil
		}
		return "", fmt.Errorf("failed to open %s for backup: %w", path, err)
	}
	defer func() {
		if cerr := in.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close %s after backup: %v\n", path, cerr)
		}
	}()

	out, err := os.Create(backupPath)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file %s: %w", backupPath, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("failed to copy %s to %s: %w", path, backupPath, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to close backup file %s: %w", backupPath, err)
	}

	logger.Info("[INFO] Backed up config to %s\n", backupPath)
	return backupPath, nil
}
