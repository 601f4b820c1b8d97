package syncer

import (
	"errors"
	"fmt"

	"chatbox-mcp-sync/internal/config"
	"chatbox-mcp-sync/internal/logger"
	"chatbox-mcp-sync/internal/modelscope"
)

// Fetcher supplies the remote descriptor list. Satisfied by
// *modelscope.Client; tests substitute a stub.
type Fetcher interface {
	FetchServices() ([]modelscope.Service, error)
}

// Options configures one sync run. All values are resolved by the caller
// (flags, environment, settings file) before the Syncer is built; nothing
// in here is read ad hoc during the merge.
type Options struct {
	ConfigPath string // Chatbox config.json location
	Backup     bool   // Copy the config to a .bak sibling before writing
}

// Syncer drives one full fetch -> resolve -> merge -> persist cycle.
//
// A Syncer is single-threaded and makes exactly one API call per run.
// Two concurrent runs against the same config path can interleave their
// load and write undetected; serializing runs per config file is the
// caller's responsibility.
type Syncer struct {
	fetcher Fetcher
	opts    Options
}

// New returns a Syncer using the given fetcher.
func New(fetcher Fetcher, opts Options) *Syncer {
	return &Syncer{fetcher: fetcher, opts: opts}
}

// ErrNoServers is returned when the remote list yields no usable
// descriptors at all, so there is nothing to merge or export.
var ErrNoServers = errors.New("no valid MCP servers in API response")

// Run executes one sync against the configured Chatbox config file.
//
// The merge itself never removes entries and never touches an entry's id
// or enabled flag, so a run is safe against a config the user has edited.
// When the merge changes nothing the file is not rewritten at all, which
// also skips the backup.
func (s *Syncer) Run() error {
	resolved, err := s.fetchResolved()
	if err != nil {
		return err
	}

	logger.Info("[INFO] Loading config file...\n")
	doc, err := config.LoadDocument(s.opts.ConfigPath)
	if err != nil {
		return err
	}

	stats, err := Merge(doc, resolved)
	if err != nil {
		return fmt.Errorf("cannot merge into %s: %w", s.opts.ConfigPath, err)
	}

	if !stats.Changed() {
		logger.Info("[INFO] Config already up to date, nothing to write\n")
		return nil
	}

	if s.opts.Backup {
		if _, err := config.BackupDocument(s.opts.ConfigPath); err != nil {
			return err
		}
	}
	if err := config.SaveDocument(s.opts.ConfigPath, doc); err != nil {
		return err
	}

	logger.Info("[INFO] Sync complete: %d updated, %d added\n", stats.Updated, stats.Added)
	logger.Info("[INFO] Restart Chatbox to pick up the new configuration\n")
	return nil
}

// Export fetches and resolves the same descriptor set a sync would use,
// projects it to the standalone mcp.json shape, and writes it to
// outputPath. The local Chatbox config is not involved.
func (s *Syncer) Export(outputPath string) error {
	resolved, err := s.fetchResolved()
	if err != nil {
		return err
	}

	if err := config.WriteJSON(outputPath, Project(resolved)); err != nil {
		return err
	}
	logger.Info("[INFO] Exported %d servers to %s\n", len(resolved), outputPath)
	return nil
}

// fetchResolved performs the API call and resolves the batch, reporting
// skipped descriptors as warnings. Skips are non-fatal; an entirely
// unusable batch is.
func (s *Syncer) fetchResolved() ([]Resolved, error) {
	logger.Info("[INFO] Calling ModelScope API...\n")
	services, err := s.fetcher.FetchServices()
	if err != nil {
		return nil, err
	}

	resolved, skipped := ResolveAll(services)
	for _, skip := range skipped {
		logger.Warn("[WARN] %v\n", skip)
	}
	if len(resolved) == 0 {
		return nil, ErrNoServers
	}
	logger.Debug("[DEBUG] Resolved %d descriptors (%d skipped)\n", len(resolved), len(skipped))
	return resolved, nil
}
