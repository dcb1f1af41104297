package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"ytmdl/internal/logging"
)

//go:embed config.sample
var configTemplate string

// Store manages the on-disk config file lifecycle under the ytmdl
// configuration directory.
type Store struct {
	defaults Defaults
	logger   *slog.Logger
}

// NewStore builds a store for the given defaults.
func NewStore(defaults Defaults, logger *slog.Logger) *Store {
	return &Store{
		defaults: defaults,
		logger:   logging.NewComponentLogger(logger, "config"),
	}
}

// ConfigPath returns the full path of the config file.
func (s *Store) ConfigPath() string {
	return filepath.Join(s.defaults.ConfigDir, ConfigFileName)
}

// ConfigDir returns the ytmdl configuration directory.
func (s *Store) ConfigDir() string {
	return s.defaults.ConfigDir
}

// Exists reports whether the config directory holds a file named "config".
func (s *Store) Exists() bool {
	entries, err := os.ReadDir(s.defaults.ConfigDir)
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if entry.Name() == ConfigFileName && !entry.IsDir() {
			return true
		}
	}
	return false
}

// IsFullySetUp reports whether both the config directory and the config file
// exist. Unlike EnsureTemplate it never mutates the filesystem, so the CLI can
// use it to decide whether to prompt first-run setup.
func (s *Store) IsFullySetUp() bool {
	info, err := os.Stat(s.defaults.ConfigDir)
	if err != nil || !info.IsDir() {
		return false
	}
	fileInfo, err := os.Stat(s.ConfigPath())
	return err == nil && fileInfo.Mode().IsRegular()
}

// EnsureTemplate creates the config directory and the scratch directory under
// the music directory when absent, then writes the canonical template to the
// config file. Any previous file content is replaced; this is a repair
// operation, not a merge.
func (s *Store) EnsureTemplate() error {
	if err := os.MkdirAll(s.defaults.ConfigDir, 0o755); err != nil {
		return fmt.Errorf("create config directory %q: %w", s.defaults.ConfigDir, err)
	}
	if err := os.MkdirAll(s.defaults.SongTempDir, 0o755); err != nil {
		return fmt.Errorf("create temp directory %q: %w", s.defaults.SongTempDir, err)
	}
	if err := os.WriteFile(s.ConfigPath(), []byte(configTemplate), 0o644); err != nil {
		return fmt.Errorf("write config template: %w", err)
	}
	s.logger.Debug("wrote config template", logging.String("path", s.ConfigPath()))
	return nil
}
