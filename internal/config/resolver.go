package config

import (
	"bufio"
	"log/slog"
	"os"
	"strings"

	"ytmdl/internal/logging"
)

// Resolver layers config-file overrides over built-in defaults.
//
// Each Resolve call re-reads the file from the top; nothing is cached between
// calls. The engine is meant for a single-threaded CLI session that asks for
// each key once.
type Resolver struct {
	dirs     Dirs
	defaults Defaults
	store    *Store
	logger   *slog.Logger
}

// New builds a resolver against the platform default directories.
func New(logger *slog.Logger) *Resolver {
	return NewWithDirs(DefaultDirs(), logger)
}

// NewWithDirs builds a resolver against injected directories. Defaults are
// computed here, so construction performs music-directory discovery.
func NewWithDirs(dirs Dirs, logger *slog.Logger) *Resolver {
	logger = logging.NewComponentLogger(logger, "config")
	defaults := NewDefaults(dirs)
	return &Resolver{
		dirs:     dirs,
		defaults: defaults,
		store:    NewStore(defaults, logger),
		logger:   logger,
	}
}

// Defaults exposes the built-in defaults backing this resolver.
func (r *Resolver) Defaults() Defaults {
	return r.defaults
}

// Store exposes the config file store backing this resolver.
func (r *Resolver) Store() *Store {
	return r.store
}

// Resolve returns the effective value for key: the first valid override in
// the config file, or the built-in default. It never fails; setup and read
// problems are logged and the default returned.
func (r *Resolver) Resolve(key string) string {
	value, _ := r.ResolveDetail(key)
	return value
}

// ResolveDetail is Resolve plus a report of whether the value came from the
// config file rather than the built-in defaults.
func (r *Resolver) ResolveDetail(key string) (string, bool) {
	if !r.store.Exists() {
		// A freshly written template carries no overrides, so the scan is
		// skipped after repair.
		if err := r.store.EnsureTemplate(); err != nil {
			r.logger.Warn("config setup failed, using built-in defaults", logging.Error(err))
		}
		return r.defaults.Value(key), false
	}

	file, err := os.Open(r.store.ConfigPath())
	if err != nil {
		r.logger.Warn("cannot read config file, using built-in defaults", logging.Error(err))
		return r.defaults.Value(key), false
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		assign, ok := parseAssignment(scanner.Text())
		if !ok || assign.key != key {
			continue
		}
		if r.Valid(key, assign.value) {
			return assign.value, true
		}
		if assign.value != "" {
			r.logger.Warn("ignoring invalid config override",
				logging.String("key", key),
				logging.String("value", assign.value))
		}
		// First match wins even when invalid; later duplicates of the key are
		// not considered.
		return r.defaults.Value(key), false
	}

	return r.defaults.Value(key), false
}

// Providers returns the resolved metadata provider list, split and trimmed
// for the downloader.
func (r *Resolver) Providers() []string {
	parts := strings.Split(r.Resolve(KeyMetadataProviders), ",")
	providers := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			providers = append(providers, trimmed)
		}
	}
	return providers
}
