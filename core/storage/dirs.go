// Package storage provides platform-native directory resolution with XDG
// support and the durable analysis history store.
package storage

import (
	"os"
	"path/filepath"
	"sync"
)

// Dirs provides platform-native directory resolution with XDG support.
type Dirs struct {
	Config string // User configuration (config.yaml, API keys)
	Data   string // Persistent data (analysis history)
	Cache  string // Regenerable cache
	State  string // Runtime state (logs)
}

var (
	globalDirs     *Dirs
	globalDirsOnce sync.Once
)

// ResolveDirs returns platform-appropriate directories.
// Results are cached after first call.
func ResolveDirs() *Dirs {
	globalDirsOnce.Do(func() {
		globalDirs = &Dirs{
			Config: resolveDir("XDG_CONFIG_HOME", platformConfigDefault()),
			Data:   resolveDir("XDG_DATA_HOME", platformDataDefault()),
			Cache:  resolveDir("XDG_CACHE_HOME", platformCacheDefault()),
			State:  resolveDir("XDG_STATE_HOME", platformStateDefault()),
		}
	})
	return globalDirs
}

func resolveDir(envVar, fallback string) string {
	if dir := os.Getenv(envVar); dir != "" {
		return filepath.Join(dir, "promptlens")
	}
	return fallback
}

// ConfigDir returns the config subdirectory path.
func (d *Dirs) ConfigDir(subpath ...string) string {
	return filepath.Join(append([]string{d.Config}, subpath...)...)
}

// DataDir returns the data subdirectory path.
func (d *Dirs) DataDir(subpath ...string) string {
	return filepath.Join(append([]string{d.Data}, subpath...)...)
}

// ConfigFile returns the default config file path.
func (d *Dirs) ConfigFile() string {
	return d.ConfigDir("config.yaml")
}

// HistoryDB returns the default analysis history database path.
func (d *Dirs) HistoryDB() string {
	return d.DataDir("history.db")
}

// EnsureDir creates a directory with the specified permissions if it
// doesn't exist. A zero perm uses 0700.
func EnsureDir(path string, perm os.FileMode) error {
	if perm == 0 {
		perm = 0700
	}
	return os.MkdirAll(path, perm)
}
