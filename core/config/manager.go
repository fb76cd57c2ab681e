package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"unsafe"

	"gopkg.in/yaml.v3"

	"github.com/philokalos/promptlens/core/providers"
	"github.com/philokalos/promptlens/core/storage"
)

// Manager loads and holds the active configuration. Reads go through an
// atomic pointer so callers never see a half-applied reload.
type Manager struct {
	configPtr unsafe.Pointer
	dirs      *storage.Dirs
}

// Config is the full user-facing configuration.
type Config struct {
	Providers []providers.Config `yaml:"providers"`
	Engine    EngineConfig       `yaml:"engine"`
	History   HistoryConfig      `yaml:"history"`
}

// EngineConfig tunes the analysis pipeline.
type EngineConfig struct {
	// Ensemble samples the primary provider at several temperatures and
	// keeps the best candidate.
	Ensemble bool `yaml:"ensemble"`

	// SessionTTL bounds how long cached session context stays usable.
	SessionTTL string `yaml:"session_ttl"`
}

// HistoryConfig controls the durable analysis history.
type HistoryConfig struct {
	Enabled       bool   `yaml:"enabled"`
	Path          string `yaml:"path,omitempty"`
	RetentionDays int    `yaml:"retention_days"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Ensemble:   false,
			SessionTTL: "10m",
		},
		History: HistoryConfig{
			Enabled:       true,
			RetentionDays: 90,
		},
	}
}

// NewManager creates a manager rooted at the given directories.
func NewManager(dirs *storage.Dirs) *Manager {
	m := &Manager{dirs: dirs}
	atomic.StorePointer(&m.configPtr, unsafe.Pointer(DefaultConfig()))
	return m
}

// Get returns the active configuration.
func (m *Manager) Get() *Config {
	return (*Config)(atomic.LoadPointer(&m.configPtr))
}

// Load reads the user config file, applies environment overrides, and
// swaps the result in. A missing file is not an error.
func (m *Manager) Load() error {
	cfg := DefaultConfig()

	if err := m.loadYAMLFile(m.dirs.ConfigFile(), cfg); err != nil {
		return fmt.Errorf("user config: %w", err)
	}

	applyEnvironment(cfg)

	atomic.StorePointer(&m.configPtr, unsafe.Pointer(cfg))
	return nil
}

// Save writes the active configuration back to the user config file.
func (m *Manager) Save() error {
	path := m.dirs.ConfigFile()
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(m.Get())
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// 0600: the file can hold API keys.
	return os.WriteFile(path, data, 0600)
}

// SetProviders replaces the provider list and swaps the config in.
func (m *Manager) SetProviders(configs []providers.Config) {
	cfg := *m.Get()
	cfg.Providers = configs
	atomic.StorePointer(&m.configPtr, unsafe.Pointer(&cfg))
}

func (m *Manager) loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

// applyEnvironment layers well-known environment variables over the file
// config. A provider key in the environment enables that provider even
// when the file never mentions it.
func applyEnvironment(cfg *Config) {
	envKeys := []struct {
		provider string
		key      string
	}{
		{"anthropic", os.Getenv("ANTHROPIC_API_KEY")},
		{"openai", os.Getenv("OPENAI_API_KEY")},
		{"google", os.Getenv("GEMINI_API_KEY")},
	}

	for _, entry := range envKeys {
		provider, key := entry.provider, entry.key
		if key == "" {
			continue
		}
		if existing := findProvider(cfg.Providers, provider); existing != nil {
			if existing.APIKey == "" {
				existing.APIKey = key
			}
			continue
		}
		cfg.Providers = append(cfg.Providers, providers.Config{
			Provider: provider,
			APIKey:   key,
			Enabled:  true,
			Priority: len(cfg.Providers) + 1,
		})
	}

	if v := os.Getenv("PROMPTLENS_ENSEMBLE"); v != "" {
		cfg.Engine.Ensemble = strings.EqualFold(v, "true") || v == "1"
	}
	if v := os.Getenv("PROMPTLENS_HISTORY_DB"); v != "" {
		cfg.History.Path = v
	}
}

func findProvider(configs []providers.Config, provider string) *providers.Config {
	target := providers.Config{Provider: provider}.Type()
	for i := range configs {
		if configs[i].Type() == target {
			return &configs[i]
		}
	}
	return nil
}

// HistoryPath resolves the history database location, falling back to the
// platform data directory.
func (m *Manager) HistoryPath() string {
	if path := m.Get().History.Path; path != "" {
		return path
	}
	return m.dirs.HistoryDB()
}
