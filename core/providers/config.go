package providers

import (
	"fmt"
	"sort"
	"strings"
)

// ProviderType identifies a supported rewrite backend.
type ProviderType string

const (
	ProviderTypeAnthropic ProviderType = "anthropic"
	ProviderTypeOpenAI    ProviderType = "openai"
	ProviderTypeGoogle    ProviderType = "google"
)

// Default model per provider. Rewrites are small, so the cheap tiers are fine.
const (
	DefaultAnthropicModel = "claude-haiku-4-5-20251001"
	DefaultOpenAIModel    = "gpt-5.2-codex"
	DefaultGoogleModel    = "gemini-2.5-flash"
)

const defaultMaxTokens = 2048

// Config describes one configured provider entry.
type Config struct {
	Provider string `yaml:"provider" json:"provider"`
	APIKey   string `yaml:"apiKey" json:"apiKey"`
	Model    string `yaml:"model,omitempty" json:"model,omitempty"`
	Enabled  bool   `yaml:"enabled" json:"enabled"`
	Primary  bool   `yaml:"primary,omitempty" json:"primary,omitempty"`

	// Priority orders the fallback chain; lower runs first.
	Priority int `yaml:"priority" json:"priority"`
}

// Type normalizes the provider name. "claude" is accepted as an alias
// for anthropic, "gemini" for google.
func (c Config) Type() ProviderType {
	switch strings.ToLower(strings.TrimSpace(c.Provider)) {
	case "anthropic", "claude":
		return ProviderTypeAnthropic
	case "openai":
		return ProviderTypeOpenAI
	case "google", "gemini":
		return ProviderTypeGoogle
	default:
		return ProviderType(strings.ToLower(strings.TrimSpace(c.Provider)))
	}
}

// Validate checks that the entry can be turned into a working adapter.
func (c Config) Validate() error {
	switch c.Type() {
	case ProviderTypeAnthropic, ProviderTypeOpenAI, ProviderTypeGoogle:
	default:
		return fmt.Errorf("unknown provider %q", c.Provider)
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return fmt.Errorf("provider %s: API key is required", c.Type())
	}
	return nil
}

// ModelOrDefault returns the configured model, falling back to the
// provider's default.
func (c Config) ModelOrDefault() string {
	if c.Model != "" {
		return c.Model
	}
	switch c.Type() {
	case ProviderTypeAnthropic:
		return DefaultAnthropicModel
	case ProviderTypeOpenAI:
		return DefaultOpenAIModel
	case ProviderTypeGoogle:
		return DefaultGoogleModel
	}
	return ""
}

// EnabledConfigs filters to enabled entries with a usable API key and
// orders them by priority. The sort is stable so entries with equal
// priority keep their input order.
func EnabledConfigs(configs []Config) []Config {
	enabled := make([]Config, 0, len(configs))
	for _, c := range configs {
		if c.Enabled && strings.TrimSpace(c.APIKey) != "" {
			enabled = append(enabled, c)
		}
	}
	sort.SliceStable(enabled, func(i, j int) bool {
		return enabled[i].Priority < enabled[j].Priority
	})
	return enabled
}

// PrimaryProvider picks the entry to try first: a primary-flagged enabled
// entry if one exists, otherwise the enabled entry with the lowest priority.
// Returns nil when nothing is enabled.
func PrimaryProvider(configs []Config) *Config {
	enabled := EnabledConfigs(configs)
	if len(enabled) == 0 {
		return nil
	}
	for i := range enabled {
		if enabled[i].Primary {
			return &enabled[i]
		}
	}
	return &enabled[0]
}
