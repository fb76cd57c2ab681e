package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philokalos/promptlens/core/providers"
	"github.com/philokalos/promptlens/core/storage"
)

func testDirs(t *testing.T) *storage.Dirs {
	t.Helper()
	root := t.TempDir()
	return &storage.Dirs{
		Config: filepath.Join(root, "config"),
		Data:   filepath.Join(root, "data"),
		Cache:  filepath.Join(root, "cache"),
		State:  filepath.Join(root, "state"),
	}
}

func clearProviderEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("PROMPTLENS_ENSEMBLE", "")
	t.Setenv("PROMPTLENS_HISTORY_DB", "")
}

func TestManager_DefaultsWhenNoFile(t *testing.T) {
	clearProviderEnv(t)
	m := NewManager(testDirs(t))

	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Empty(t, cfg.Providers)
	assert.False(t, cfg.Engine.Ensemble)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 90, cfg.History.RetentionDays)
}

func TestManager_LoadsYAMLFile(t *testing.T) {
	clearProviderEnv(t)
	dirs := testDirs(t)

	require.NoError(t, os.MkdirAll(dirs.Config, 0700))
	yaml := `
providers:
  - provider: anthropic
    apiKey: sk-test
    enabled: true
    priority: 1
engine:
  ensemble: true
`
	require.NoError(t, os.WriteFile(dirs.ConfigFile(), []byte(yaml), 0600))

	m := NewManager(dirs)
	require.NoError(t, m.Load())

	cfg := m.Get()
	require.Len(t, cfg.Providers, 1)
	assert.Equal(t, "anthropic", cfg.Providers[0].Provider)
	assert.Equal(t, "sk-test", cfg.Providers[0].APIKey)
	assert.True(t, cfg.Engine.Ensemble)
}

func TestManager_EnvAddsProvider(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-env")

	m := NewManager(testDirs(t))
	require.NoError(t, m.Load())

	cfg := m.Get()
	require.Len(t, cfg.Providers, 1)
	assert.Equal(t, providers.ProviderTypeOpenAI, cfg.Providers[0].Type())
	assert.Equal(t, "sk-env", cfg.Providers[0].APIKey)
	assert.True(t, cfg.Providers[0].Enabled)
}

func TestManager_EnvFillsMissingKeyOnly(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("ANTHROPIC_API_KEY", "sk-env")
	dirs := testDirs(t)

	require.NoError(t, os.MkdirAll(dirs.Config, 0700))
	yaml := `
providers:
  - provider: claude
    apiKey: sk-file
    enabled: true
`
	require.NoError(t, os.WriteFile(dirs.ConfigFile(), []byte(yaml), 0600))

	m := NewManager(dirs)
	require.NoError(t, m.Load())

	cfg := m.Get()
	require.Len(t, cfg.Providers, 1)
	// The file key wins; the env var only fills a blank.
	assert.Equal(t, "sk-file", cfg.Providers[0].APIKey)
}

func TestManager_SaveRoundTrip(t *testing.T) {
	clearProviderEnv(t)
	dirs := testDirs(t)

	m := NewManager(dirs)
	m.SetProviders([]providers.Config{
		{Provider: "google", APIKey: "g-key", Enabled: true, Priority: 1},
	})
	require.NoError(t, m.Save())

	reloaded := NewManager(dirs)
	require.NoError(t, reloaded.Load())
	require.Len(t, reloaded.Get().Providers, 1)
	assert.Equal(t, "g-key", reloaded.Get().Providers[0].APIKey)
}

func TestManager_HistoryPath(t *testing.T) {
	clearProviderEnv(t)
	dirs := testDirs(t)
	m := NewManager(dirs)

	assert.Equal(t, dirs.HistoryDB(), m.HistoryPath())

	t.Setenv("PROMPTLENS_HISTORY_DB", "/custom/history.db")
	require.NoError(t, m.Load())
	assert.Equal(t, "/custom/history.db", m.HistoryPath())
}
