package providers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigType_Aliases(t *testing.T) {
	assert.Equal(t, ProviderTypeAnthropic, Config{Provider: "claude"}.Type())
	assert.Equal(t, ProviderTypeAnthropic, Config{Provider: "Anthropic"}.Type())
	assert.Equal(t, ProviderTypeGoogle, Config{Provider: "gemini"}.Type())
	assert.Equal(t, ProviderTypeOpenAI, Config{Provider: " openai "}.Type())
}

func TestConfigValidate(t *testing.T) {
	err := Config{Provider: "anthropic"}.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "API key")

	assert.Error(t, Config{Provider: "mystery", APIKey: "k"}.Validate())
	assert.NoError(t, Config{Provider: "claude", APIKey: "k"}.Validate())
}

func TestModelOrDefault(t *testing.T) {
	assert.Equal(t, DefaultAnthropicModel, Config{Provider: "anthropic"}.ModelOrDefault())
	assert.Equal(t, DefaultGoogleModel, Config{Provider: "gemini"}.ModelOrDefault())
	assert.Equal(t, "custom-model", Config{Provider: "openai", Model: "custom-model"}.ModelOrDefault())
}

func TestEnabledConfigs_SortsByPriority(t *testing.T) {
	configs := []Config{
		{Provider: "openai", APIKey: "k", Enabled: true, Priority: 2},
		{Provider: "google", APIKey: "k", Enabled: false, Priority: 0},
		{Provider: "anthropic", APIKey: "k", Enabled: true, Priority: 1},
	}

	enabled := EnabledConfigs(configs)
	require.Len(t, enabled, 2)
	assert.Equal(t, "anthropic", enabled[0].Provider)
	assert.Equal(t, "openai", enabled[1].Provider)
}

func TestEnabledConfigs_DropsBlankKeys(t *testing.T) {
	configs := []Config{
		{Provider: "anthropic", APIKey: "   ", Enabled: true, Priority: 1},
		{Provider: "openai", APIKey: "", Enabled: true, Priority: 2},
		{Provider: "google", APIKey: "k", Enabled: true, Priority: 3},
	}

	enabled := EnabledConfigs(configs)
	require.Len(t, enabled, 1)
	assert.Equal(t, "google", enabled[0].Provider)
}

func TestEnabledConfigs_StableOnEqualPriority(t *testing.T) {
	configs := []Config{
		{Provider: "openai", APIKey: "k", Enabled: true, Priority: 1},
		{Provider: "anthropic", APIKey: "k", Enabled: true, Priority: 1},
	}

	enabled := EnabledConfigs(configs)
	require.Len(t, enabled, 2)
	assert.Equal(t, "openai", enabled[0].Provider)
}

func TestPrimaryProvider(t *testing.T) {
	t.Run("explicit primary wins over priority", func(t *testing.T) {
		configs := []Config{
			{Provider: "anthropic", APIKey: "k", Enabled: true, Priority: 1},
			{Provider: "openai", APIKey: "k", Enabled: true, Priority: 2, Primary: true},
		}
		primary := PrimaryProvider(configs)
		require.NotNil(t, primary)
		assert.Equal(t, "openai", primary.Provider)
	})

	t.Run("lowest priority when no primary flag", func(t *testing.T) {
		configs := []Config{
			{Provider: "openai", APIKey: "k", Enabled: true, Priority: 3},
			{Provider: "anthropic", APIKey: "k", Enabled: true, Priority: 1},
		}
		primary := PrimaryProvider(configs)
		require.NotNil(t, primary)
		assert.Equal(t, "anthropic", primary.Provider)
	})

	t.Run("disabled primary is ignored", func(t *testing.T) {
		configs := []Config{
			{Provider: "openai", APIKey: "k", Enabled: false, Primary: true},
			{Provider: "anthropic", APIKey: "k", Enabled: true, Priority: 5},
		}
		primary := PrimaryProvider(configs)
		require.NotNil(t, primary)
		assert.Equal(t, "anthropic", primary.Provider)
	})

	t.Run("nil when nothing enabled", func(t *testing.T) {
		assert.Nil(t, PrimaryProvider([]Config{{Provider: "openai"}}))
		assert.Nil(t, PrimaryProvider(nil))
	})
}
