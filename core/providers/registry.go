package providers

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/philokalos/promptlens/core/errors"
)

const (
	keyCacheSize = 64
	keyCacheTTL  = 10 * time.Minute
)

// NewAdapter constructs the adapter for a config entry.
func NewAdapter(config Config) (Adapter, error) {
	switch config.Type() {
	case ProviderTypeAnthropic:
		return NewAnthropicAdapter(config)
	case ProviderTypeOpenAI:
		return NewOpenAIAdapter(config)
	case ProviderTypeGoogle:
		return NewGoogleAdapter(config)
	default:
		return nil, errors.New(errors.KindConfiguration, config.Provider,
			fmt.Sprintf("unknown provider %q", config.Provider))
	}
}

// Registry holds constructed adapters and caches key-validation results
// so repeated checks don't burn API calls.
type Registry struct {
	mu       sync.RWMutex
	adapters map[ProviderType]Adapter

	keyCache *expirable.LRU[string, bool]
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		adapters: make(map[ProviderType]Adapter),
		keyCache: expirable.NewLRU[string, bool](keyCacheSize, nil, keyCacheTTL),
	}
}

// Register adds a pre-built adapter.
func (r *Registry) Register(adapter Adapter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.adapters[ProviderType(adapter.Name())] = adapter
}

// RegisterConfigs constructs and registers adapters for every enabled
// entry. The first construction error aborts registration.
func (r *Registry) RegisterConfigs(configs []Config) error {
	for _, config := range EnabledConfigs(configs) {
		adapter, err := NewAdapter(config)
		if err != nil {
			return err
		}
		r.Register(adapter)
	}
	return nil
}

// Get returns the adapter for a provider type, or nil when absent.
func (r *Registry) Get(providerType ProviderType) Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.adapters[providerType]
}

// Adapters returns the registered adapters in no particular order.
func (r *Registry) Adapters() []Adapter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Adapter, 0, len(r.adapters))
	for _, adapter := range r.adapters {
		result = append(result, adapter)
	}
	return result
}

// ValidateKey checks an API key against the provider, caching results
// for ten minutes. Only definitive answers are cached; transient errors
// are returned without caching so a retry hits the API again.
func (r *Registry) ValidateKey(ctx context.Context, providerType ProviderType, apiKey string) (bool, error) {
	adapter := r.Get(providerType)
	if adapter == nil {
		return false, errors.New(errors.KindConfiguration, string(providerType), "provider not registered")
	}
	if strings.TrimSpace(apiKey) == "" {
		return false, errors.New(errors.KindConfiguration, string(providerType), "API key is empty")
	}

	cacheKey := string(providerType) + ":" + hashKey(apiKey)
	if valid, ok := r.keyCache.Get(cacheKey); ok {
		return valid, nil
	}

	valid, err := adapter.ValidateKey(ctx, apiKey)
	if err != nil {
		return false, err
	}

	r.keyCache.Add(cacheKey, valid)
	return valid, nil
}

func hashKey(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:])
}
