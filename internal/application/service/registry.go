package service

import (
	"sort"

	"taskrunner/internal/application/port/output"
)

var _ output.ProviderRegistry = (*ProviderRegistryImpl)(nil)

// ProviderRegistryImpl is populated once at wiring time and read-only
// afterwards.
type ProviderRegistryImpl struct {
	providers map[string]output.ProviderPort
}

func NewProviderRegistry() *ProviderRegistryImpl {
	return &ProviderRegistryImpl{
		providers: make(map[string]output.ProviderPort),
	}
}

func (r *ProviderRegistryImpl) Register(provider output.ProviderPort) {
	r.providers[provider.Name()] = provider
}

func (r *ProviderRegistryImpl) Get(name string) (output.ProviderPort, bool) {
	provider, ok := r.providers[name]
	return provider, ok
}

func (r *ProviderRegistryImpl) Names() []string {
	result := make([]string, 0, len(r.providers))
	for name := range r.providers {
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}
