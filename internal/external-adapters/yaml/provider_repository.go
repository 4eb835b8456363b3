package yaml

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/ochairo/playport/internal/domain/entities"
)

//go:embed providers.yml
var builtinCatalog []byte

// ProviderRepository implements repositories.ProviderRepository over a parsed catalog
type ProviderRepository struct {
	providers []*entities.Provider
}

// NewProviderRepository loads the built-in catalog
func NewProviderRepository() (*ProviderRepository, error) {
	providers, err := NewProviderParser().Parse(builtinCatalog)
	if err != nil {
		return nil, fmt.Errorf("built-in provider catalog: %w", err)
	}
	return &ProviderRepository{providers: providers}, nil
}

// NewProviderRepositoryFromFile loads a catalog file that replaces the built-in one
func NewProviderRepositoryFromFile(path string) (*ProviderRepository, error) {
	providers, err := NewProviderParser().ParseFile(path)
	if err != nil {
		return nil, err
	}
	return &ProviderRepository{providers: providers}, nil
}

// GetProvider finds a provider by id or display name, ignoring case
func (r *ProviderRepository) GetProvider(_ context.Context, id string) (*entities.Provider, error) {
	key := strings.TrimSpace(id)
	for _, p := range r.providers {
		if strings.EqualFold(string(p.ID), key) || strings.EqualFold(p.Name, key) {
			return p, nil
		}
	}
	return nil, entities.NewError(entities.KindNotFound, "look up provider",
		fmt.Errorf("unknown software %q", id))
}

// ListProviders returns all providers in catalog order
func (r *ProviderRepository) ListProviders(_ context.Context) ([]*entities.Provider, error) {
	out := make([]*entities.Provider, len(r.providers))
	copy(out, r.providers)
	return out, nil
}
