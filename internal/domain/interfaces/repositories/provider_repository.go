// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/playport/internal/domain/entities"
)

// ProviderRepository defines the interface for accessing the provider catalog
type ProviderRepository interface {
	// GetProvider retrieves a provider by ID (case-insensitive, display names accepted)
	GetProvider(ctx context.Context, id string) (*entities.Provider, error)

	// ListProviders returns all providers in catalog order
	ListProviders(ctx context.Context) ([]*entities.Provider, error)
}
