package gateways

import (
	"context"

	"github.com/ochairo/playport/internal/domain/entities"
	"github.com/ochairo/playport/internal/domain/interfaces"
	"github.com/ochairo/playport/internal/domain/interfaces/gateways"
	"github.com/ochairo/playport/internal/domain/services"
)

// VersionCatalog produces the newest-first version listing of a provider.
// Listing never fails: any network or parse problem, or an empty result,
// yields the synthetic fallback list.
type VersionCatalog struct {
	lister gateways.VersionLister
	logger interfaces.Logger
}

// NewVersionCatalog creates a new version catalog
func NewVersionCatalog(lister gateways.VersionLister, logger interfaces.Logger) *VersionCatalog {
	return &VersionCatalog{
		lister: lister,
		logger: interfaces.OrNoOp(logger),
	}
}

// ListVersions returns at most MaxVersions versions, newest first, never empty
func (c *VersionCatalog) ListVersions(ctx context.Context, p *entities.Provider) entities.VersionList {
	raw, err := c.lister.ListVersions(ctx, p)
	if err != nil {
		c.logger.Warn("version listing failed, using fallback list",
			interfaces.F("provider", p.ID),
			interfaces.F("url", p.Catalog.URL),
			interfaces.F("error", err))
		return services.FallbackList(p.ID)
	}

	versions := services.Normalize(raw)
	if len(versions) == 0 {
		c.logger.Warn("version listing was empty, using fallback list",
			interfaces.F("provider", p.ID),
			interfaces.F("url", p.Catalog.URL))
		return services.FallbackList(p.ID)
	}

	c.logger.Debug("listed versions",
		interfaces.F("provider", p.ID),
		interfaces.F("count", len(versions)),
		interfaces.F("newest", versions[0]))

	return entities.VersionList{
		Provider: p.ID,
		Versions: versions,
		Source:   entities.SourceLive,
	}
}
