package gateways

import (
	"context"
	"fmt"
	"strings"

	"github.com/ochairo/playport/internal/domain/entities"
	"github.com/ochairo/playport/internal/domain/interfaces/gateways"
)

// StrategyRegistry maps the listing shape, resolution recipe and output mode a
// provider declares to the code implementing them. It satisfies the
// VersionLister, ArtifactResolver and OutputDiscoverer gateways by dispatch.
type StrategyRegistry struct {
	listers     map[entities.ListShape]gateways.VersionLister
	resolvers   map[entities.ResolveRecipe]gateways.ArtifactResolver
	discoverers map[entities.OutputMode]gateways.OutputDiscoverer
}

// NewStrategyRegistry creates a registry with every built-in strategy registered
func NewStrategyRegistry(client *MetadataClient) *StrategyRegistry {
	r := &StrategyRegistry{
		listers:     make(map[entities.ListShape]gateways.VersionLister),
		resolvers:   make(map[entities.ResolveRecipe]gateways.ArtifactResolver),
		discoverers: make(map[entities.OutputMode]gateways.OutputDiscoverer),
	}

	r.RegisterLister(entities.ShapeRESTJSONList, &restJSONListLister{client: client})
	r.RegisterLister(entities.ShapeRESTJSONObject, &restJSONObjectLister{client: client})
	r.RegisterLister(entities.ShapeJenkinsJobs, &jenkinsJobsLister{client: client})
	r.RegisterLister(entities.ShapeMavenXML, &mavenXMLLister{client: client})
	r.RegisterLister(entities.ShapeHTMLListing, &htmlListingLister{client: client})
	r.RegisterLister(entities.ShapeGitHubReleases, &githubReleasesLister{client: client})
	r.RegisterLister(entities.ShapeStatic, staticLister{})

	r.RegisterResolver(entities.RecipeDirectTemplate, directTemplateResolver{})
	r.RegisterResolver(entities.RecipeBuildIndirection, &buildIndirectionResolver{client: client})
	r.RegisterResolver(entities.RecipeJenkinsDoubleIndirect, &jenkinsDoubleResolver{client: client})
	r.RegisterResolver(entities.RecipeManifestIndirection, &manifestIndirectionResolver{client: client})
	r.RegisterResolver(entities.RecipeLatestOfKind, &latestOfKindResolver{client: client})
	r.RegisterResolver(entities.RecipeReleaseAsset, &releaseAssetResolver{client: client})
	r.RegisterResolver(entities.RecipeDynamicInstallerVersion, &dynamicInstallerResolver{client: client})

	r.RegisterDiscoverer(entities.OutputFixedName, NewFixedNameDiscoverer())
	r.RegisterDiscoverer(entities.OutputLargestJar, NewLargestJarDiscoverer())
	r.RegisterDiscoverer(entities.OutputReuseDownload, NewReuseDownloadDiscoverer())

	return r
}

// RegisterLister sets the lister for a listing shape, replacing any previous one
func (r *StrategyRegistry) RegisterLister(shape entities.ListShape, l gateways.VersionLister) {
	r.listers[shape] = l
}

// RegisterResolver sets the resolver for a recipe, replacing any previous one
func (r *StrategyRegistry) RegisterResolver(recipe entities.ResolveRecipe, res gateways.ArtifactResolver) {
	r.resolvers[recipe] = res
}

// RegisterDiscoverer sets the discoverer for an output mode, replacing any previous one
func (r *StrategyRegistry) RegisterDiscoverer(mode entities.OutputMode, d gateways.OutputDiscoverer) {
	r.discoverers[mode] = d
}

// Supports reports whether every strategy the provider declares is registered
func (r *StrategyRegistry) Supports(p *entities.Provider) error {
	if _, ok := r.listers[p.Catalog.Shape]; !ok {
		return fmt.Errorf("provider %s: unsupported listing shape %q", p.ID, p.Catalog.Shape)
	}
	if _, ok := r.resolvers[p.Resolve.Recipe]; !ok {
		return fmt.Errorf("provider %s: unsupported resolve recipe %q", p.ID, p.Resolve.Recipe)
	}
	if p.Installer != nil {
		if _, ok := r.discoverers[p.Installer.Output.Mode]; !ok {
			return fmt.Errorf("provider %s: unsupported output mode %q", p.ID, p.Installer.Output.Mode)
		}
	}
	return nil
}

// ListVersions dispatches to the lister for the provider's listing shape
func (r *StrategyRegistry) ListVersions(ctx context.Context, p *entities.Provider) ([]string, error) {
	l, ok := r.listers[p.Catalog.Shape]
	if !ok {
		return nil, entities.NewError(entities.KindParse, "list versions", fmt.Errorf("unsupported listing shape %q", p.Catalog.Shape))
	}
	return l.ListVersions(ctx, p)
}

// Resolve dispatches to the resolver for the provider's recipe and attaches the
// signature URL when the provider publishes one
func (r *StrategyRegistry) Resolve(ctx context.Context, p *entities.Provider, req *entities.AcquisitionRequest) (*entities.ArtifactLocation, error) {
	res, ok := r.resolvers[p.Resolve.Recipe]
	if !ok {
		return nil, entities.WithContext(
			entities.NewError(entities.KindParse, "resolve", fmt.Errorf("unsupported resolve recipe %q", p.Resolve.Recipe)),
			p.ID, req.Version)
	}

	version := strings.TrimSpace(req.Version)
	if version == "" {
		return nil, entities.WithContext(
			entities.NewError(entities.KindNotFound, "resolve", fmt.Errorf("no version requested")),
			p.ID, "")
	}
	if p.Catalog.Shape == entities.ShapeStatic && version != p.Catalog.StaticLabel {
		return nil, entities.WithContext(
			entities.NewError(entities.KindNotFound, "resolve", fmt.Errorf("only %q is offered", p.Catalog.StaticLabel)),
			p.ID, version)
	}

	scoped := *req
	scoped.Version = version
	loc, err := res.Resolve(ctx, p, &scoped)
	if err != nil {
		return nil, entities.WithContext(err, p.ID, version)
	}
	if p.Signature.Suffix != "" && loc.SignatureURL == "" {
		loc.SignatureURL = loc.DownloadURL + p.Signature.Suffix
	}
	return loc, nil
}

// Discover dispatches to the discoverer for the provider's output mode
func (r *StrategyRegistry) Discover(p *entities.Provider, targetDir, downloadedPath string) (*entities.InstallationResult, error) {
	if p.Installer == nil {
		return nil, entities.NewError(entities.KindOutputDiscovery, "discover output", fmt.Errorf("provider %s has no installer", p.ID))
	}
	d, ok := r.discoverers[p.Installer.Output.Mode]
	if !ok {
		return nil, entities.NewError(entities.KindOutputDiscovery, "discover output", fmt.Errorf("unsupported output mode %q", p.Installer.Output.Mode))
	}
	return d.Discover(p, targetDir, downloadedPath)
}
