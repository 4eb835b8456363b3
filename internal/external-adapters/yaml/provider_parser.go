// Package yaml provides the YAML provider catalog and configuration file adapters.
package yaml

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ochairo/playport/internal/domain/entities"
)

// yamlCatalog represents the raw YAML structure of a provider catalog file
type yamlCatalog struct {
	Providers []yamlProvider `yaml:"providers"`
}

type yamlProvider struct {
	ID        string         `yaml:"id"`
	Name      string         `yaml:"name"`
	Catalog   yamlListing    `yaml:"catalog"`
	Resolve   yamlResolve    `yaml:"resolve"`
	Installer *yamlInstaller `yaml:"installer"`
	Launch    yamlLaunch     `yaml:"launch"`
	Signature yamlSignature  `yaml:"signature"`
}

type yamlListing struct {
	Shape       string     `yaml:"shape"`
	URL         string     `yaml:"url"`
	Array       string     `yaml:"array"`
	Field       string     `yaml:"field"`
	Filter      yamlFilter `yaml:"filter"`
	Reverse     bool       `yaml:"reverse"`
	HrefSuffix  string     `yaml:"href_suffix"`
	AssetSuffix string     `yaml:"asset_suffix"`
	StaticLabel string     `yaml:"static_label"`
}

type yamlFilter struct {
	Field string `yaml:"field"`
	Value string `yaml:"value"`
}

type yamlResolve struct {
	Recipe      string `yaml:"recipe"`
	IndexURL    string `yaml:"index_url"`
	DownloadURL string `yaml:"download_url"`
	FileName    string `yaml:"file_name"`
	AssetSuffix string `yaml:"asset_suffix"`
}

type yamlInstaller struct {
	Args                []string   `yaml:"args"`
	RequiresGameVersion bool       `yaml:"requires_game_version"`
	Output              yamlOutput `yaml:"output"`
}

type yamlOutput struct {
	Mode   string `yaml:"mode"`
	Name   string `yaml:"name"`
	Prefix string `yaml:"prefix"`
}

type yamlLaunch struct {
	Kind        string `yaml:"kind"`
	JVMArgsFile string `yaml:"jvm_args_file"`
}

type yamlSignature struct {
	Suffix string `yaml:"suffix"`
}

// ProviderParser parses YAML provider catalogs
type ProviderParser struct{}

// NewProviderParser creates a new YAML parser
func NewProviderParser() *ProviderParser {
	return &ProviderParser{}
}

// ParseFile parses a YAML catalog file into provider entities
func (p *ProviderParser) ParseFile(filePath string) ([]*entities.Provider, error) {
	//nolint:gosec // G304: filePath is the catalog path from configuration
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}

	return p.Parse(data)
}

// Parse parses YAML bytes into provider entities, in file order
func (p *ProviderParser) Parse(data []byte) ([]*entities.Provider, error) {
	var catalog yamlCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(catalog.Providers) == 0 {
		return nil, fmt.Errorf("catalog defines no providers")
	}

	seen := make(map[entities.ProviderID]bool, len(catalog.Providers))
	providers := make([]*entities.Provider, 0, len(catalog.Providers))
	for i := range catalog.Providers {
		provider, err := convertProvider(&catalog.Providers[i])
		if err != nil {
			return nil, fmt.Errorf("provider #%d: %w", i+1, err)
		}
		if seen[provider.ID] {
			return nil, fmt.Errorf("provider %s defined twice", provider.ID)
		}
		seen[provider.ID] = true
		providers = append(providers, provider)
	}

	return providers, nil
}

func convertProvider(yp *yamlProvider) (*entities.Provider, error) {
	id := strings.ToLower(strings.TrimSpace(yp.ID))
	if id == "" {
		return nil, fmt.Errorf("provider must have an id")
	}

	provider := &entities.Provider{
		ID:        entities.ProviderID(id),
		Name:      yp.Name,
		Catalog:   convertListing(yp.Catalog),
		Resolve:   convertResolve(yp.Resolve),
		Launch:    convertLaunch(yp.Launch),
		Signature: entities.SignatureConfig{Suffix: yp.Signature.Suffix},
	}
	if provider.Name == "" {
		provider.Name = id
	}
	if yp.Installer != nil {
		provider.Installer = convertInstaller(yp.Installer)
	}

	if err := validateProvider(provider); err != nil {
		return nil, fmt.Errorf("%s: %w", id, err)
	}
	return provider, nil
}

func convertListing(yl yamlListing) entities.CatalogConfig {
	return entities.CatalogConfig{
		Shape:       entities.ListShape(yl.Shape),
		URL:         yl.URL,
		Array:       yl.Array,
		Field:       yl.Field,
		FilterField: yl.Filter.Field,
		FilterValue: yl.Filter.Value,
		Reverse:     yl.Reverse,
		HrefSuffix:  yl.HrefSuffix,
		AssetSuffix: yl.AssetSuffix,
		StaticLabel: yl.StaticLabel,
	}
}

func convertResolve(yr yamlResolve) entities.ResolveConfig {
	return entities.ResolveConfig{
		Recipe:      entities.ResolveRecipe(yr.Recipe),
		IndexURL:    yr.IndexURL,
		DownloadURL: yr.DownloadURL,
		FileName:    yr.FileName,
		AssetSuffix: yr.AssetSuffix,
	}
}

func convertInstaller(yi *yamlInstaller) *entities.InstallerConfig {
	return &entities.InstallerConfig{
		Args:                yi.Args,
		RequiresGameVersion: yi.RequiresGameVersion,
		Output: entities.OutputConfig{
			Mode:   entities.OutputMode(yi.Output.Mode),
			Name:   yi.Output.Name,
			Prefix: yi.Output.Prefix,
		},
	}
}

func convertLaunch(yl yamlLaunch) entities.LaunchConfig {
	kind := entities.LaunchKind(yl.Kind)
	if kind == "" {
		kind = entities.LaunchJavaArchive
	}
	return entities.LaunchConfig{Kind: kind, JVMArgsFile: yl.JVMArgsFile}
}

// validateProvider checks that every field the declared strategies read is present
func validateProvider(p *entities.Provider) error {
	switch p.Catalog.Shape {
	case entities.ShapeStatic:
		if p.Catalog.StaticLabel == "" {
			return fmt.Errorf("static catalog needs static_label")
		}
	case entities.ShapeRESTJSONList, entities.ShapeRESTJSONObject, entities.ShapeJenkinsJobs,
		entities.ShapeMavenXML, entities.ShapeHTMLListing, entities.ShapeGitHubReleases:
		if p.Catalog.URL == "" {
			return fmt.Errorf("catalog shape %s needs url", p.Catalog.Shape)
		}
	default:
		return fmt.Errorf("unknown catalog shape %q", p.Catalog.Shape)
	}
	if p.Catalog.Shape == entities.ShapeRESTJSONObject && p.Catalog.Array == "" {
		return fmt.Errorf("rest-json-object catalog needs array")
	}
	if p.Catalog.Shape == entities.ShapeGitHubReleases && p.Catalog.AssetSuffix == "" {
		return fmt.Errorf("github-releases catalog needs asset_suffix")
	}

	r := p.Resolve
	switch r.Recipe {
	case entities.RecipeDirectTemplate:
		if r.DownloadURL == "" {
			return fmt.Errorf("direct-template needs download_url")
		}
	case entities.RecipeBuildIndirection, entities.RecipeLatestOfKind, entities.RecipeDynamicInstallerVersion:
		if r.IndexURL == "" || r.DownloadURL == "" {
			return fmt.Errorf("%s needs index_url and download_url", r.Recipe)
		}
	case entities.RecipeReleaseAsset:
		if r.IndexURL == "" || r.AssetSuffix == "" {
			return fmt.Errorf("release-asset needs index_url and asset_suffix")
		}
	case entities.RecipeJenkinsDoubleIndirect, entities.RecipeManifestIndirection:
		if r.IndexURL == "" && p.Catalog.URL == "" {
			return fmt.Errorf("%s needs index_url", r.Recipe)
		}
	default:
		return fmt.Errorf("unknown resolve recipe %q", r.Recipe)
	}

	if p.Installer != nil {
		if len(p.Installer.Args) == 0 {
			return fmt.Errorf("installer needs args")
		}
		switch p.Installer.Output.Mode {
		case entities.OutputFixedName:
			if p.Installer.Output.Name == "" {
				return fmt.Errorf("fixed-name output needs name")
			}
		case entities.OutputLargestJar, entities.OutputReuseDownload:
		default:
			return fmt.Errorf("unknown output mode %q", p.Installer.Output.Mode)
		}
	}

	switch p.Launch.Kind {
	case entities.LaunchJavaArchive, entities.LaunchPHPArchive:
	default:
		return fmt.Errorf("unknown launch kind %q", p.Launch.Kind)
	}

	return nil
}
