package entities

// ProviderID identifies one supported server software distribution
type ProviderID string

// Known providers
const (
	ProviderVanilla    ProviderID = "vanilla"
	ProviderForge      ProviderID = "forge"
	ProviderFabric     ProviderID = "fabric"
	ProviderNeoForge   ProviderID = "neoforge"
	ProviderQuilt      ProviderID = "quilt"
	ProviderSpigot     ProviderID = "spigot"
	ProviderPaper      ProviderID = "paper"
	ProviderPurpur     ProviderID = "purpur"
	ProviderPufferfish ProviderID = "pufferfish"
	ProviderFolia      ProviderID = "folia"
	ProviderBungeeCord ProviderID = "bungeecord"
	ProviderVelocity   ProviderID = "velocity"
	ProviderWaterfall  ProviderID = "waterfall"
	ProviderNukkit     ProviderID = "nukkit"
	ProviderPocketMine ProviderID = "pocketmine-mp"
)

// ListShape declares the upstream response shape of a provider's version listing
type ListShape string

// Supported listing shapes
const (
	ShapeRESTJSONList   ListShape = "rest-json-list"
	ShapeRESTJSONObject ListShape = "rest-json-object"
	ShapeJenkinsJobs    ListShape = "jenkins-jobs"
	ShapeMavenXML       ListShape = "maven-xml"
	ShapeHTMLListing    ListShape = "html-listing"
	ShapeGitHubReleases ListShape = "github-releases"
	ShapeStatic         ListShape = "static"
)

// ResolveRecipe declares how a (provider, version) pair becomes a download URL
type ResolveRecipe string

// Supported resolution recipes
const (
	RecipeDirectTemplate          ResolveRecipe = "direct-template"
	RecipeBuildIndirection        ResolveRecipe = "build-indirection"
	RecipeJenkinsDoubleIndirect   ResolveRecipe = "jenkins-double-indirection"
	RecipeManifestIndirection     ResolveRecipe = "manifest-indirection"
	RecipeLatestOfKind            ResolveRecipe = "latest-of-kind"
	RecipeReleaseAsset            ResolveRecipe = "release-asset"
	RecipeDynamicInstallerVersion ResolveRecipe = "dynamic-installer-version"
)

// OutputMode declares how the server executable is found after an installer ran
type OutputMode string

// Supported post-install discovery modes
const (
	OutputFixedName     OutputMode = "fixed-name"
	OutputLargestJar    OutputMode = "largest-jar"
	OutputReuseDownload OutputMode = "reuse-download"
)

// LaunchKind tells script generation which launch command template to use
type LaunchKind string

// Launch kinds
const (
	// LaunchJavaArchive is an interpreted archive started with `java -jar`
	LaunchJavaArchive LaunchKind = "java-archive"
	// LaunchPHPArchive requires the php script interpreter
	LaunchPHPArchive LaunchKind = "php-archive"
)

// Provider represents one software distribution source from the provider catalog
type Provider struct {
	ID        ProviderID
	Name      string
	Catalog   CatalogConfig
	Resolve   ResolveConfig
	Installer *InstallerConfig // nil for providers that ship the server binary directly
	Launch    LaunchConfig
	Signature SignatureConfig
}

// CatalogConfig represents how the version listing is fetched and read
type CatalogConfig struct {
	Shape       ListShape
	URL         string
	Array       string // key holding the version array; empty when the document root is the array
	Field       string // per-element field to extract; empty when elements are scalars
	FilterField string
	FilterValue string
	Reverse     bool   // upstream is oldest-first
	HrefSuffix  string // html-listing anchors must end with this
	AssetSuffix string // github-releases must carry an asset ending with this
	StaticLabel string
}

// ResolveConfig represents the resolution recipe and its URL templates
type ResolveConfig struct {
	Recipe      ResolveRecipe
	IndexURL    string // secondary lookup endpoint (manifest, build list, job list, release by tag)
	DownloadURL string
	FileName    string
	AssetSuffix string
}

// InstallerConfig represents how a vendor installer is run and its output discovered
type InstallerConfig struct {
	Args                []string // placeholders: {installer} {version} {game_version} {target_dir}
	RequiresGameVersion bool
	Output              OutputConfig
}

// OutputConfig represents post-install discovery of the server executable
type OutputConfig struct {
	Mode   OutputMode
	Name   string // fixed-name
	Prefix string // largest-jar family prefix
}

// LaunchConfig represents how the resulting executable is launched
type LaunchConfig struct {
	Kind        LaunchKind
	JVMArgsFile string // placeholders: {version} {platform}
}

// SignatureConfig represents an optional detached signature published next to the artifact
type SignatureConfig struct {
	Suffix string // e.g. ".asc"
}

// IsInstallerBased reports whether the downloaded artifact is an installer package
func (p *Provider) IsInstallerBased() bool {
	return p.Installer != nil
}

// RequiresGameVersion reports whether acquisition needs a target game version input
func (p *Provider) RequiresGameVersion() bool {
	return p.Installer != nil && p.Installer.RequiresGameVersion
}
