package gateways

import (
	"context"
	"fmt"
	"strings"

	"github.com/ochairo/playport/internal/domain/entities"
)

// directTemplateResolver substitutes the version into a URL template without any network call
type directTemplateResolver struct{}

func (directTemplateResolver) Resolve(_ context.Context, p *entities.Provider, req *entities.AcquisitionRequest) (*entities.ArtifactLocation, error) {
	vars := map[string]string{"version": req.Version}
	return locationFor(p, expandURL(p.Resolve.DownloadURL, vars), vars)
}

// buildIndirectionResolver looks up the build list of a version and embeds the
// last (newest) build into the URL (PaperMC projects)
type buildIndirectionResolver struct {
	client *MetadataClient
}

type buildList struct {
	Builds []interface{} `json:"builds"`
}

func (r *buildIndirectionResolver) Resolve(ctx context.Context, p *entities.Provider, req *entities.AcquisitionRequest) (*entities.ArtifactLocation, error) {
	vars := map[string]string{"version": req.Version}

	var builds buildList
	if err := r.client.GetJSON(ctx, expandURL(p.Resolve.IndexURL, vars), &builds); err != nil {
		return nil, err
	}
	if len(builds.Builds) == 0 {
		return nil, entities.NewError(entities.KindNotFound, "look up builds", fmt.Errorf("no builds published for version %s", req.Version))
	}

	build, ok := scalarString(builds.Builds[len(builds.Builds)-1])
	if !ok {
		return nil, entities.NewError(entities.KindParse, "look up builds", fmt.Errorf("unexpected build entry %v", builds.Builds[len(builds.Builds)-1]))
	}
	vars["build"] = build

	return locationFor(p, expandURL(p.Resolve.DownloadURL, vars), vars)
}

// jenkinsDoubleResolver walks job -> newest build -> first artifact (Pufferfish)
type jenkinsDoubleResolver struct {
	client *MetadataClient
}

type jenkinsJobDetail struct {
	Builds []struct {
		URL string `json:"url"`
	} `json:"builds"`
}

type jenkinsBuildDetail struct {
	Artifacts []struct {
		RelativePath string `json:"relativePath"`
	} `json:"artifacts"`
}

func (r *jenkinsDoubleResolver) Resolve(ctx context.Context, p *entities.Provider, req *entities.AcquisitionRequest) (*entities.ArtifactLocation, error) {
	indexURL := p.Resolve.IndexURL
	if indexURL == "" {
		indexURL = p.Catalog.URL
	}

	var view jenkinsView
	if err := r.client.GetJSON(ctx, indexURL, &view); err != nil {
		return nil, err
	}

	var jobURL string
	for _, job := range view.Jobs {
		if job.Name == req.Version {
			jobURL = job.URL
			break
		}
	}
	if jobURL == "" {
		return nil, entities.NewError(entities.KindNotFound, "look up job", fmt.Errorf("version %s is not a published job", req.Version))
	}

	var job jenkinsJobDetail
	if err := r.client.GetJSON(ctx, jenkinsAPI(jobURL), &job); err != nil {
		return nil, err
	}
	if len(job.Builds) == 0 || job.Builds[0].URL == "" {
		return nil, entities.NewError(entities.KindNotFound, "look up latest build", fmt.Errorf("no builds for version %s", req.Version))
	}
	buildURL := strings.TrimRight(job.Builds[0].URL, "/")

	var build jenkinsBuildDetail
	if err := r.client.GetJSON(ctx, jenkinsAPI(buildURL), &build); err != nil {
		return nil, err
	}
	if len(build.Artifacts) == 0 || build.Artifacts[0].RelativePath == "" {
		return nil, entities.NewError(entities.KindNotFound, "look up build artifact", fmt.Errorf("latest build of %s has no artifacts", req.Version))
	}

	vars := map[string]string{"version": req.Version}
	return locationFor(p, buildURL+"/artifact/"+build.Artifacts[0].RelativePath, vars)
}

func jenkinsAPI(u string) string {
	return strings.TrimRight(u, "/") + "/api/json"
}

// manifestIndirectionResolver finds the version's detail document in a manifest
// and reads the server download from it (Vanilla)
type manifestIndirectionResolver struct {
	client *MetadataClient
}

type versionManifest struct {
	Versions []struct {
		ID  string `json:"id"`
		URL string `json:"url"`
	} `json:"versions"`
}

type versionDetail struct {
	Downloads struct {
		Server *struct {
			URL  string `json:"url"`
			SHA1 string `json:"sha1"`
		} `json:"server"`
	} `json:"downloads"`
}

func (r *manifestIndirectionResolver) Resolve(ctx context.Context, p *entities.Provider, req *entities.AcquisitionRequest) (*entities.ArtifactLocation, error) {
	indexURL := p.Resolve.IndexURL
	if indexURL == "" {
		indexURL = p.Catalog.URL
	}

	var manifest versionManifest
	if err := r.client.GetJSON(ctx, indexURL, &manifest); err != nil {
		return nil, err
	}

	var detailURL string
	for _, v := range manifest.Versions {
		if v.ID == req.Version {
			detailURL = v.URL
			break
		}
	}
	if detailURL == "" {
		return nil, entities.NewError(entities.KindNotFound, "look up version manifest", fmt.Errorf("version %s is not in the manifest", req.Version))
	}

	var detail versionDetail
	if err := r.client.GetJSON(ctx, detailURL, &detail); err != nil {
		return nil, err
	}
	server := detail.Downloads.Server
	if server == nil || server.URL == "" {
		return nil, entities.NewError(entities.KindNotFound, "look up server download", fmt.Errorf("version %s has no server download", req.Version))
	}

	loc, err := locationFor(p, server.URL, map[string]string{"version": req.Version})
	if err != nil {
		return nil, err
	}
	if server.SHA1 != "" {
		loc.Checksum = &entities.Checksum{Algorithm: "sha1", Value: strings.ToLower(server.SHA1)}
	}
	return loc, nil
}

// latestOfKindResolver reads the "latest" build pointer of a version (Purpur)
type latestOfKindResolver struct {
	client *MetadataClient
}

type latestBuild struct {
	Builds struct {
		Latest interface{} `json:"latest"`
	} `json:"builds"`
}

func (r *latestOfKindResolver) Resolve(ctx context.Context, p *entities.Provider, req *entities.AcquisitionRequest) (*entities.ArtifactLocation, error) {
	vars := map[string]string{"version": req.Version}

	var doc latestBuild
	if err := r.client.GetJSON(ctx, expandURL(p.Resolve.IndexURL, vars), &doc); err != nil {
		return nil, err
	}

	build, ok := scalarString(doc.Builds.Latest)
	if !ok {
		return nil, entities.NewError(entities.KindNotFound, "look up latest build", fmt.Errorf("no latest build for version %s", req.Version))
	}
	vars["build"] = build

	return locationFor(p, expandURL(p.Resolve.DownloadURL, vars), vars)
}

// releaseAssetResolver picks the asset with the configured suffix from a tagged release (PocketMine-MP)
type releaseAssetResolver struct {
	client *MetadataClient
}

func (r *releaseAssetResolver) Resolve(ctx context.Context, p *entities.Provider, req *entities.AcquisitionRequest) (*entities.ArtifactLocation, error) {
	var release githubRelease
	if err := r.client.GetJSON(ctx, expandURL(p.Resolve.IndexURL, map[string]string{"version": req.Version}), &release); err != nil {
		return nil, err
	}

	asset := findAsset(release.Assets, p.Resolve.AssetSuffix)
	if asset == nil || asset.BrowserDownloadURL == "" {
		return nil, entities.NewError(entities.KindNotFound, "look up release asset", fmt.Errorf("release %s has no %s asset", req.Version, p.Resolve.AssetSuffix))
	}

	name, err := checkFileName(asset.Name)
	if err != nil {
		return nil, err
	}

	loc := &entities.ArtifactLocation{DownloadURL: asset.BrowserDownloadURL, FileName: name}
	if algo, value, found := strings.Cut(asset.Digest, ":"); found && algo == "sha256" {
		loc.Checksum = &entities.Checksum{Algorithm: algo, Value: strings.ToLower(value)}
	}
	return loc, nil
}

// dynamicInstallerResolver asks the upstream for its current installer version and
// downloads that installer; the requested version is the loader version (Fabric)
type dynamicInstallerResolver struct {
	client *MetadataClient
}

type installerVersion struct {
	Version string `json:"version"`
	Stable  bool   `json:"stable"`
}

func (r *dynamicInstallerResolver) Resolve(ctx context.Context, p *entities.Provider, req *entities.AcquisitionRequest) (*entities.ArtifactLocation, error) {
	var installers []installerVersion
	if err := r.client.GetJSON(ctx, p.Resolve.IndexURL, &installers); err != nil {
		return nil, err
	}
	if len(installers) == 0 || installers[0].Version == "" {
		return nil, entities.NewError(entities.KindNotFound, "look up installer version", fmt.Errorf("no installer versions published"))
	}

	vars := map[string]string{
		"version":           req.Version,
		"installer_version": installers[0].Version,
	}
	return locationFor(p, expandURL(p.Resolve.DownloadURL, vars), vars)
}

func locationFor(p *entities.Provider, downloadURL string, vars map[string]string) (*entities.ArtifactLocation, error) {
	name, err := fileNameFor(p.Resolve.FileName, downloadURL, vars)
	if err != nil {
		return nil, err
	}
	return &entities.ArtifactLocation{DownloadURL: downloadURL, FileName: name}, nil
}
