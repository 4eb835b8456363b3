package gateways

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/net/html"

	"github.com/ochairo/playport/internal/domain/entities"
	"github.com/ochairo/playport/internal/domain/services"
)

// restJSONListLister reads an array of objects (or scalars), optionally filtered by a field value.
// Used by Vanilla (versions[] where type == release), Fabric and Quilt.
type restJSONListLister struct {
	client *MetadataClient
}

func (l *restJSONListLister) ListVersions(ctx context.Context, p *entities.Provider) ([]string, error) {
	var doc interface{}
	if err := l.client.GetJSON(ctx, p.Catalog.URL, &doc); err != nil {
		return nil, err
	}
	return extractVersions(doc, &p.Catalog)
}

// restJSONObjectLister reads a named array from a JSON object, reversing it when
// the upstream publishes oldest-first (PaperMC projects, Purpur).
type restJSONObjectLister struct {
	client *MetadataClient
}

func (l *restJSONObjectLister) ListVersions(ctx context.Context, p *entities.Provider) ([]string, error) {
	var doc interface{}
	if err := l.client.GetJSON(ctx, p.Catalog.URL, &doc); err != nil {
		return nil, err
	}
	if _, ok := doc.(map[string]interface{}); !ok {
		return nil, entities.NewError(entities.KindParse, "read version listing", fmt.Errorf("expected a JSON object, got %T", doc))
	}
	return extractVersions(doc, &p.Catalog)
}

// jenkinsJobsLister reads the job names of a Jenkins view; each job is one version line
type jenkinsJobsLister struct {
	client *MetadataClient
}

type jenkinsView struct {
	Jobs []jenkinsJob `json:"jobs"`
}

type jenkinsJob struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

func (l *jenkinsJobsLister) ListVersions(ctx context.Context, p *entities.Provider) ([]string, error) {
	var view jenkinsView
	if err := l.client.GetJSON(ctx, p.Catalog.URL, &view); err != nil {
		return nil, err
	}

	versions := make([]string, 0, len(view.Jobs))
	for _, job := range view.Jobs {
		versions = append(versions, job.Name)
	}

	// Jenkins lists jobs oldest-first
	services.Reverse(versions)
	return versions, nil
}

// mavenXMLLister reads metadata/versioning/versions/version and sorts it, since
// Maven metadata order is publication order rather than version order
type mavenXMLLister struct {
	client *MetadataClient
}

type mavenMetadata struct {
	Versions []string `xml:"versioning>versions>version"`
}

func (l *mavenXMLLister) ListVersions(ctx context.Context, p *entities.Provider) ([]string, error) {
	var meta mavenMetadata
	if err := l.client.GetXML(ctx, p.Catalog.URL, &meta); err != nil {
		return nil, err
	}
	if len(meta.Versions) == 0 {
		return nil, entities.NewError(entities.KindParse, "read maven metadata", fmt.Errorf("no versions element"))
	}
	services.SortDescending(meta.Versions)
	return meta.Versions, nil
}

// htmlListingLister scrapes anchors from a directory index page.
// Only hrefs ending in the configured suffix whose remainder is a dotted
// release number are kept (Spigot publishes e.g. "1.20.4.json").
type htmlListingLister struct {
	client *MetadataClient
}

func (l *htmlListingLister) ListVersions(ctx context.Context, p *entities.Provider) ([]string, error) {
	body, err := l.client.GetBytes(ctx, p.Catalog.URL)
	if err != nil {
		return nil, err
	}

	hrefs, err := anchorHrefs(bytes.NewReader(body))
	if err != nil {
		return nil, entities.NewError(entities.KindParse, "read HTML listing", err)
	}

	var versions []string
	for _, href := range hrefs {
		name := path.Base(href)
		if p.Catalog.HrefSuffix != "" {
			if !strings.HasSuffix(name, p.Catalog.HrefSuffix) {
				continue
			}
			name = strings.TrimSuffix(name, p.Catalog.HrefSuffix)
		}
		if services.IsDottedVersion(name) {
			versions = append(versions, name)
		}
	}

	services.SortDescending(versions)
	return versions, nil
}

func anchorHrefs(r io.Reader) ([]string, error) {
	var hrefs []string
	z := html.NewTokenizer(r)
	for {
		switch z.Next() {
		case html.ErrorToken:
			if z.Err() == io.EOF {
				return hrefs, nil
			}
			return nil, z.Err()
		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != "a" {
				continue
			}
			for _, attr := range tok.Attr {
				if attr.Key == "href" && attr.Val != "" {
					hrefs = append(hrefs, attr.Val)
				}
			}
		}
	}
}

// githubReleasesLister keeps the tags of releases that carry an asset with the configured suffix
type githubReleasesLister struct {
	client *MetadataClient
}

type githubRelease struct {
	TagName    string        `json:"tag_name"`
	Draft      bool          `json:"draft"`
	Prerelease bool          `json:"prerelease"`
	Assets     []githubAsset `json:"assets"`
}

type githubAsset struct {
	Name               string `json:"name"`
	BrowserDownloadURL string `json:"browser_download_url"`
	Digest             string `json:"digest"`
	Size               int64  `json:"size"`
}

func (l *githubReleasesLister) ListVersions(ctx context.Context, p *entities.Provider) ([]string, error) {
	var releases []githubRelease
	if err := l.client.GetJSON(ctx, p.Catalog.URL, &releases); err != nil {
		return nil, err
	}

	var versions []string
	for i := range releases {
		if releases[i].Draft {
			continue
		}
		if findAsset(releases[i].Assets, p.Catalog.AssetSuffix) != nil {
			versions = append(versions, releases[i].TagName)
		}
	}
	return versions, nil
}

func findAsset(assets []githubAsset, suffix string) *githubAsset {
	for i := range assets {
		if strings.HasSuffix(assets[i].Name, suffix) {
			return &assets[i]
		}
	}
	return nil
}

// staticLister returns the single fixed label of a provider with no listing endpoint
type staticLister struct{}

func (staticLister) ListVersions(_ context.Context, p *entities.Provider) ([]string, error) {
	if p.Catalog.StaticLabel == "" {
		return nil, entities.NewError(entities.KindParse, "read static listing", fmt.Errorf("no static label configured"))
	}
	return []string{p.Catalog.StaticLabel}, nil
}

// extractVersions walks a decoded JSON document according to the catalog config
func extractVersions(doc interface{}, cfg *entities.CatalogConfig) ([]string, error) {
	items, err := arrayAt(doc, cfg.Array)
	if err != nil {
		return nil, entities.NewError(entities.KindParse, "read version listing", err)
	}

	versions := make([]string, 0, len(items))
	for _, item := range items {
		if cfg.Field == "" {
			if s, ok := scalarString(item); ok {
				versions = append(versions, s)
			}
			continue
		}

		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		if cfg.FilterField != "" {
			if v, _ := scalarString(obj[cfg.FilterField]); v != cfg.FilterValue {
				continue
			}
		}
		if s, ok := scalarString(obj[cfg.Field]); ok {
			versions = append(versions, s)
		}
	}

	if cfg.Reverse {
		services.Reverse(versions)
	}
	return versions, nil
}

func arrayAt(doc interface{}, key string) ([]interface{}, error) {
	if key == "" {
		items, ok := doc.([]interface{})
		if !ok {
			return nil, fmt.Errorf("expected a JSON array, got %T", doc)
		}
		return items, nil
	}

	obj, ok := doc.(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("expected a JSON object with %q, got %T", key, doc)
	}
	items, ok := obj[key].([]interface{})
	if !ok {
		return nil, fmt.Errorf("field %q is not an array", key)
	}
	return items, nil
}

// scalarString renders JSON strings and numbers; build numbers arrive as json.Number
func scalarString(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		return val, val != ""
	case json.Number:
		return val.String(), true
	default:
		return "", false
	}
}
