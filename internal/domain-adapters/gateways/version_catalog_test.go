package gateways

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ochairo/playport/internal/domain/entities"
	"github.com/ochairo/playport/internal/domain/interfaces"
)

// recordingLogger keeps warnings so tests can assert on them
type recordingLogger struct {
	interfaces.NoOpLogger
	warnings []string
}

func (l *recordingLogger) Warn(msg string, _ ...interfaces.Field) {
	l.warnings = append(l.warnings, msg)
}

func (l *recordingLogger) With(_ ...interfaces.Field) interfaces.Logger {
	return l
}

func newCatalogFor(handler http.HandlerFunc) (*VersionCatalog, *recordingLogger, *entities.Provider, func()) {
	server := httptest.NewServer(handler)
	logger := &recordingLogger{}
	registry := NewStrategyRegistry(NewMetadataClient(MetadataClientOptions{}))
	p := &entities.Provider{
		ID: entities.ProviderPaper,
		Catalog: entities.CatalogConfig{
			Shape: entities.ShapeRESTJSONObject, URL: server.URL, Array: "versions", Reverse: true,
		},
	}
	return NewVersionCatalog(registry, logger), logger, p, server.Close
}

func TestVersionCatalog_Live(t *testing.T) {
	catalog, logger, p, done := newCatalogFor(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"versions":["1.19.4"," 1.20 ","1.20","","1.20.4"]}`))
	})
	defer done()

	list := catalog.ListVersions(context.Background(), p)

	if list.Source != entities.SourceLive {
		t.Errorf("Source = %v, want live", list.Source)
	}
	want := []string{"1.20.4", "1.20", "1.19.4"}
	if strings.Join(list.Versions, ",") != strings.Join(want, ",") {
		t.Errorf("Versions = %v, want %v", list.Versions, want)
	}
	if len(logger.warnings) != 0 {
		t.Errorf("unexpected warnings: %v", logger.warnings)
	}
}

func TestVersionCatalog_CapsAtMax(t *testing.T) {
	catalog, _, p, done := newCatalogFor(func(w http.ResponseWriter, _ *http.Request) {
		versions := make([]string, 0, 250)
		for i := 0; i < 250; i++ {
			versions = append(versions, fmt.Sprintf(`"1.%d"`, i))
		}
		_, _ = fmt.Fprintf(w, `{"versions":[%s]}`, strings.Join(versions, ","))
	})
	defer done()

	list := catalog.ListVersions(context.Background(), p)

	if list.Len() != entities.MaxVersions {
		t.Fatalf("Len() = %d, want %d", list.Len(), entities.MaxVersions)
	}
	if list.Versions[0] != "1.249" {
		t.Errorf("newest = %q, want 1.249", list.Versions[0])
	}
}

func TestVersionCatalog_Fallback(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`<html>maintenance</html>`))
			},
		},
		{
			name: "unexpected shape",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"projects":["paper"]}`))
			},
		},
		{
			name: "empty listing",
			handler: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"versions":[]}`))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, logger, p, done := newCatalogFor(tt.handler)
			defer done()

			list := catalog.ListVersions(context.Background(), p)

			if list.Source != entities.SourceFallback {
				t.Errorf("Source = %v, want fallback", list.Source)
			}
			if list.Len() != 100 || list.Versions[0] != "1.100" || list.Versions[99] != "1.1" {
				t.Errorf("fallback list = %d entries from %q to %q", list.Len(), list.Versions[0], list.Versions[list.Len()-1])
			}
			if len(logger.warnings) != 1 {
				t.Errorf("warnings = %v, want exactly one", logger.warnings)
			}
		})
	}
}

func TestVersionCatalog_UnreachableHost(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	registry := NewStrategyRegistry(NewMetadataClient(MetadataClientOptions{}))
	catalog := NewVersionCatalog(registry, nil)
	p := &entities.Provider{ID: entities.ProviderSpigot, Catalog: entities.CatalogConfig{
		Shape: entities.ShapeHTMLListing, URL: url, HrefSuffix: ".json",
	}}

	list := catalog.ListVersions(context.Background(), p)
	if list.Source != entities.SourceFallback || list.Len() == 0 {
		t.Errorf("ListVersions() = %+v, want non-empty fallback", list)
	}
}
