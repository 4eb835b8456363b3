package yaml

import (
	"strings"
	"testing"

	"github.com/ochairo/playport/internal/domain/entities"
)

func TestProviderParser_Parse_Valid(t *testing.T) {
	data := []byte(`providers:
  - id: Fabric
    name: Fabric
    catalog:
      shape: rest-json-list
      url: https://meta.fabricmc.net/v2/versions/loader
      field: version
    resolve:
      recipe: dynamic-installer-version
      index_url: https://meta.fabricmc.net/v2/versions/installer
      download_url: https://maven.fabricmc.net/net/fabricmc/fabric-installer/{installer_version}/fabric-installer-{installer_version}.jar
    installer:
      args: ["-jar", "{installer}", "server"]
      requires_game_version: true
      output:
        mode: fixed-name
        name: fabric-server-launch.jar
`)

	providers, err := NewProviderParser().Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(providers) != 1 {
		t.Fatalf("Parse() returned %d providers, want 1", len(providers))
	}

	p := providers[0]
	if p.ID != entities.ProviderFabric {
		t.Errorf("ID = %q, want lowercased fabric", p.ID)
	}
	if !p.IsInstallerBased() || !p.RequiresGameVersion() {
		t.Errorf("installer flags not set: %+v", p.Installer)
	}
	if p.Launch.Kind != entities.LaunchJavaArchive {
		t.Errorf("Launch.Kind = %q, want java-archive default", p.Launch.Kind)
	}
	if p.Installer.Output.Name != "fabric-server-launch.jar" {
		t.Errorf("Output.Name = %q", p.Installer.Output.Name)
	}
}

func TestProviderParser_Parse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{name: "invalid yaml", data: "providers: [\n", wantErr: "failed to parse YAML"},
		{name: "empty catalog", data: "providers: []\n", wantErr: "no providers"},
		{
			name:    "missing id",
			data:    "providers:\n  - name: X\n",
			wantErr: "must have an id",
		},
		{
			name: "unknown shape",
			data: `providers:
  - id: x
    catalog: {shape: ftp, url: "ftp://x"}
    resolve: {recipe: direct-template, download_url: "https://x/{version}.jar"}
`,
			wantErr: "unknown catalog shape",
		},
		{
			name: "unknown recipe",
			data: `providers:
  - id: x
    catalog: {shape: maven-xml, url: "https://x/maven-metadata.xml"}
    resolve: {recipe: guess}
`,
			wantErr: "unknown resolve recipe",
		},
		{
			name: "build indirection without index",
			data: `providers:
  - id: x
    catalog: {shape: rest-json-object, url: "https://x", array: versions}
    resolve: {recipe: build-indirection, download_url: "https://x/{build}.jar"}
`,
			wantErr: "needs index_url",
		},
		{
			name: "fixed name without name",
			data: `providers:
  - id: x
    catalog: {shape: maven-xml, url: "https://x"}
    resolve: {recipe: direct-template, download_url: "https://x/{version}.jar"}
    installer:
      args: ["-jar", "{installer}"]
      output: {mode: fixed-name}
`,
			wantErr: "needs name",
		},
		{
			name: "duplicate id",
			data: `providers:
  - id: x
    catalog: {shape: static, static_label: latest}
    resolve: {recipe: direct-template, download_url: "https://x/a.jar"}
  - id: X
    catalog: {shape: static, static_label: latest}
    resolve: {recipe: direct-template, download_url: "https://x/a.jar"}
`,
			wantErr: "defined twice",
		},
		{
			name: "unknown launch kind",
			data: `providers:
  - id: x
    catalog: {shape: static, static_label: latest}
    resolve: {recipe: direct-template, download_url: "https://x/a.jar"}
    launch: {kind: native}
`,
			wantErr: "unknown launch kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewProviderParser().Parse([]byte(tt.data))
			if err == nil {
				t.Fatal("Parse() should fail")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Parse() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestProviderParser_ParseFile_NotFound(t *testing.T) {
	if _, err := NewProviderParser().ParseFile("/nonexistent/providers.yml"); err == nil {
		t.Error("ParseFile() should fail for a missing file")
	}
}
