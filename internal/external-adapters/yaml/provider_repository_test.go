package yaml

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ochairo/playport/internal/domain/entities"
)

func TestProviderRepository_BuiltinCatalog(t *testing.T) {
	repo, err := NewProviderRepository()
	if err != nil {
		t.Fatalf("NewProviderRepository() error = %v", err)
	}

	providers, err := repo.ListProviders(context.Background())
	if err != nil {
		t.Fatalf("ListProviders() error = %v", err)
	}

	want := []entities.ProviderID{
		entities.ProviderVanilla, entities.ProviderForge, entities.ProviderFabric,
		entities.ProviderNeoForge, entities.ProviderQuilt, entities.ProviderSpigot,
		entities.ProviderPaper, entities.ProviderPurpur, entities.ProviderPufferfish,
		entities.ProviderFolia, entities.ProviderBungeeCord, entities.ProviderVelocity,
		entities.ProviderWaterfall, entities.ProviderNukkit, entities.ProviderPocketMine,
	}
	if len(providers) != len(want) {
		t.Fatalf("ListProviders() returned %d providers, want %d", len(providers), len(want))
	}
	for i, id := range want {
		if providers[i].ID != id {
			t.Errorf("providers[%d] = %q, want %q", i, providers[i].ID, id)
		}
	}
}

func TestProviderRepository_BuiltinStrategies(t *testing.T) {
	repo, err := NewProviderRepository()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		id        entities.ProviderID
		recipe    entities.ResolveRecipe
		installer bool
		mode      entities.OutputMode
		launch    entities.LaunchKind
	}{
		{id: entities.ProviderVanilla, recipe: entities.RecipeManifestIndirection, launch: entities.LaunchJavaArchive},
		{id: entities.ProviderForge, recipe: entities.RecipeDirectTemplate, installer: true, mode: entities.OutputLargestJar, launch: entities.LaunchJavaArchive},
		{id: entities.ProviderFabric, recipe: entities.RecipeDynamicInstallerVersion, installer: true, mode: entities.OutputFixedName, launch: entities.LaunchJavaArchive},
		{id: entities.ProviderNeoForge, recipe: entities.RecipeDirectTemplate, installer: true, mode: entities.OutputReuseDownload, launch: entities.LaunchJavaArchive},
		{id: entities.ProviderQuilt, recipe: entities.RecipeDirectTemplate, installer: true, mode: entities.OutputFixedName, launch: entities.LaunchJavaArchive},
		{id: entities.ProviderPaper, recipe: entities.RecipeBuildIndirection, launch: entities.LaunchJavaArchive},
		{id: entities.ProviderPurpur, recipe: entities.RecipeLatestOfKind, launch: entities.LaunchJavaArchive},
		{id: entities.ProviderPufferfish, recipe: entities.RecipeJenkinsDoubleIndirect, launch: entities.LaunchJavaArchive},
		{id: entities.ProviderNukkit, recipe: entities.RecipeDirectTemplate, launch: entities.LaunchJavaArchive},
		{id: entities.ProviderPocketMine, recipe: entities.RecipeReleaseAsset, launch: entities.LaunchPHPArchive},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			p, err := repo.GetProvider(context.Background(), string(tt.id))
			if err != nil {
				t.Fatalf("GetProvider() error = %v", err)
			}
			if p.Resolve.Recipe != tt.recipe {
				t.Errorf("Recipe = %q, want %q", p.Resolve.Recipe, tt.recipe)
			}
			if p.IsInstallerBased() != tt.installer {
				t.Errorf("IsInstallerBased() = %v, want %v", p.IsInstallerBased(), tt.installer)
			}
			if tt.installer && p.Installer.Output.Mode != tt.mode {
				t.Errorf("Output.Mode = %q, want %q", p.Installer.Output.Mode, tt.mode)
			}
			if p.Launch.Kind != tt.launch {
				t.Errorf("Launch.Kind = %q, want %q", p.Launch.Kind, tt.launch)
			}
		})
	}
}

func TestProviderRepository_BuiltinInstallerArgs(t *testing.T) {
	repo, err := NewProviderRepository()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		id   entities.ProviderID
		want string
	}{
		{id: entities.ProviderForge, want: "-jar {installer} --installServer"},
		{id: entities.ProviderFabric, want: "-jar {installer} server -mcversion {game_version} -loader {version} -downloadMinecraft"},
		{id: entities.ProviderNeoForge, want: "-jar {installer} --installServer"},
		{id: entities.ProviderQuilt, want: "-jar {installer} install server {game_version} --download-server --create-scripts --install-dir={target_dir}"},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			p, err := repo.GetProvider(context.Background(), string(tt.id))
			if err != nil {
				t.Fatalf("GetProvider() error = %v", err)
			}
			if p.Installer == nil {
				t.Fatal("provider has no installer")
			}
			if got := strings.Join(p.Installer.Args, " "); got != tt.want {
				t.Errorf("args = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProviderRepository_GetProvider(t *testing.T) {
	repo, err := NewProviderRepository()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		query string
		want  entities.ProviderID
	}{
		{query: "paper", want: entities.ProviderPaper},
		{query: "PAPER", want: entities.ProviderPaper},
		{query: "PocketMine-MP", want: entities.ProviderPocketMine},
		{query: " NeoForge ", want: entities.ProviderNeoForge},
	}
	for _, tt := range tests {
		p, err := repo.GetProvider(context.Background(), tt.query)
		if err != nil {
			t.Errorf("GetProvider(%q) error = %v", tt.query, err)
			continue
		}
		if p.ID != tt.want {
			t.Errorf("GetProvider(%q) = %q, want %q", tt.query, p.ID, tt.want)
		}
	}

	_, err = repo.GetProvider(context.Background(), "bukkit")
	if !errors.Is(err, entities.ErrNotFound) {
		t.Errorf("GetProvider(bukkit) error = %v, want not found", err)
	}
}

func TestProviderRepository_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "providers.yml")
	data := []byte(`providers:
  - id: mirror-paper
    name: Paper (mirror)
    catalog:
      shape: rest-json-object
      url: https://mirror.example/paper
      array: versions
    resolve:
      recipe: direct-template
      download_url: https://mirror.example/paper-{version}.jar
`)
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatal(err)
	}

	repo, err := NewProviderRepositoryFromFile(path)
	if err != nil {
		t.Fatalf("NewProviderRepositoryFromFile() error = %v", err)
	}
	if _, err := repo.GetProvider(context.Background(), "Paper (mirror)"); err != nil {
		t.Errorf("GetProvider() error = %v", err)
	}
	if _, err := repo.GetProvider(context.Background(), "vanilla"); err == nil {
		t.Error("file catalog should replace the built-in one")
	}
}
