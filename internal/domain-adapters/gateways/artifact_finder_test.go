package gateways

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ochairo/playport/internal/domain/entities"
)

func writeSized(t *testing.T, dir, name string, size int) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(strings.Repeat("x", size)), 0600); err != nil {
		t.Fatal(err)
	}
}

func TestFixedNameDiscoverer_DoesNotScan(t *testing.T) {
	d := NewFixedNameDiscoverer()
	p := &entities.Provider{Installer: &entities.InstallerConfig{
		Output: entities.OutputConfig{Mode: entities.OutputFixedName, Name: "fabric-server-launch.jar"},
	}}

	// The directory does not exist; a fixed name must not need it
	dir := filepath.Join(t.TempDir(), "missing")
	result, err := d.Discover(p, dir, "")
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if result.ExecutablePath != filepath.Join(dir, "fabric-server-launch.jar") {
		t.Errorf("ExecutablePath = %q", result.ExecutablePath)
	}
}

func TestLargestJarDiscoverer(t *testing.T) {
	p := &entities.Provider{Installer: &entities.InstallerConfig{
		Output: entities.OutputConfig{Mode: entities.OutputLargestJar, Prefix: "forge-"},
	}}

	tests := []struct {
		name    string
		files   map[string]int
		want    string
		wantErr bool
	}{
		{
			name: "picks largest family jar",
			files: map[string]int{
				"forge-1.20.4-49.0.3-installer.jar": 5000,
				"forge-1.20.4-49.0.3-shim.jar":      300,
				"forge-1.20.4-49.0.3.jar":           900,
				"minecraft_server.1.20.4.jar":       4000,
				"forge-notes.txt":                   9000,
			},
			want: "forge-1.20.4-49.0.3.jar",
		},
		{
			name: "ignores unrelated jars left by other installs",
			files: map[string]int{
				"paper-1.20.4-497.jar":    8000,
				"forge-1.16.5-36.2.0.jar": 100,
			},
			want: "forge-1.16.5-36.2.0.jar",
		},
		{
			name:    "only installer present",
			files:   map[string]int{"forge-1.20.4-49.0.3-installer.jar": 5000},
			wantErr: true,
		},
		{
			name:    "empty directory",
			files:   map[string]int{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, size := range tt.files {
				writeSized(t, dir, name, size)
			}
			// Jars in subdirectories are libraries, never the server
			if err := os.MkdirAll(filepath.Join(dir, "libraries"), 0750); err != nil {
				t.Fatal(err)
			}
			writeSized(t, filepath.Join(dir, "libraries"), "forge-huge.jar", 100000)

			result, err := NewLargestJarDiscoverer().Discover(p, dir, "")
			if tt.wantErr {
				if !errors.Is(err, entities.ErrOutputDiscovery) {
					t.Errorf("Discover() error = %v, want output discovery error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Discover() error = %v", err)
			}
			if filepath.Base(result.ExecutablePath) != tt.want {
				t.Errorf("Discover() = %q, want %q", filepath.Base(result.ExecutablePath), tt.want)
			}
		})
	}
}

func TestLargestJarDiscoverer_MissingDirectory(t *testing.T) {
	p := &entities.Provider{Installer: &entities.InstallerConfig{
		Output: entities.OutputConfig{Mode: entities.OutputLargestJar, Prefix: "forge-"},
	}}

	_, err := NewLargestJarDiscoverer().Discover(p, filepath.Join(t.TempDir(), "nope"), "")
	if !errors.Is(err, entities.ErrOutputDiscovery) {
		t.Errorf("Discover() error = %v, want output discovery error", err)
	}
}

func TestReuseDownloadDiscoverer(t *testing.T) {
	d := NewReuseDownloadDiscoverer()

	result, err := d.Discover(&entities.Provider{}, "/srv/x", "/srv/x/neoforge-20.4.80-beta-installer.jar")
	if err != nil {
		t.Fatalf("Discover() error = %v", err)
	}
	if !result.ReusedDownload || result.ExecutablePath != "/srv/x/neoforge-20.4.80-beta-installer.jar" {
		t.Errorf("Discover() = %+v", result)
	}

	if _, err := d.Discover(&entities.Provider{}, "/srv/x", ""); err == nil {
		t.Error("Discover() with no download should fail")
	}
}
