package filesystem

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/ochairo/playport/internal/domain/services"
)

func TestServerStore_Create(t *testing.T) {
	store := NewServerStore(filepath.Join(t.TempDir(), "servers"))

	dir, err := store.Create("lobby")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("server directory not created: %v", err)
	}

	if _, err := store.Create("lobby"); !errors.Is(err, ErrServerExists) {
		t.Errorf("Create() twice error = %v, want ErrServerExists", err)
	}
}

func TestValidateServerName(t *testing.T) {
	tests := []struct {
		name    string
		wantErr bool
	}{
		{"lobby", false},
		{"survival 2", false},
		{"", true},
		{"  ", true},
		{".", true},
		{"..", true},
		{"a/b", true},
		{`a\b`, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateServerName(tt.name); (err != nil) != tt.wantErr {
				t.Errorf("ValidateServerName(%q) error = %v, wantErr %v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func TestServerStore_FilesAndList(t *testing.T) {
	store := NewServerStore(t.TempDir())

	dir, err := store.Create("survival")
	if err != nil {
		t.Fatal(err)
	}
	if err := store.AcceptEULA(dir); err != nil {
		t.Fatalf("AcceptEULA() error = %v", err)
	}
	script := &services.LaunchScript{FileName: "start.sh", Content: "#!/bin/bash\njava -jar server.jar\n", Mode: 0o755}
	path, err := store.WriteLaunchScript(dir, script)
	if err != nil {
		t.Fatalf("WriteLaunchScript() error = %v", err)
	}
	if err := store.WriteMetadata(dir, ServerMetadata{Name: "survival", Software: "paper", Version: "1.20.4", RAMMB: 2048}); err != nil {
		t.Fatalf("WriteMetadata() error = %v", err)
	}
	if _, err := store.Create("empty"); err != nil {
		t.Fatal(err)
	}

	eula, err := os.ReadFile(filepath.Join(dir, "eula.txt"))
	if err != nil || string(eula) != "eula=true\n" {
		t.Errorf("eula.txt = %q, %v", eula, err)
	}
	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		if err != nil || info.Mode().Perm()&0o100 == 0 {
			t.Errorf("start script not executable: %v", err)
		}
	}

	servers, err := store.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(servers) != 2 || servers[0].Name != "empty" || servers[1].Name != "survival" {
		t.Fatalf("List() = %+v", servers)
	}
	if servers[0].Metadata != nil || servers[0].StartScript != "" {
		t.Errorf("empty server = %+v", servers[0])
	}
	meta := servers[1].Metadata
	if meta == nil || meta.Software != "paper" || meta.Version != "1.20.4" || meta.RAMMB != 2048 {
		t.Errorf("metadata = %+v", meta)
	}
	if servers[1].StartScript != "start.sh" {
		t.Errorf("StartScript = %q", servers[1].StartScript)
	}
}

func TestServerStore_ListMissingRoot(t *testing.T) {
	store := NewServerStore(filepath.Join(t.TempDir(), "nope"))

	servers, err := store.List()
	if err != nil || len(servers) != 0 {
		t.Errorf("List() = %v, %v", servers, err)
	}
}
