// Package filesystem manages server directories under the configured servers root.
package filesystem

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/ochairo/playport/internal/domain/services"
)

const (
	eulaFile       = "eula.txt"
	propertiesFile = "server.properties"
)

// ErrServerExists is returned when a server directory is already present
var ErrServerExists = errors.New("server already exists")

// ServerMetadata is the bookkeeping written next to a server
type ServerMetadata struct {
	Name     string
	Software string
	Version  string
	RAMMB    int
}

// ServerSummary describes one existing server directory
type ServerSummary struct {
	Name        string
	Path        string
	Metadata    *ServerMetadata // nil when server.properties is missing or unreadable
	StartScript string          // empty when no start script was written
}

// ServerStore creates and lists server directories
type ServerStore struct {
	root string
}

// NewServerStore creates a store rooted at dir
func NewServerStore(dir string) *ServerStore {
	return &ServerStore{root: dir}
}

// Root returns the servers directory
func (s *ServerStore) Root() string {
	return s.root
}

// Create makes a new, empty server directory. The name must be a single path element.
func (s *ServerStore) Create(name string) (string, error) {
	if err := ValidateServerName(name); err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.root, 0750); err != nil {
		return "", fmt.Errorf("failed to create servers directory: %w", err)
	}

	dir := filepath.Join(s.root, name)
	if err := os.Mkdir(dir, 0750); err != nil {
		if errors.Is(err, fs.ErrExist) {
			return "", fmt.Errorf("%w: %s", ErrServerExists, name)
		}
		return "", fmt.Errorf("failed to create server directory: %w", err)
	}
	return dir, nil
}

// ValidateServerName rejects names that would escape the servers directory
func ValidateServerName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("server name must not be empty")
	case name == "." || name == "..":
		return fmt.Errorf("invalid server name %q", name)
	case strings.ContainsAny(name, `/\`):
		return fmt.Errorf("server name %q must not contain path separators", name)
	}
	return nil
}

// AcceptEULA writes eula.txt with eula=true
func (s *ServerStore) AcceptEULA(dir string) error {
	return os.WriteFile(filepath.Join(dir, eulaFile), []byte("eula=true\n"), 0600)
}

// WriteLaunchScript writes a rendered start script with its file mode
func (s *ServerStore) WriteLaunchScript(dir string, script *services.LaunchScript) (string, error) {
	path := filepath.Join(dir, script.FileName)
	//nolint:gosec // G306: start scripts must be executable
	if err := os.WriteFile(path, []byte(script.Content), fs.FileMode(script.Mode)); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", script.FileName, err)
	}
	// WriteFile leaves the mode of an existing file untouched
	if err := os.Chmod(path, fs.FileMode(script.Mode)); err != nil {
		return "", fmt.Errorf("failed to chmod %s: %w", script.FileName, err)
	}
	return path, nil
}

// WriteMetadata writes server.properties
func (s *ServerStore) WriteMetadata(dir string, meta ServerMetadata) error {
	content := fmt.Sprintf("server-name=%s\nsoftware=%s\nversion=%s\nram=%dMB\n",
		meta.Name, meta.Software, meta.Version, meta.RAMMB)
	return os.WriteFile(filepath.Join(dir, propertiesFile), []byte(content), 0600)
}

// ReadMetadata parses server.properties from dir
func (s *ServerStore) ReadMetadata(dir string) (*ServerMetadata, error) {
	//nolint:gosec // G304: dir is a server directory under the configured root
	f, err := os.Open(filepath.Join(dir, propertiesFile))
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // Defer close

	meta := &ServerMetadata{}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		switch key {
		case "server-name":
			meta.Name = value
		case "software":
			meta.Software = value
		case "version":
			meta.Version = value
		case "ram":
			meta.RAMMB, _ = strconv.Atoi(strings.TrimSuffix(value, "MB"))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", propertiesFile, err)
	}
	return meta, nil
}

// List returns every server directory sorted by name. A missing root is an empty list.
func (s *ServerStore) List() ([]ServerSummary, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read servers directory: %w", err)
	}

	var servers []ServerSummary
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(s.root, entry.Name())
		summary := ServerSummary{Name: entry.Name(), Path: dir}
		if meta, err := s.ReadMetadata(dir); err == nil {
			summary.Metadata = meta
		}
		for _, script := range []string{"start.bat", "start.sh"} {
			if _, err := os.Stat(filepath.Join(dir, script)); err == nil {
				summary.StartScript = script
				break
			}
		}
		servers = append(servers, summary)
	}

	sort.Slice(servers, func(i, j int) bool { return servers[i].Name < servers[j].Name })
	return servers, nil
}
