package yaml

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"gopkg.in/yaml.v3"
)

// Config is the user configuration read from config.yml
type Config struct {
	ServersDir      string        `yaml:"servers_dir"`
	JavaPath        string        `yaml:"java_path"`
	PHPPath         string        `yaml:"php_path"`
	LogLevel        string        `yaml:"log_level"`
	MetadataTimeout time.Duration `yaml:"metadata_timeout"`
	DownloadTimeout time.Duration `yaml:"download_timeout"`
	CatalogFile     string        `yaml:"catalog_file"`
	GitHubToken     string        `yaml:"github_token"`
	UserAgent       string        `yaml:"user_agent"`
	Verify          VerifyConfig  `yaml:"verify"`
}

// VerifyConfig controls artifact integrity checks
type VerifyConfig struct {
	Checksums bool   `yaml:"checksums"`
	Keyring   string `yaml:"keyring"` // enables detached signature checks when set
}

var validLogLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// DefaultConfigPath returns $XDG_CONFIG_HOME/playport/config.yml
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, "playport", "config.yml")
}

// DefaultConfig returns the configuration used when no file is present
func DefaultConfig() *Config {
	return &Config{
		ServersDir:      filepath.Join(xdg.DataHome, "playport", "servers"),
		JavaPath:        "java",
		PHPPath:         "php",
		LogLevel:        "info",
		MetadataTimeout: 10 * time.Second,
		DownloadTimeout: 5 * time.Minute,
		UserAgent:       "playport/1.0",
		Verify:          VerifyConfig{Checksums: true},
	}
}

// LoadConfig reads path over the defaults. An empty path means the default
// location, which may be absent; an explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigPath()
	}

	//nolint:gosec // G304: path is the user's configuration file
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && !explicit:
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg.ApplyEnv(os.LookupEnv)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv applies environment overrides using lookup
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup("PLAYPORT_SERVERS_DIR"); ok && v != "" {
		c.ServersDir = v
	}
	if v, ok := lookup("PLAYPORT_JAVA"); ok && v != "" {
		c.JavaPath = v
	}
	if c.GitHubToken == "" {
		for _, key := range []string{"GITHUB_TOKEN", "GH_TOKEN"} {
			if v, ok := lookup(key); ok && v != "" {
				c.GitHubToken = v
				break
			}
		}
	}
}

// Validate rejects values the rest of the program cannot use
func (c *Config) Validate() error {
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.MetadataTimeout < 0 {
		return fmt.Errorf("metadata_timeout must not be negative")
	}
	if c.DownloadTimeout < 0 {
		return fmt.Errorf("download_timeout must not be negative")
	}
	if c.ServersDir == "" {
		return fmt.Errorf("servers_dir must be set")
	}
	return nil
}
