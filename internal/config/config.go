package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Default import file names, resolved relative to ImportDir.
const (
	UsersImportFile     = "users.txt"
	IncidentsImportFile = "cyber_incidents.csv"
	TicketsImportFile   = "it_tickets.csv"
	DatasetsImportFile  = "datasets_metadata.csv"
)

// Config represents the flat sentinel configuration.
type Config struct {
	Version      string `json:"version"`
	DataDir      string `json:"data_dir"`                // directory holding the database and import files
	DatabasePath string `json:"database_path,omitempty"` // overrides DataDir/sentinel.db when set
	ImportDir    string `json:"import_dir,omitempty"`    // overrides DataDir for bulk-import sources

	// BootstrapAdmin gates the default-admin creation/promotion on startup.
	// When true and no admin exists, a user named "admin" is created with the
	// default password, or an existing non-admin "admin" user has its
	// credentials reset and role promoted. Disable to opt out of that reset.
	BootstrapAdmin bool `json:"bootstrap_admin"`
}

// DefaultConfig returns a config rooted under the user's home directory.
// All path resolution happens here, once; nothing else consults globals.
func DefaultConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	return &Config{
		Version:        "1",
		DataDir:        filepath.Join(home, ".sentinel"),
		BootstrapAdmin: true,
	}, nil
}

// LoadConfig reads config.json from dir/.sentinel. Falls back to
// DefaultConfig when no config file exists. An absent bootstrap_admin key
// means the default (on); only an explicit false disables the bootstrap.
func LoadConfig(dir string) (*Config, error) {
	path := filepath.Join(dir, ".sentinel", "config.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig()
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// bootstrap_admin decodes through a pointer so absence is
	// distinguishable from an explicit false.
	var raw struct {
		Version        string `json:"version"`
		DataDir        string `json:"data_dir"`
		DatabasePath   string `json:"database_path"`
		ImportDir      string `json:"import_dir"`
		BootstrapAdmin *bool  `json:"bootstrap_admin"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := Config{
		Version:        raw.Version,
		DataDir:        raw.DataDir,
		DatabasePath:   raw.DatabasePath,
		ImportDir:      raw.ImportDir,
		BootstrapAdmin: true,
	}
	if raw.BootstrapAdmin != nil {
		cfg.BootstrapAdmin = *raw.BootstrapAdmin
	}
	if cfg.DataDir == "" {
		def, err := DefaultConfig()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = def.DataDir
	}

	return &cfg, nil
}

// SaveConfig writes config.json to dir/.sentinel.
func SaveConfig(dir string, cfg *Config) error {
	cfgDir := filepath.Join(dir, ".sentinel")
	if err := os.MkdirAll(cfgDir, 0755); err != nil {
		return fmt.Errorf("failed to create .sentinel dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := filepath.Join(cfgDir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// DBPath returns the resolved database file path.
func (c *Config) DBPath() string {
	if c.DatabasePath != "" {
		return c.DatabasePath
	}
	return filepath.Join(c.DataDir, "sentinel.db")
}

// ImportPath returns the resolved path for a bulk-import source file.
func (c *Config) ImportPath(name string) string {
	if c.ImportDir != "" {
		return filepath.Join(c.ImportDir, name)
	}
	return filepath.Join(c.DataDir, name)
}
