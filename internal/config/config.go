package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Storage backends
const (
	BackendFS     = "fs"
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
)

const defaultRefreshInterval = 30 * time.Second

// Config holds the unified application configuration
type Config struct {
	Backend         string
	DataDir         string
	DSN             string
	Project         string
	RefreshInterval time.Duration
	Mouse           bool
}

// Settings represents the config file structure
type Settings struct {
	Backend        string `json:"backend,omitempty"`
	DataDir        string `json:"data_dir,omitempty"`
	DSN            string `json:"dsn,omitempty"`
	Project        string `json:"project,omitempty"`
	RefreshSeconds int    `json:"refresh_seconds,omitempty"`
	Mouse          *bool  `json:"mouse,omitempty"`
}

// CLIFlags holds parsed CLI flags
type CLIFlags struct {
	Backend string
	DataDir string
	DSN     string
	Project string
}

// Load loads configuration with priority: CLI flags > env vars > config file > default
func Load(flags CLIFlags) (*Config, error) {
	cfg := &Config{
		Backend:         BackendFS,
		Project:         "default",
		RefreshInterval: defaultRefreshInterval,
		Mouse:           true,
	}

	// Try loading config file first for base values
	configPath, err := getConfigPath()
	if err == nil {
		if fileConfig, err := loadConfigFile(configPath); err == nil {
			applySettings(cfg, fileConfig)
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: %s: %w", configPath, err)
		}
	}

	// Priority 2: Environment variables override config file
	override(&cfg.Backend, os.Getenv("ISSUEBOARD_BACKEND"))
	override(&cfg.DataDir, os.Getenv("ISSUEBOARD_DATA_DIR"))
	override(&cfg.DSN, os.Getenv("ISSUEBOARD_DSN"))
	override(&cfg.Project, os.Getenv("ISSUEBOARD_PROJECT"))

	// Priority 1: CLI flags override everything
	override(&cfg.Backend, flags.Backend)
	override(&cfg.DataDir, flags.DataDir)
	override(&cfg.DSN, flags.DSN)
	override(&cfg.Project, flags.Project)

	if cfg.DataDir == "" {
		defaultDir, err := GetDefaultDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = defaultDir
	}
	cfg.DataDir = expandPath(cfg.DataDir)

	if cfg.Backend == BackendSQLite && cfg.DSN == "" {
		cfg.DSN = filepath.Join(cfg.DataDir, "issueboard.db")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the backend selection is usable
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendFS:
	case BackendSQLite, BackendMySQL:
		if c.DSN == "" {
			return fmt.Errorf("config: backend %q requires a dsn", c.Backend)
		}
	default:
		return fmt.Errorf("config: unknown backend %q", c.Backend)
	}
	if c.Project == "" {
		return fmt.Errorf("config: project is required")
	}
	return nil
}

// EnsureDirs ensures the data directory exists
func (c *Config) EnsureDirs() error {
	return os.MkdirAll(c.DataDir, 0755)
}

// GetDefaultDir returns the default data directory path
func GetDefaultDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, "issueboard"), nil
}

// getConfigPath returns the path to the configuration file
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "issueboard", "config.json"), nil
}

// loadConfigFile loads configuration from the settings file
func loadConfigFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var settings Settings
	if err := json.Unmarshal(data, &settings); err != nil {
		return nil, err
	}

	return &settings, nil
}

func applySettings(cfg *Config, s *Settings) {
	override(&cfg.Backend, s.Backend)
	override(&cfg.DataDir, s.DataDir)
	override(&cfg.DSN, s.DSN)
	override(&cfg.Project, s.Project)
	if s.RefreshSeconds > 0 {
		cfg.RefreshInterval = time.Duration(s.RefreshSeconds) * time.Second
	}
	if s.Mouse != nil {
		cfg.Mouse = *s.Mouse
	}
}

// EnsureConfigFile creates the config file with defaults if it doesn't exist
func EnsureConfigFile() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return err
	}

	defaultDir, err := GetDefaultDir()
	if err != nil {
		return err
	}

	mouse := true
	settings := Settings{
		Backend:        BackendFS,
		DataDir:        defaultDir,
		Project:        "default",
		RefreshSeconds: int(defaultRefreshInterval / time.Second),
		Mouse:          &mouse,
	}

	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0644)
}

func override(dst *string, v string) {
	if v = strings.TrimSpace(v); v != "" {
		*dst = v
	}
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(homeDir, path[2:])
	}
	return path
}
