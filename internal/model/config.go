package model

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// StorageConfig locates the key-value database.
type StorageConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// LogConfig controls the structured log file.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	Dir   string `mapstructure:"dir" yaml:"dir"`
}

// DashboardConfig holds settings for the dashboard summary.
type DashboardConfig struct {
	// PreviewLimit caps the upcoming and overdue lists on the dashboard.
	PreviewLimit int `mapstructure:"preview_limit" yaml:"preview_limit"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`
}

// SeedConfig controls first-run demo data.
type SeedConfig struct {
	// Demo loads the built-in demo fleet when no ships are stored yet.
	Demo bool `mapstructure:"demo" yaml:"demo"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage   StorageConfig   `mapstructure:"storage" yaml:"storage"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Dashboard DashboardConfig `mapstructure:"dashboard" yaml:"dashboard"`
	Display   DisplayConfig   `mapstructure:"display" yaml:"display"`
	Seed      SeedConfig      `mapstructure:"seed" yaml:"seed"`
}

// envPrefix namespaces environment overrides, e.g. FLEET_STORAGE_PATH.
const envPrefix = "FLEET"

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/fleet/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "fleet", "config.yaml")
}

// defaultDataDir returns ~/.local/share/fleet, falling back to the working
// directory when no home directory is available.
func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".local", "share", "fleet")
}

// DefaultAppConfig returns a sensible default configuration.
func DefaultAppConfig() *AppConfig {
	dataDir := defaultDataDir()
	return &AppConfig{
		Storage:   StorageConfig{Path: filepath.Join(dataDir, "fleet.db")},
		Log:       LogConfig{Level: "info", Dir: filepath.Join(dataDir, "logs")},
		Dashboard: DashboardConfig{PreviewLimit: 5},
		Display:   DisplayConfig{Theme: "default"},
		Seed:      SeedConfig{Demo: true},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, defaults are used. Environment variables
// prefixed with FLEET_ override both.
func LoadConfig(path string) (*AppConfig, error) {
	def := DefaultAppConfig()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("storage.path", def.Storage.Path)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("log.dir", def.Log.Dir)
	v.SetDefault("dashboard.preview_limit", def.Dashboard.PreviewLimit)
	v.SetDefault("display.theme", def.Display.Theme)
	v.SetDefault("seed.demo", def.Seed.Demo)

	if err := v.ReadInConfig(); err != nil {
		var pathErr *os.PathError
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &pathErr) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := &AppConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Dashboard.PreviewLimit <= 0 {
		cfg.Dashboard.PreviewLimit = def.Dashboard.PreviewLimit
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("log", cfg.Log)
	v.Set("dashboard", cfg.Dashboard)
	v.Set("display", cfg.Display)
	v.Set("seed", cfg.Seed)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
