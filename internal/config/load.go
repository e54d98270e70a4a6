package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfig names the environment variable that points at a config file.
const EnvConfig = "TRIANGLEGRID_CONFIG"

// Load loads configuration with priority: defaults < file < flags.
func Load() (*Config, error) {
	cfg := Default()

	configPath := ConfigPath()
	if configPath == "" {
		configPath = findConfigFile()
	}

	if configPath != "" {
		if err := loadFromFile(cfg, configPath); err != nil {
			return nil, fmt.Errorf("loading config from %s: %w", configPath, err)
		}
		resolvePaths(cfg, filepath.Dir(configPath))
	}

	applyFlags(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// findConfigFile looks for config in the environment, the working directory and the config dir.
func findConfigFile() string {
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}

	candidates := []string{
		"trianglegrid.yaml",
		filepath.Join(ConfigDir(), "config.yaml"),
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// ConfigDir returns the OS-appropriate config directory.
func ConfigDir() string {
	switch runtime.GOOS {
	case "darwin":
		home, _ := os.UserHomeDir()
		return filepath.Join(home, "Library", "Application Support", "TriangleGrid")
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "TriangleGrid")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "trianglegrid")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "trianglegrid")
	}
}

// loadFromFile merges a YAML file into cfg. Keys the config does not know are an error.
func loadFromFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// resolvePaths makes a relative heightmap path from a config file relative to that file.
func resolvePaths(cfg *Config, dir string) {
	if cfg.Grid.Heightmap != "" && !filepath.IsAbs(cfg.Grid.Heightmap) {
		cfg.Grid.Heightmap = filepath.Join(dir, cfg.Grid.Heightmap)
	}
}
