package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"

	"github.com/idilsaglam/todolist/internal/model"
	"github.com/idilsaglam/todolist/internal/store/jsonstore"
)

const (
	// LocalFile is looked up in the working directory before the user config dir.
	LocalFile = ".todolist.toml"

	currentVersion = 1
)

// Config represents the application configuration
type Config struct {
	Version  int           `toml:"version"`
	DataFile string        `toml:"data_file"`
	Theme    string        `toml:"theme"`
	LogFile  string        `toml:"log_file"`
	Seed     []model.Entry `toml:"seed"`
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	return &Config{
		Version:  currentVersion,
		DataFile: jsonstore.DefaultFile,
		Theme:    "classic",
		LogFile:  "todolist.log",
		Seed: []model.Entry{
			{Name: "make dinner", DueDate: "2022-12-22"},
			{Name: "wash dishes", DueDate: "2022-12-22"},
		},
	}
}

// UserPath is the per-user config location.
func UserPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return "", fmt.Errorf("config dir: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "todolist", "config.toml"), nil
}

// Resolve loads explicit if set (it must exist), otherwise the first of
// LocalFile and UserPath that exists, otherwise Default. The returned path is
// empty when defaults are used.
func Resolve(explicit string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := LoadFromPath(explicit)
		return cfg, explicit, err
	}
	candidates := []string{LocalFile}
	if p, err := UserPath(); err == nil {
		candidates = append(candidates, p)
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		cfg, err := LoadFromPath(p)
		return cfg, p, err
	}
	return Default(), "", nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var f fileConfig
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if f.Version > currentVersion {
		return nil, fmt.Errorf("config %s: unsupported version %d", path, f.Version)
	}

	cfg := Default()
	if f.Version != 0 {
		cfg.Version = f.Version
	}
	if f.DataFile != "" {
		cfg.DataFile = f.DataFile
	}
	if f.Theme != "" {
		cfg.Theme = f.Theme
	}
	if f.LogFile != nil {
		cfg.LogFile = *f.LogFile
	}
	if f.Seed != nil {
		cfg.Seed = *f.Seed
	}
	return cfg, nil
}

// fileConfig distinguishes keys absent from the file from explicit empty values.
type fileConfig struct {
	Version  int            `toml:"version"`
	DataFile string         `toml:"data_file"`
	Theme    string         `toml:"theme"`
	LogFile  *string        `toml:"log_file"`
	Seed     *[]model.Entry `toml:"seed"`
}

// SaveToPath writes cfg as TOML.
func SaveToPath(cfg *Config, path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
