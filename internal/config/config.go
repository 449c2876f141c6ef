package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appName = "songbrowser"

// defaultDismissAfter is how long the "N songs processed" message stays up.
const defaultDismissAfter = 20 * time.Second

type Config struct {
	SongDirs  []string `koanf:"song_dirs"`  // folders holding custom levels
	Exclude   []string `koanf:"exclude"`    // doublestar patterns, relative to each song dir
	StatsFile string   `koanf:"stats_file"` // play statistics JSON (default: data dir)
	Database  string   `koanf:"database"`   // state database (default: data dir)

	// Status overlay settings
	Status StatusConfig `koanf:"status"`
}

// StatusConfig holds the loading overlay settings.
type StatusConfig struct {
	DismissAfterSeconds int `koanf:"dismiss_after_seconds"` // default: 20
}

// Load reads the config files in priority order. Missing files are skipped.
func Load() (*Config, error) {
	return load(getConfigPaths())
}

// LoadFile reads path on top of the default config files. Unlike the
// defaults, path must exist.
func LoadFile(path string) (*Config, error) {
	path = expandPath(path)
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return load(append(getConfigPaths(), path))
}

func load(configPaths []string) (*Config, error) {
	k := koanf.New(".")

	// Last file wins
	for _, path := range configPaths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	for i, dir := range cfg.SongDirs {
		cfg.SongDirs[i] = expandPath(dir)
	}
	cfg.StatsFile = expandPath(cfg.StatsFile)
	cfg.Database = expandPath(cfg.Database)

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/songbrowser/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appName, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

// DismissAfter returns how long the status overlay keeps the completion message.
func (c *Config) DismissAfter() time.Duration {
	if c.Status.DismissAfterSeconds <= 0 {
		return defaultDismissAfter
	}
	return time.Duration(c.Status.DismissAfterSeconds) * time.Second
}

// StatsPath returns the play statistics file, defaulting to the data dir.
func (c *Config) StatsPath() (string, error) {
	if c.StatsFile != "" {
		return c.StatsFile, nil
	}
	return xdg.DataFile(filepath.Join(appName, "stats.json"))
}
