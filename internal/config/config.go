package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"nitscrape/internal/textclean"
)

// Config holds all application configuration
type Config struct {
	Version  int            `toml:"version"`
	Scraping ScrapingConfig `toml:"scraping"`
	Cleaning CleaningConfig `toml:"cleaning"`
	Export   ExportConfig   `toml:"export"`
	Archive  ArchiveConfig  `toml:"archive"`
	Watch    WatchConfig    `toml:"watch"`
}

type ScrapingConfig struct {
	BaseURL       string   `toml:"base_url"`
	Mirrors       []string `toml:"mirrors"`
	Scrolls       int      `toml:"scrolls"`
	Filter        string   `toml:"filter"`
	Headless      bool     `toml:"headless"`
	SettleMS      int      `toml:"settle_ms"`
	FeedWaitSecs  int      `toml:"feed_wait_secs"`
	CheckpointDir string   `toml:"checkpoint_dir"`
}

type CleaningConfig struct {
	Preset string            `toml:"preset"`
	Custom *textclean.Config `toml:"custom"`
}

// Resolve returns the effective cleaning pipeline. A custom block wins over
// the preset name.
func (c CleaningConfig) Resolve() textclean.Config {
	if c.Custom != nil {
		return *c.Custom
	}
	cfg, _ := textclean.ParsePreset(c.Preset)
	return cfg
}

type ExportConfig struct {
	Dir  string `toml:"dir"`
	Mode string `toml:"mode"`
}

type ArchiveConfig struct {
	Enabled bool   `toml:"enabled"`
	DBPath  string `toml:"db_path"`
}

type WatchConfig struct {
	Accounts      []string `toml:"accounts"`
	IntervalHours int      `toml:"interval_hours"`
	Timezone      string   `toml:"timezone"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Version: 1,
		Scraping: ScrapingConfig{
			BaseURL: "https://nitter.net",
			Mirrors: []string{
				"https://nitter.net",
				"https://xcancel.com",
				"https://nitter.poast.org",
				"https://lightbrd.com",
			},
			Scrolls:       10,
			Filter:        "original",
			Headless:      true,
			SettleMS:      1500,
			FeedWaitSecs:  10,
			CheckpointDir: ".",
		},
		Cleaning: CleaningConfig{
			Preset: "standard",
		},
		Export: ExportConfig{
			Dir:  "data",
			Mode: "timestamp",
		},
		Archive: ArchiveConfig{
			Enabled: true,
		},
		Watch: WatchConfig{
			Accounts:      []string{},
			IntervalHours: 6,
			Timezone:      "UTC",
		},
	}
}

// ConfigDir returns the platform-appropriate config directory
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "nitscrape"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// ArchivePath returns the configured database path, or the default under the
// config directory when unset.
func (c *Config) ArchivePath() (string, error) {
	if c.Archive.DBPath != "" {
		return c.Archive.DBPath, nil
	}
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "archive.db"), nil
}

// Load reads config from disk
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}
