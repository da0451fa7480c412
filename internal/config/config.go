package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultYAML []byte

type Keys struct {
	A            string `yaml:"a"`
	B            string `yaml:"b"`
	Start        string `yaml:"start"`
	Select       string `yaml:"select"`
	CrankForward string `yaml:"crank_forward"`
	CrankBack    string `yaml:"crank_back"`
}

// Config holds everything the CLI and window need.
type Config struct {
	DataDir              string  `yaml:"data_dir"`
	ROMName              string  `yaml:"rom_name"`
	Storage              string  `yaml:"storage"`
	DBPath               string  `yaml:"db_path"`
	WindowScale          int     `yaml:"window_scale"`
	LogLevel             string  `yaml:"log_level"`
	CrankDegreesPerNotch float64 `yaml:"crank_degrees_per_notch"`
	SkipBootScroll       bool    `yaml:"skip_boot_scroll"`
	PanStep              int     `yaml:"pan_step"`
	Keys                 Keys    `yaml:"keys"`
}

const (
	StorageDir    = "dir"
	StorageSQLite = "sqlite"
)

// Defaults fills missing fields with reasonable defaults.
func (c *Config) Defaults() {
	if c.DataDir == "" {
		c.DataDir = "~/.monoboy/data"
	}
	if c.ROMName == "" {
		c.ROMName = "rom.gb"
	}
	if c.Storage == "" {
		c.Storage = StorageDir
	}
	if c.DBPath == "" {
		c.DBPath = "~/.monoboy/saves.db"
	}
	if c.WindowScale <= 0 {
		c.WindowScale = 2
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.CrankDegreesPerNotch == 0 {
		c.CrankDegreesPerNotch = 15
	}
	k := &c.Keys
	for _, f := range []struct {
		v   *string
		def string
	}{
		{&k.A, "Z"}, {&k.B, "X"}, {&k.Start, "Enter"}, {&k.Select, "ShiftRight"},
		{&k.CrankForward, "Period"}, {&k.CrankBack, "Comma"},
	} {
		if *f.v == "" {
			*f.v = f.def
		}
	}
}

// Validate rejects settings no component can run with.
func (c *Config) Validate() error {
	switch c.Storage {
	case StorageDir, StorageSQLite:
	default:
		return fmt.Errorf("config: unknown storage %q (want %q or %q)", c.Storage, StorageDir, StorageSQLite)
	}
	if c.ROMName != filepath.Base(c.ROMName) {
		return fmt.Errorf("config: rom_name %q must be a plain file name", c.ROMName)
	}
	return nil
}

// Default returns the embedded configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		cfg = Config{}
	}
	cfg.Defaults()
	return cfg
}

// Load reads configuration.
// Search order: customPath -> ~/.monoboy/config.yaml -> ./monoboy.yaml -> embedded default
func Load(customPath string) (Config, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return Config{}, err
		}
		return cfg, cfg.Validate()
	}

	for _, p := range []string{userConfigPath(), "monoboy.yaml"} {
		if p == "" {
			continue
		}
		if cfg, err := loadFile(p); err == nil {
			return cfg, cfg.Validate()
		}
	}

	cfg := Default()
	return cfg, cfg.Validate()
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	cfg.Defaults()
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".monoboy", "config.yaml")
}
