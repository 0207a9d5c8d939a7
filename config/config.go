// Package config loads and saves the application configuration. The on-disk
// shape has changed over time (a theme keyword before explicit RGB fields),
// so loading is defensive: unknown fields are ignored, missing fields fall
// back to defaults, and both historical theme forms are accepted.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// CurrentVersion is the configuration format version written by this build.
const CurrentVersion = 2

// Config holds all configuration. Only Roots and Index reach the engine; UI
// is presentation-layer state carried for the frontend's benefit.
type Config struct {
	Version int           `yaml:"version"`
	Roots   []string      `yaml:"roots"`
	Index   IndexConfig   `yaml:"index"`
	Search  SearchConfig  `yaml:"search"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// IndexConfig controls crawling and tokenization.
type IndexConfig struct {
	Includes  []string `yaml:"includes"`
	Excludes  []string `yaml:"excludes"`
	Stemming  bool     `yaml:"stemming"`
	Stopwords bool     `yaml:"stopwords"`
}

// SearchConfig controls result ranking output.
type SearchConfig struct {
	TopK int `yaml:"top_k"`
}

// UIConfig holds presentation settings. The engine never reads these.
type UIConfig struct {
	FontName string `yaml:"font_name,omitempty"`
	Theme    Theme  `yaml:"theme,omitempty"`
}

// Color is an RGB triple.
type Color struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
}

// Theme supports both historical config shapes: a bare keyword
// (`theme: dark`) and explicit color fields.
type Theme struct {
	Name       string `yaml:"name,omitempty"`
	Background *Color `yaml:"background,omitempty"`
	Foreground *Color `yaml:"foreground,omitempty"`
	Idle       *Color `yaml:"idle,omitempty"`
	Hovered    *Color `yaml:"hovered,omitempty"`
	Clicked    *Color `yaml:"clicked,omitempty"`
}

// UnmarshalYAML accepts either `theme: <keyword>` or a mapping of colors.
func (t *Theme) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		t.Name = value.Value
		return nil
	}
	type themeAlias Theme
	var alias themeAlias
	if err := value.Decode(&alias); err != nil {
		return err
	}
	*t = Theme(alias)
	return nil
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration. The default root is the
// user's documents folder when it can be determined.
func DefaultConfig() *Config {
	cfg := &Config{
		Version: CurrentVersion,
		Index: IndexConfig{
			Includes: []string{"**/*.txt", "**/*.md", "**/*.xml", "**/*.xhtml", "**/*.html"},
			Excludes: []string{"**/.git/**", "**/node_modules/**"},
			Stemming: true,
		},
		Search: SearchConfig{TopK: 20},
		UI: UIConfig{
			Theme: Theme{Name: "dark"},
		},
		Logging: LoggingConfig{Level: "info"},
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.Roots = []string{filepath.Join(home, "Documents")}
	}
	return cfg
}

// Load reads configuration from path, filling anything missing with
// defaults. A missing file yields the defaults without error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()
	return cfg, nil
}

// LoadOrCreate loads the config at path, writing the defaults there first
// when no file exists yet.
func LoadOrCreate(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := cfg.Save(path); err != nil {
			return nil, err
		}
		return cfg, nil
	}
	return Load(path)
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// normalize repairs values an older or hand-edited file may carry.
func (c *Config) normalize() {
	if c.Version == 0 {
		c.Version = 1
	}
	if len(c.Index.Includes) == 0 {
		c.Index.Includes = DefaultConfig().Index.Includes
	}
	if c.Search.TopK <= 0 {
		c.Search.TopK = DefaultConfig().Search.TopK
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// DefaultConfigPath returns the OS-convention location of the config file.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "localsearch", "config.yaml"), nil
}

// DefaultIndexPath returns the OS-convention location of the persisted index.
func DefaultIndexPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "localsearch", "index.db"), nil
}
