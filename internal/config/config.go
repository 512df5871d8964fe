package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration structure.
// It defines which files count as images, spell checking behavior,
// trash handling, and theme colors for the editor.
type Config struct {
	Images struct {
		Extensions []string `yaml:"extensions"` // Accepted image extensions, without dot
	} `yaml:"images"`
	Spell struct {
		Enabled    bool   `yaml:"enabled"`     // Enable spell checking
		DelayMs    int    `yaml:"delay_ms"`    // Debounce delay in milliseconds
		Locale     string `yaml:"locale"`      // Dictionary locale
		Dictionary string `yaml:"dictionary"`  // Path to a word list file; empty = builtin
	} `yaml:"spell"`
	Trash struct {
		DirName string `yaml:"dir_name"` // Trash folder name under the opened root
	} `yaml:"trash"`
	Watch struct {
		Enabled bool `yaml:"enabled"`  // Refresh the collection on external changes
		DelayMs int  `yaml:"delay_ms"` // Debounce delay for refresh, in milliseconds
	} `yaml:"watch"`
	Settings struct {
		Debug bool `yaml:"debug"` // Enable debug logging
	} `yaml:"settings"`
	Theme struct {
		Primary  string `yaml:"primary"`  // Primary color for branding
		Error    string `yaml:"error"`    // Error message color
		Info     string `yaml:"info"`     // Informational message color
		Emphasis string `yaml:"emphasis"` // Emphasis color for text that should stand out
		Sic      string `yaml:"sic"`      // Color for misspelled words
		Border   string `yaml:"border"`   // Border color for frames
	} `yaml:"theme"`
}

// fileConfig mirrors Config for unmarshaling. Booleans are pointers so
// an omitted key is distinguishable from an explicit false and keeps
// its default.
type fileConfig struct {
	Images struct {
		Extensions []string `yaml:"extensions"`
	} `yaml:"images"`
	Spell struct {
		Enabled    *bool  `yaml:"enabled"`
		DelayMs    int    `yaml:"delay_ms"`
		Locale     string `yaml:"locale"`
		Dictionary string `yaml:"dictionary"`
	} `yaml:"spell"`
	Trash struct {
		DirName string `yaml:"dir_name"`
	} `yaml:"trash"`
	Watch struct {
		Enabled *bool `yaml:"enabled"`
		DelayMs int   `yaml:"delay_ms"`
	} `yaml:"watch"`
	Settings struct {
		Debug *bool `yaml:"debug"`
	} `yaml:"settings"`
	Theme struct {
		Primary  string `yaml:"primary"`
		Error    string `yaml:"error"`
		Info     string `yaml:"info"`
		Emphasis string `yaml:"emphasis"`
		Sic      string `yaml:"sic"`
		Border   string `yaml:"border"`
	} `yaml:"theme"`
}

// New returns the default configuration.
func New() *Config {
	return defaultConfig()
}

// LoadConfig loads configuration from the default location
// (~/.config/sidecap/config.yaml).
func LoadConfig() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configPath := filepath.Join(home, ".config", "sidecap", "config.yaml")
	return LoadConfigFile(configPath)
}

// LoadConfigFile loads configuration from a specific file path.
// If the file doesn't exist, returns default configuration.
func LoadConfigFile(path string) (*Config, error) {
	// Start with default configuration
	cfg := defaultConfig()

	// Try to read the config file
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if file doesn't exist
		}
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	// Unmarshal into a temporary config to preserve defaults for unset fields
	var tempCfg fileConfig
	if err := yaml.Unmarshal(data, &tempCfg); err != nil {
		return nil, fmt.Errorf("error parsing config file: %w", err)
	}

	// Merge the loaded config with defaults
	if len(tempCfg.Images.Extensions) > 0 {
		cfg.Images.Extensions = tempCfg.Images.Extensions
	}
	if tempCfg.Spell.Enabled != nil {
		cfg.Spell.Enabled = *tempCfg.Spell.Enabled
	}
	if tempCfg.Spell.DelayMs > 0 {
		cfg.Spell.DelayMs = tempCfg.Spell.DelayMs
	}
	if tempCfg.Spell.Locale != "" {
		cfg.Spell.Locale = tempCfg.Spell.Locale
	}
	if tempCfg.Spell.Dictionary != "" {
		cfg.Spell.Dictionary = tempCfg.Spell.Dictionary
	}
	if tempCfg.Trash.DirName != "" {
		cfg.Trash.DirName = tempCfg.Trash.DirName
	}
	if tempCfg.Watch.Enabled != nil {
		cfg.Watch.Enabled = *tempCfg.Watch.Enabled
	}
	if tempCfg.Watch.DelayMs > 0 {
		cfg.Watch.DelayMs = tempCfg.Watch.DelayMs
	}
	if tempCfg.Settings.Debug != nil {
		cfg.Settings.Debug = *tempCfg.Settings.Debug
	}
	if tempCfg.Theme.Primary != "" {
		cfg.Theme.Primary = tempCfg.Theme.Primary
	}
	if tempCfg.Theme.Error != "" {
		cfg.Theme.Error = tempCfg.Theme.Error
	}
	if tempCfg.Theme.Info != "" {
		cfg.Theme.Info = tempCfg.Theme.Info
	}
	if tempCfg.Theme.Emphasis != "" {
		cfg.Theme.Emphasis = tempCfg.Theme.Emphasis
	}
	if tempCfg.Theme.Sic != "" {
		cfg.Theme.Sic = tempCfg.Theme.Sic
	}
	if tempCfg.Theme.Border != "" {
		cfg.Theme.Border = tempCfg.Theme.Border
	}

	// Validate the final configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns the default configuration with safe defaults.
func defaultConfig() *Config {
	cfg := &Config{}

	cfg.Images.Extensions = []string{"jpg", "jpeg", "png"}

	cfg.Spell.Enabled = true
	cfg.Spell.DelayMs = 200
	cfg.Spell.Locale = "en_US"
	cfg.Spell.Dictionary = ""

	cfg.Trash.DirName = "_deleted"

	cfg.Watch.Enabled = false
	cfg.Watch.DelayMs = 500

	cfg.Settings.Debug = false

	cfg.Theme.Primary = "#7D56F4"
	cfg.Theme.Error = "#FF5555"
	cfg.Theme.Info = "#8BE9FD"
	cfg.Theme.Emphasis = "#F1FA8C"
	cfg.Theme.Sic = "#FF5555"
	cfg.Theme.Border = "#6272A4"

	return cfg
}

// Validate checks the configuration for values that would break the
// editor at runtime.
func (c *Config) Validate() error {
	if len(c.Images.Extensions) == 0 {
		return fmt.Errorf("images.extensions must not be empty")
	}
	for _, ext := range c.Images.Extensions {
		if ext == "" {
			return fmt.Errorf("images.extensions must not contain empty entries")
		}
	}
	if c.Spell.DelayMs < 0 {
		return fmt.Errorf("spell.delay_ms must not be negative")
	}
	if c.Watch.DelayMs < 0 {
		return fmt.Errorf("watch.delay_ms must not be negative")
	}
	if c.Trash.DirName == "" {
		return fmt.Errorf("trash.dir_name must not be empty")
	}
	return nil
}

// Save writes the configuration to the given path, creating parent
// directories as needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(path, data, 0644)
}
