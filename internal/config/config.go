package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// UIConfig holds presentation settings.
type UIConfig struct {
	ShowPurchased bool `mapstructure:"show_purchased"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// METACOMPRA_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "metacompra", "metacompra.db"))
	v.SetDefault("ui.show_purchased", true)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("METACOMPRA_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "metacompra"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("METACOMPRA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Preference changes are persisted immediately, not batched.
func Save(cfg Config) error {
	path := os.Getenv("METACOMPRA_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "metacompra", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", cfg.Database.Path)
	v.Set("ui.show_purchased", cfg.UI.ShowPurchased)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
