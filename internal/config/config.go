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
	Profile ProfileConfig
	UI      UIConfig
	Seed    SeedConfig
}

// ProfileConfig holds the local actor's identity tags.
type ProfileConfig struct {
	Name     string `mapstructure:"name"`
	OrgType  string `mapstructure:"org_type"`
	Verified bool   `mapstructure:"verified"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	TimeFormat     string `mapstructure:"time_format"`
	CurrencySymbol string `mapstructure:"currency_symbol"`
	Timezone       string `mapstructure:"timezone"`
}

// SeedConfig controls the demo catalogue.
type SeedConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration from file and env. Env var overrides use prefix FOODBRIDGE_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("profile.name", "Vous")
	v.SetDefault("profile.org_type", "Association")
	v.SetDefault("profile.verified", false)
	v.SetDefault("ui.time_format", "15:04")
	v.SetDefault("ui.currency_symbol", "€")
	v.SetDefault("ui.timezone", "Europe/Paris")
	v.SetDefault("seed.enabled", true)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("FOODBRIDGE_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "foodbridge"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("FOODBRIDGE")
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
// needed. Used by the profile screen for non-sensitive preferences.
func Save(cfg Config) error {
	path := os.Getenv("FOODBRIDGE_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "foodbridge", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("profile.name", cfg.Profile.Name)
	v.Set("profile.org_type", cfg.Profile.OrgType)
	v.Set("profile.verified", cfg.Profile.Verified)
	v.Set("ui.time_format", cfg.UI.TimeFormat)
	v.Set("ui.currency_symbol", cfg.UI.CurrencySymbol)
	v.Set("ui.timezone", cfg.UI.Timezone)
	v.Set("seed.enabled", cfg.Seed.Enabled)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
