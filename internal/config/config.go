package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Log     LogConfig
	Journal JournalConfig
	Search  SearchConfig
	UI      UIConfig
}

// LogConfig holds logger settings. An empty Path disables logging.
type LogConfig struct {
	Level string
	Path  string
}

// JournalConfig controls the session journal and the History action.
type JournalConfig struct {
	Enabled bool
	Limit   int
}

// SearchConfig holds name search settings.
type SearchConfig struct {
	Suggest bool
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Accent string
}

// Load reads configuration from file and env. Env var overrides use prefix STUDENTDB_.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.path", "")
	v.SetDefault("journal.enabled", true)
	v.SetDefault("journal.limit", 20)
	v.SetDefault("search.suggest", true)
	v.SetDefault("ui.accent", "#f5c2e7")

	v.SetConfigType("toml")

	if cfgPath := os.Getenv("STUDENTDB_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(configHome(), "studentdb"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("STUDENTDB")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// a missing default config file is fine; a broken or missing explicit one is not
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Journal.Limit < 0 {
		return Config{}, fmt.Errorf("journal.limit must not be negative, got %d", c.Journal.Limit)
	}
	return c, nil
}

func configHome() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return xdg
	}
	return filepath.Join(os.Getenv("HOME"), ".config")
}
