// Package config loads client settings from defaults, an optional YAML
// file, a .env file, SCHEDULEASE_* environment variables and command-line
// flags, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SCHEDULEASE"

type Config struct {
	API APIConfig `mapstructure:"api"`
	DB  DBConfig  `mapstructure:"db"`
	Log LogConfig `mapstructure:"log"`
}

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type DBConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	File   string `mapstructure:"file"`
}

// FlagBindings maps config keys to the flag names that override them.
var FlagBindings = map[string]string{
	"api.base_url": "api-url",
	"db.path":      "db",
	"log.level":    "log-level",
}

// Options controls where Load looks.
type Options struct {
	// File is an explicit config file. When empty the default location is
	// tried and a missing file is not an error.
	File string
	// DotEnv is the .env file to load. Defaults to ".env" in the working
	// directory; a missing file is ignored.
	DotEnv string
	// Flags, when set, override config values for the flags that were
	// changed.
	Flags *pflag.FlagSet
}

// Load builds the configuration.
func Load(opts Options) (*Config, error) {
	dotEnv := opts.DotEnv
	if dotEnv == "" {
		dotEnv = ".env"
	}
	if err := godotenv.Load(dotEnv); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", dotEnv, err)
	}

	v := viper.New()

	v.SetDefault("api.base_url", "http://localhost:8000")
	v.SetDefault("api.timeout", "15s")
	v.SetDefault("db.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultDir())
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if opts.Flags != nil {
		for key, name := range FlagBindings {
			if f := opts.Flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("bind flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || opts.File != "" {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the values Load cannot default away.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid config: api.base_url %q is not an absolute URL", c.API.BaseURL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("invalid config: api.timeout must not be negative")
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("invalid config: log.format must be json or console, got %q", c.Log.Format)
	}
	return nil
}

// DefaultDir returns $XDG_CONFIG_HOME/schedulease (or ~/.config/schedulease).
func DefaultDir() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "schedulease")
}
