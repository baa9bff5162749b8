// Package config loads lobster settings from defaults, an optional YAML
// file and LOBSTER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	defaultAPIBaseURL     = "http://127.0.0.1:8080/api"
	defaultStartPath      = "/"
	defaultLogLevel       = "info"
	defaultServeAddr      = "127.0.0.1:3000"
	defaultStaticDir      = "./web"
	defaultRequestTimeout = 10 * time.Second
)

// Config holds every setting the commands use.
type Config struct {
	APIBaseURL     string        `mapstructure:"api-base-url"`
	StartPath      string        `mapstructure:"start-path"`
	LogLevel       string        `mapstructure:"log-level"`
	LogFile        string        `mapstructure:"log-file"`
	ServeAddr      string        `mapstructure:"serve-addr"`
	StaticDir      string        `mapstructure:"static-dir"`
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
	UseFragment    bool          `mapstructure:"use-fragment"`

	ConfigPath string `mapstructure:"-"`
}

// Load reads the configuration.  An empty configPath looks for
// $HOME/.config/lobster/config.yml and a missing default file is not an
// error; an explicit configPath must exist.
func Load(configPath string) (Config, error) {
	return load(viper.New(), configPath)
}

func load(v *viper.Viper, configPath string) (Config, error) {
	var cfg Config

	v.SetEnvPrefix("LOBSTER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))

	v.SetDefault("api-base-url", defaultAPIBaseURL)
	v.SetDefault("start-path", defaultStartPath)
	v.SetDefault("log-level", defaultLogLevel)
	v.SetDefault("log-file", "")
	v.SetDefault("serve-addr", defaultServeAddr)
	v.SetDefault("static-dir", defaultStaticDir)
	v.SetDefault("request-timeout", defaultRequestTimeout)
	v.SetDefault("use-fragment", false)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.SetConfigFile(filepath.Join(home, ".config", "lobster", "config.yml"))
	}

	// only the implicit default file may be absent
	if v.ConfigFileUsed() != "" {
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			missing := errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
			if configPath != "" || !missing {
				return cfg, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	cfg.ConfigPath = v.ConfigFileUsed()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that cannot be fixed up silently.
func (c Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid api-base-url: %q", c.APIBaseURL)
	}
	if !strings.HasPrefix(c.StartPath, "/") {
		return fmt.Errorf("invalid start-path: %q must start with /", c.StartPath)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid request-timeout: %s", c.RequestTimeout)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("invalid log-level: %q", s)
}
