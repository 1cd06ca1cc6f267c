package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// StarterOption names an option a session wants enabled, by its
// informational name rather than its wire byte - config files are for
// humans. Remote-side starters are requested with DO as soon as the session
// starts; local-side starters are not offered, only accepted when the peer
// sends DO.
type StarterOption struct {
	Name string `mapstructure:"name"`
	Side string `mapstructure:"side"` // "local" or "remote"
}

// Config is telnetlog's full runtime configuration, loaded from a file and
// overridable by environment variables.
type Config struct {
	Listen struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"listen"`

	Dial struct {
		Addr string `mapstructure:"addr"`
	} `mapstructure:"dial"`

	Logging struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"`
	} `mapstructure:"logging"`

	Starters []StarterOption `mapstructure:"starters"`

	ConnectTimeout time.Duration `mapstructure:"connect_timeout"`
}

// Validate checks the configuration invariants telnetlog depends on.
func (c Config) Validate() error {
	var errs []string

	if c.Listen.Addr == "" && c.Dial.Addr == "" {
		errs = append(errs, "either listen.addr or dial.addr must be set")
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[c.Logging.Level] {
		errs = append(errs, fmt.Sprintf("logging.level must be one of [debug, info, warn, error], got %q", c.Logging.Level))
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[c.Logging.Format] {
		errs = append(errs, fmt.Sprintf("logging.format must be one of [json, console], got %q", c.Logging.Format))
	}
	for _, s := range c.Starters {
		if s.Side != "local" && s.Side != "remote" {
			errs = append(errs, fmt.Sprintf("starters: %q has invalid side %q (want local or remote)", s.Name, s.Side))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("listen.addr", ":2323")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("connect_timeout", "10s")
	v.SetDefault("starters", []map[string]string{
		{"name": "ECHO", "side": "local"},
		{"name": "SGA", "side": "local"},
		{"name": "TTYPE", "side": "remote"},
		{"name": "NAWS", "side": "remote"},
	})
}

// LoadConfig reads configuration from path, applies TELNETLOG_-prefixed
// environment overrides, and validates the result. A missing file at path
// is not an error when the caller passed the empty string - defaults and
// the environment still apply.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TELNETLOG")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
