// Package config loads memo settings from defaults, an optional YAML file,
// a .env file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables read by Load.
const (
	EnvDB        = "MEMO_DB"
	EnvConfig    = "MEMO_CONFIG"
	EnvLogLevel  = "MEMO_LOG_LEVEL"
	EnvLogFormat = "MEMO_LOG_FORMAT"
)

// Config holds the resolved settings.
type Config struct {
	DBPath    string `yaml:"db_path" validate:"required"`
	LogLevel  string `yaml:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `yaml:"log_format" validate:"oneof=console json"`
}

var validate = validator.New()

// Dir returns the directory holding the default database and config file.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".memo")
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		DBPath:    filepath.Join(Dir(), "memos.db"),
		LogLevel:  "warn",
		LogFormat: "console",
	}
}

// Load resolves settings. path names a YAML file; when empty, $MEMO_CONFIG and
// then ~/.memo/config.yaml are tried. An explicitly named file must exist; the
// default one is optional. A .env file in the working directory is loaded
// without overriding variables already set.
func Load(path string) (Config, error) {
	cfg := Default()

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, fmt.Errorf("load .env: %w", err)
	}

	explicit := path != ""
	if !explicit {
		if env := os.Getenv(EnvConfig); env != "" {
			path, explicit = env, true
		} else {
			path = filepath.Join(Dir(), "config.yaml")
		}
	}
	if err := cfg.mergeFile(path, explicit); err != nil {
		return cfg, err
	}

	cfg.mergeEnv()

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string, required bool) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) mergeEnv() {
	if v := os.Getenv(EnvDB); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.LogFormat = v
	}
}

// Validate checks the resolved settings.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s fails %q (got %q)", fe.Field(), fe.Tag(), fe.Value())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
