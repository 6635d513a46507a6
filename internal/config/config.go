// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package config loads layered settings for the jsonfix tools.
//
// Settings are merged from the following sources, later sources overriding
// earlier ones:
//
//  1. Built-in defaults.
//  2. A YAML file: the path given in Options.File, else $JSONFIX_CONFIG,
//     else jsonfix.yaml in the working directory if it exists.
//  3. A .env file: Options.DotEnv, else .env in the working directory if it
//     exists. Only variables with the JSONFIX_ prefix are used.
//  4. Environment variables with the JSONFIX_ prefix.
//
// In variable names, "__" separates levels, so JSONFIX_SHARE__BASE_URL sets
// the share.base_url key.
package config

import (
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/creachadair/jsonfix/format"
	"github.com/creachadair/jsonfix/share"
	"github.com/invopop/jsonschema"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/maps"
	"github.com/knadh/koanf/parsers/yaml"
	kenv "github.com/knadh/koanf/providers/env"
	kfile "github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix is the prefix of environment variables read by Load.
	EnvPrefix = "JSONFIX_"

	// EnvFile names the environment variable giving the path of the YAML file.
	EnvFile = EnvPrefix + "CONFIG"

	// DefaultFile is the YAML file read from the working directory, if present.
	DefaultFile = "jsonfix.yaml"

	// DefaultDotEnv is the .env file read from the working directory, if present.
	DefaultDotEnv = ".env"

	levelSep = "__"
)

// Config is the root configuration.
type Config struct {
	Mode     string `koanf:"mode" json:"mode" jsonschema:"enum=beautify,enum=minify,default=beautify,description=Rendering mode for formatted output"`
	Color    string `koanf:"color" json:"color" jsonschema:"enum=auto,enum=always,enum=never,default=auto,description=When to highlight output"`
	LogLevel string `koanf:"log_level" json:"log_level" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=warn"`
	Share    Share  `koanf:"share" json:"share"`
	Watch    Watch  `koanf:"watch" json:"watch"`

	// Source is the path of the YAML file that was loaded, if any.
	Source string `koanf:"-" json:"-"`
}

// Share configures share links.
type Share struct {
	BaseURL   string `koanf:"base_url" json:"base_url" jsonschema:"description=Prefix of generated share links"`
	MaxLength int    `koanf:"max_length" json:"max_length" jsonschema:"default=2000,description=Maximum link length; negative for no limit"`
}

// Watch configures watch mode.
type Watch struct {
	Debounce time.Duration `koanf:"debounce" json:"debounce" jsonschema:"description=Quiet period before a changed file is formatted"`
}

// Default returns the built-in default configuration.
func Default() *Config {
	return &Config{
		Mode:     format.Beautify.String(),
		Color:    "auto",
		LogLevel: "warn",
		Share:    Share{MaxLength: share.DefaultMaxLength},
		Watch:    Watch{Debounce: 300 * time.Millisecond},
	}
}

// Options control where Load looks for settings.
type Options struct {
	File   string // YAML file; if set, it must exist
	DotEnv string // .env file; if set, it must exist
}

// Load reads the configuration described by opts.
func Load(opts Options) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	dotenv, err := findFile(opts.DotEnv, DefaultDotEnv)
	if err != nil {
		return nil, fmt.Errorf("dotenv: %w", err)
	}
	var dotVars map[string]string
	if dotenv != "" {
		dotVars, err = godotenv.Read(dotenv)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", dotenv, err)
		}
	}

	// The YAML path may itself come from the environment or the .env file.
	path := opts.File
	if path == "" {
		path = cmp.Or(os.Getenv(EnvFile), dotVars[EnvFile])
	}
	path, err = findFile(path, DefaultFile)
	if err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	if path != "" {
		if err := k.Load(kfile.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		cfg.Source = path
	}
	if dotVars != nil {
		if err := k.Load(dotEnvProvider(dotVars), nil); err != nil {
			return nil, fmt.Errorf("load %s: %w", dotenv, err)
		}
	}
	if err := k.Load(kenv.Provider(EnvPrefix, levelSep, envKey), nil); err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	// Unmarshaling leaves fields not mentioned by any source at their defaults.
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports an error if any setting of c is invalid.
func (c *Config) Validate() error {
	var errs []error
	if _, err := format.ParseMode(c.Mode); err != nil {
		errs = append(errs, fmt.Errorf("mode: %w", err))
	}
	switch c.Color {
	case "auto", "always", "never":
	default:
		errs = append(errs, fmt.Errorf("color: invalid value %q", c.Color))
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	if c.Watch.Debounce < 0 {
		errs = append(errs, fmt.Errorf("watch.debounce: negative duration %v", c.Watch.Debounce))
	}
	return errors.Join(errs...)
}

// FormatMode returns the configured rendering mode.
func (c *Config) FormatMode() format.Mode {
	m, _ := format.ParseMode(c.Mode)
	return m
}

// SlogLevel returns the configured logging level.
func (c *Config) SlogLevel() slog.Level {
	var lvl slog.Level
	lvl.UnmarshalText([]byte(c.LogLevel))
	return lvl
}

// Encoder returns a share link encoder for the configured settings.
func (c *Config) Encoder() share.Encoder {
	return share.Encoder{BaseURL: c.Share.BaseURL, MaxLength: c.Share.MaxLength}
}

// Schema returns a JSON schema describing the configuration, beautified.
func Schema() (string, error) {
	r := new(jsonschema.Reflector)
	bits, err := json.Marshal(r.Reflect(new(Config)))
	if err != nil {
		return "", err
	}
	res, err := format.Format(string(bits), format.Beautify)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// findFile returns path if it is non-empty, or else fallback if that file
// exists, or else "". An explicitly named path must exist.
func findFile(path, fallback string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", err
		}
		return path, nil
	}
	if _, err := os.Stat(fallback); err == nil {
		return fallback, nil
	}
	return "", nil
}

// envKey maps an environment variable name to a configuration key, with
// levels separated by levelSep. It returns "" for variables that are not
// configuration keys, which the provider then skips.
func envKey(name string) string {
	if !strings.HasPrefix(name, EnvPrefix) || name == EnvFile {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(name, EnvPrefix))
}

// dotEnvProvider is a koanf.Provider for variables read from a .env file.
type dotEnvProvider map[string]string

func (d dotEnvProvider) ReadBytes() ([]byte, error) {
	return nil, errors.New("dotenv provider does not support ReadBytes")
}

func (d dotEnvProvider) Read() (map[string]any, error) {
	flat := make(map[string]any)
	for name, val := range d {
		if key := envKey(name); key != "" {
			flat[key] = val
		}
	}
	return maps.Unflatten(flat, levelSep), nil
}
