// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/creachadair/jsonfix/format"
	"github.com/creachadair/jsonfix/internal/config"
	"github.com/creachadair/jsonfix/value"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// isolate runs the test in an empty directory with no JSONFIX_ variables set.
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(name, config.EnvPrefix) {
			t.Setenv(name, "")
			os.Unsetenv(name)
		}
	}
	return dir
}

func writeFile(t *testing.T, path, text string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(text), 0600); err != nil {
		t.Fatalf("Write %s: %v", path, err)
	}
}

var ignoreSource = cmpopts.IgnoreFields(config.Config{}, "Source")

func TestDefaults(t *testing.T) {
	isolate(t)
	cfg, err := config.Load(config.Options{})
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Errorf("Load (-want, +got):\n%s", diff)
	}
	if cfg.FormatMode() != format.Beautify {
		t.Errorf("FormatMode: got %v, want %v", cfg.FormatMode(), format.Beautify)
	}
	if cfg.SlogLevel() != slog.LevelWarn {
		t.Errorf("SlogLevel: got %v, want %v", cfg.SlogLevel(), slog.LevelWarn)
	}
	if enc := cfg.Encoder(); enc.MaxLength != 2000 || enc.BaseURL != "" {
		t.Errorf("Encoder: got %+v", enc)
	}
}

func TestLayers(t *testing.T) {
	dir := isolate(t)

	// The working-directory YAML file is found automatically.
	writeFile(t, filepath.Join(dir, config.DefaultFile), `
mode: minify
color: never
share:
  base_url: https://yaml.example.com/
  max_length: 500
watch:
  debounce: 1s
`)
	// The .env file overrides YAML.
	writeFile(t, filepath.Join(dir, config.DefaultDotEnv), `
JSONFIX_SHARE__BASE_URL=https://dotenv.example.com/
JSONFIX_LOG_LEVEL=info
UNRELATED=ignored
`)
	// The environment overrides both.
	t.Setenv("JSONFIX_LOG_LEVEL", "debug")
	t.Setenv("JSONFIX_SHARE__MAX_LENGTH", "100")

	cfg, err := config.Load(config.Options{})
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	want := &config.Config{
		Mode:     "minify",
		Color:    "never",
		LogLevel: "debug",
		Share:    config.Share{BaseURL: "https://dotenv.example.com/", MaxLength: 100},
		Watch:    config.Watch{Debounce: time.Second},
	}
	if diff := cmp.Diff(want, cfg, ignoreSource); diff != "" {
		t.Errorf("Load (-want, +got):\n%s", diff)
	}
	if cfg.Source != config.DefaultFile {
		t.Errorf("Source: got %q, want %q", cfg.Source, config.DefaultFile)
	}
}

func TestExplicitFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "other.yaml")
	writeFile(t, path, "mode: minify\n")

	cfg, err := config.Load(config.Options{File: path})
	if err != nil {
		t.Fatalf("Load: unexpected error: %v", err)
	}
	if cfg.FormatMode() != format.Minify || cfg.Source != path {
		t.Errorf("Load: got mode %q from %q", cfg.Mode, cfg.Source)
	}

	// The path may also come from the environment.
	t.Setenv(config.EnvFile, path)
	if cfg, err := config.Load(config.Options{}); err != nil {
		t.Errorf("Load via %s: unexpected error: %v", config.EnvFile, err)
	} else if cfg.Source != path {
		t.Errorf("Load via %s: source %q, want %q", config.EnvFile, cfg.Source, path)
	}

	// A named file that does not exist is an error.
	if _, err := config.Load(config.Options{File: filepath.Join(dir, "nonesuch.yaml")}); err == nil {
		t.Error("Load of missing file: got nil, want error")
	}
	if _, err := config.Load(config.Options{DotEnv: filepath.Join(dir, "nonesuch.env")}); err == nil {
		t.Error("Load of missing .env: got nil, want error")
	}
}

func TestInvalid(t *testing.T) {
	tests := []struct {
		name, yaml, msg string
	}{
		{"mode", "mode: pretty\n", "mode"},
		{"color", "color: sometimes\n", "color"},
		{"level", "log_level: loud\n", "log_level"},
		{"debounce", "watch:\n  debounce: -1s\n", "watch.debounce"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dir := isolate(t)
			writeFile(t, filepath.Join(dir, config.DefaultFile), tc.yaml)
			_, err := config.Load(config.Options{})
			if err == nil {
				t.Fatal("Load: got nil, want error")
			}
			if !strings.Contains(err.Error(), tc.msg) {
				t.Errorf("Load: error %q does not mention %q", err, tc.msg)
			}
		})
	}
}

func TestSchema(t *testing.T) {
	text, err := config.Schema()
	if err != nil {
		t.Fatalf("Schema: %v", err)
	}
	v, err := value.Parse(text)
	if err != nil {
		t.Fatalf("Schema is not valid JSON: %v", err)
	}
	if !strings.Contains(text, "\n  ") {
		t.Errorf("Schema is not beautified:\n%s", text)
	}
	for _, key := range []string{"mode", "color", "log_level", "share", "watch", "base_url", "max_length", "debounce"} {
		if !strings.Contains(text, `"`+key+`"`) {
			t.Errorf("Schema does not mention %q", key)
		}
	}
	if _, ok := v.(*value.Object); !ok {
		t.Errorf("Schema: got %T, want object", v)
	}
}
