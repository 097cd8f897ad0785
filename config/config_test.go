package config

import (
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"testing"

	"github.com/kbukum/rxkit/errors"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("development enables debug", func(t *testing.T) {
		cfg := ServiceConfig{Name: "juicer"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" || !cfg.Debug {
			t.Errorf("expected development with debug, got %q debug=%v", cfg.Environment, cfg.Debug)
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected debug logging, got %q", cfg.Logging.Level)
		}
		if cfg.Logging.ServiceName != "juicer" || cfg.Stream.Name != "juicer" {
			t.Errorf("expected service name propagated, got logging=%q stream=%q",
				cfg.Logging.ServiceName, cfg.Stream.Name)
		}
	})

	t.Run("production keeps info logging", func(t *testing.T) {
		cfg := ServiceConfig{Name: "juicer", Environment: "production"}
		cfg.ApplyDefaults()
		if cfg.Debug {
			t.Error("expected debug=false for production")
		}
		if cfg.Logging.Level != "info" {
			t.Errorf("expected info logging, got %q", cfg.Logging.Level)
		}
	})
}

func TestServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*ServiceConfig)
		section string
	}{
		{"valid", func(*ServiceConfig) {}, ""},
		{"missing name", func(c *ServiceConfig) { c.Name = "" }, "service"},
		{"bad environment", func(c *ServiceConfig) { c.Environment = "qa" }, "service"},
		{"bad log level", func(c *ServiceConfig) { c.Logging.Level = "loud" }, "logging"},
		{"missing stream name", func(c *ServiceConfig) { c.Stream.Name = "" }, "service"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := ServiceConfig{Name: "juicer"}
			cfg.ApplyDefaults()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.section == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			appErr, ok := errors.AsAppError(err)
			if !ok || appErr.Code != errors.ErrCodeInvalidConfig {
				t.Fatalf("expected INVALID_CONFIG, got %v", err)
			}
			if appErr.Details["section"] != tc.section {
				t.Errorf("expected section %q, got %v", tc.section, appErr.Details["section"])
			}
		})
	}
}

func TestLoadConfigWithYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", `
name: juicer
environment: staging
logging:
  level: warn
  format: json
stream:
  name: press
  tracing: true
`)

	var cfg ServiceConfig
	if err := LoadConfig("juicer", &cfg, WithConfigFile(path)); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "juicer" || cfg.Environment != "staging" {
		t.Errorf("unexpected service fields %+v", cfg)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.Format != "json" {
		t.Errorf("unexpected logging section %+v", cfg.Logging)
	}
	if cfg.Stream.Name != "press" || !cfg.Stream.Tracing {
		t.Errorf("unexpected stream section %+v", cfg.Stream)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "config.yml", "name: juicer\nstream:\n  metrics: false\n")

	t.Setenv("JUICER_STREAM_METRICS", "true")
	t.Setenv("JUICER_LOGGING_LEVEL", "error")

	var cfg ServiceConfig
	if err := LoadConfig("juicer", &cfg, WithConfigFile(path), WithEnvPrefix("juicer")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.Stream.Metrics {
		t.Error("expected env to enable stream metrics")
	}
	if cfg.Logging.Level != "error" {
		t.Errorf("expected env log level 'error', got %q", cfg.Logging.Level)
	}
}

func TestLoadConfigEnvFile(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "RXKIT_TEST_NAME=from-dotenv\n")
	t.Cleanup(func() { os.Unsetenv("RXKIT_TEST_NAME") })

	var cfg ServiceConfig
	err := LoadConfig("juicer", &cfg,
		WithConfigFile(filepath.Join(dir, "missing.yml")),
		WithEnvFile(envPath),
		WithEnvPrefix("rxkit_test"),
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Name != "from-dotenv" {
		t.Errorf("expected name from .env, got %q", cfg.Name)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	var cfg ServiceConfig
	if err := LoadConfig("nonexistent", &cfg, WithConfigFile("/nonexistent/path.yml")); err != nil {
		t.Fatalf("expected LoadConfig to succeed with missing file, got %v", err)
	}
}

type mockFS struct {
	files map[string]bool
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }
func (m *mockFS) LoadEnv(string) error    { return nil }

func TestResolverSearchOrder(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/juicer/config.yml": true,
		"./config.yml":            true,
		"./.env":                  true,
	}}
	resolver := &Resolver{FileSystem: fs}
	files := resolver.ResolveFiles("juicer", LoaderConfig{})
	if files.ConfigFile != "./cmd/juicer/config.yml" {
		t.Errorf("expected cmd config first, got %q", files.ConfigFile)
	}
	if files.EnvFile != "./.env" {
		t.Errorf("expected root .env, got %q", files.EnvFile)
	}

	explicit := resolver.ResolveFiles("juicer", LoaderConfig{ConfigFile: "custom.yml"})
	if explicit.ConfigFile != "custom.yml" {
		t.Errorf("expected explicit path kept, got %q", explicit.ConfigFile)
	}
}

func TestStructKeys(t *testing.T) {
	type inner struct {
		Level string `mapstructure:"level"`
	}
	type base struct {
		Name string `mapstructure:"name"`
	}
	type sample struct {
		base    `mapstructure:",squash"`
		Base    base   `mapstructure:",squash"`
		Logging inner  `mapstructure:"logging"`
		Skipped string `mapstructure:"-"`
		Plain   int
	}
	got := structKeys(reflect.TypeOf(&sample{}), "")
	want := []string{"name", "logging.level", "plain"}
	if !slices.Equal(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "book.yml", "items:\n  - apple\n  - banana\n")

	var book struct {
		Items []string `mapstructure:"items"`
	}
	if err := LoadFile(path, &book); err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if !slices.Equal(book.Items, []string{"apple", "banana"}) {
		t.Errorf("unexpected items %v", book.Items)
	}

	err := LoadFile(filepath.Join(dir, "missing.yml"), &book)
	if !errors.IsCode(err, errors.ErrCodeInvalidInput) {
		t.Errorf("expected INVALID_INPUT, got %v", err)
	}
}
