package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kbukum/syncflow/errors"
)

func TestServiceConfigApplyDefaults(t *testing.T) {
	t.Run("empty environment defaults to development", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc"}
		cfg.ApplyDefaults()
		if cfg.Environment != "development" {
			t.Errorf("expected 'development', got %q", cfg.Environment)
		}
		if !cfg.Debug {
			t.Error("expected debug=true for development")
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected debug logging in development, got %q", cfg.Logging.Level)
		}
		if cfg.Logging.ServiceName != "svc" {
			t.Errorf("expected service name propagated to logging, got %q", cfg.Logging.ServiceName)
		}
	})

	t.Run("production keeps debug false", func(t *testing.T) {
		cfg := ServiceConfig{Name: "svc", Environment: "production"}
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
	valid := func(mut func(*ServiceConfig)) ServiceConfig {
		cfg := ServiceConfig{Name: "svc", Environment: "staging"}
		mut(&cfg)
		cfg.ApplyDefaults()
		return cfg
	}
	tests := []struct {
		name   string
		cfg    ServiceConfig
		errMsg string
	}{
		{"valid", valid(func(*ServiceConfig) {}), ""},
		{"missing name", valid(func(c *ServiceConfig) { c.Name = "" }), "name: is required"},
		{"invalid environment", valid(func(c *ServiceConfig) { c.Environment = "qa" }), "environment: must be one of"},
		{"invalid log level", valid(func(c *ServiceConfig) { c.Logging.Level = "loud" }), "config.logging: logging.level"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.errMsg) {
				t.Errorf("expected error containing %q, got %q", tc.errMsg, err.Error())
			}
		})
	}
}

type testConfig struct {
	ServiceConfig `yaml:",inline" mapstructure:",squash"`
	Demo          struct {
		MaxValue int    `mapstructure:"max_value"`
		Mode     string `mapstructure:"mode"`
	} `mapstructure:"demo"`
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigWithYAML(t *testing.T) {
	path := writeConfig(t, `
name: flowdemo
environment: staging
logging:
  level: warn
demo:
  max_value: 100
  mode: fizzbuzz
`)

	var cfg testConfig
	if err := LoadConfig("flowdemo", &cfg, WithConfigFile(path), WithEnvPrefix("SYNCFLOWTEST")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Name != "flowdemo" || cfg.Environment != "staging" {
		t.Errorf("unexpected service config: %+v", cfg.ServiceConfig)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("expected logging.level 'warn', got %q", cfg.Logging.Level)
	}
	if cfg.Demo.MaxValue != 100 || cfg.Demo.Mode != "fizzbuzz" {
		t.Errorf("unexpected demo section: %+v", cfg.Demo)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	path := writeConfig(t, "name: flowdemo\ndemo:\n  max_value: 100\n")
	t.Setenv("SYNCFLOWTEST_DEMO_MAX_VALUE", "42")
	t.Setenv("SYNCFLOWTEST_LOGGING_FORMAT", "json")
	t.Setenv("DEMO_MODE", "unprefixed")

	var cfg testConfig
	if err := LoadConfig("flowdemo", &cfg, WithConfigFile(path), WithEnvPrefix("SYNCFLOWTEST_")); err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Demo.MaxValue != 42 {
		t.Errorf("expected env override 42, got %d", cfg.Demo.MaxValue)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("expected logging.format 'json', got %q", cfg.Logging.Format)
	}
	if cfg.Demo.Mode != "" {
		t.Errorf("expected unprefixed variable to be ignored, got %q", cfg.Demo.Mode)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "name: flowdemo\ndemo:\n  max_value: 0\n")
	defaults := map[string]any{
		"demo.max_value": 100,
		"demo.mode":      "fizzbuzz",
		"environment":    "staging",
	}

	var cfg testConfig
	err := LoadConfig("flowdemo", &cfg, WithConfigFile(path), WithDefaults(defaults), WithEnvPrefix("SYNCFLOWTEST_NONE"))
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Demo.MaxValue != 0 {
		t.Errorf("expected explicit zero to win over the default, got %d", cfg.Demo.MaxValue)
	}
	if cfg.Demo.Mode != "fizzbuzz" || cfg.Environment != "staging" {
		t.Errorf("expected defaults for absent keys, got mode=%q environment=%q", cfg.Demo.Mode, cfg.Environment)
	}
}

func TestLoadConfigExplicitFileMissing(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("flowdemo", &cfg, WithConfigFile("/nonexistent/path.yml"))
	if !errors.HasCode(err, errors.ErrCodeInvalidInput) {
		t.Fatalf("expected INVALID_INPUT for a missing explicit file, got %v", err)
	}
}

func TestLoadConfigNothingFound(t *testing.T) {
	var cfg testConfig
	err := LoadConfig("flowdemo", &cfg, WithFileSystem(&mockFS{}), WithEnvPrefix("SYNCFLOWTEST_NONE"))
	if err != nil {
		t.Fatalf("expected success with no files, got %v", err)
	}
	if cfg.Name != "" {
		t.Errorf("expected empty config, got %+v", cfg.ServiceConfig)
	}
}

type mockFS struct {
	files  map[string]bool
	loaded []string
}

func (m *mockFS) Exists(path string) bool { return m.files[path] }

func (m *mockFS) LoadEnv(path string) error {
	m.loaded = append(m.loaded, path)
	return nil
}

func TestResolveFiles(t *testing.T) {
	fs := &mockFS{files: map[string]bool{
		"./cmd/flowdemo/config.yml": true,
		"./config.yml":              true,
		"./config/.env":             true,
		"./.env.flowdemo":           true,
	}}

	got := ResolveFiles("flowdemo", LoaderConfig{FileSystem: fs})
	want := ResolvedFiles{ConfigFile: "./cmd/flowdemo/config.yml", EnvFile: "./.env.flowdemo"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("resolved files mismatch (-want +got):\n%s", diff)
	}

	got = ResolveFiles("flowdemo", LoaderConfig{FileSystem: fs, ConfigFile: "x.yml", EnvFile: "y.env"})
	if got.ConfigFile != "x.yml" || got.EnvFile != "y.env" {
		t.Errorf("expected explicit paths to win, got %+v", got)
	}
}

func TestLoadConfigLoadsEnvFile(t *testing.T) {
	fs := &mockFS{files: map[string]bool{"./.env": true}}
	var cfg testConfig
	if err := LoadConfig("flowdemo", &cfg, WithFileSystem(fs), WithEnvPrefix("SYNCFLOWTEST_NONE")); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"./.env"}, fs.loaded); diff != "" {
		t.Errorf("env files loaded mismatch (-want +got):\n%s", diff)
	}
}

func TestEnvKeyVariants(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"NAME", []string{"name"}},
		{"LOGGING_LEVEL", []string{"logging_level", "logging.level"}},
		{"DEMO_MAX_VALUE", []string{"demo_max_value", "demo.max_value", "demo.max.value", "demo_max.value"}},
	}
	for _, tc := range tests {
		if diff := cmp.Diff(tc.want, envKeyVariants(tc.in)); diff != "" {
			t.Errorf("envKeyVariants(%q) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestLoaderOptions(t *testing.T) {
	var lc LoaderConfig
	fs := &mockFS{}
	WithFileSystem(fs)(&lc)
	WithConfigFile("/path/to/config.yml")(&lc)
	WithEnvFile("/path/to/.env")(&lc)
	WithEnvPrefix("flowdemo_")(&lc)

	if lc.FileSystem != fs || lc.ConfigFile != "/path/to/config.yml" || lc.EnvFile != "/path/to/.env" {
		t.Errorf("unexpected loader config: %+v", lc)
	}
	if lc.EnvPrefix != "FLOWDEMO" {
		t.Errorf("expected normalized prefix FLOWDEMO, got %q", lc.EnvPrefix)
	}
}
