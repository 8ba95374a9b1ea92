package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kbukum/syncflow/errors"
	"github.com/kbukum/syncflow/logger"
)

// FileSystem abstracts the file operations of the loader for tests.
type FileSystem interface {
	Exists(path string) bool
	LoadEnv(path string) error
}

// RealFileSystem implements FileSystem on the OS.
type RealFileSystem struct{}

func (RealFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (RealFileSystem) LoadEnv(path string) error {
	return godotenv.Load(path)
}

// ResolvedFiles contains the resolved config and env file paths.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// LoaderConfig holds dependencies and optional file overrides.
type LoaderConfig struct {
	FileSystem FileSystem
	ConfigFile string // Explicit config file path; must exist when set.
	EnvFile    string // Explicit .env file path; must exist when set.
	EnvPrefix  string // Only environment variables with this prefix are bound.
	Defaults   map[string]any
}

// LoaderOption is a functional option for LoadConfig.
type LoaderOption func(*LoaderConfig)

// WithFileSystem sets a custom filesystem for the loader.
func WithFileSystem(fs FileSystem) LoaderOption {
	return func(lc *LoaderConfig) { lc.FileSystem = fs }
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.ConfigFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvFile = path }
}

// WithEnvPrefix restricts environment binding to PREFIX_* variables; the
// prefix is stripped before the key is mapped (FLOWDEMO_LOGGING_LEVEL
// sets logging.level).
func WithEnvPrefix(prefix string) LoaderOption {
	return func(lc *LoaderConfig) { lc.EnvPrefix = strings.ToUpper(strings.TrimSuffix(prefix, "_")) }
}

// WithDefaults registers fallback values by dotted key (telemetry.sample_rate).
// Unlike zero checks after loading, a key explicitly set to its zero value
// in a file or the environment keeps that value.
func WithDefaults(defaults map[string]any) LoaderOption {
	return func(lc *LoaderConfig) {
		if lc.Defaults == nil {
			lc.Defaults = make(map[string]any, len(defaults))
		}
		for k, v := range defaults {
			lc.Defaults[k] = v
		}
	}
}

// ResolveFiles returns the explicit paths from opts, searching the standard
// locations for whichever was not given.
func ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	resolved := ResolvedFiles{ConfigFile: opts.ConfigFile, EnvFile: opts.EnvFile}
	if resolved.ConfigFile == "" {
		resolved.ConfigFile = firstExisting(opts.FileSystem, configSearchPaths(serviceName))
	}
	if resolved.EnvFile == "" {
		resolved.EnvFile = firstExisting(opts.FileSystem, envSearchPaths(serviceName))
	}
	return resolved
}

func configSearchPaths(serviceName string) []string {
	return []string{
		"./cmd/" + serviceName + "/config.yml",
		"../cmd/" + serviceName + "/config.yml",
		"../../cmd/" + serviceName + "/config.yml",
		"./config/config.yml",
		"./config.yml",
	}
}

func envSearchPaths(serviceName string) []string {
	var paths []string
	for _, name := range []string{".env." + serviceName, ".env"} {
		for _, dir := range []string{"./cmd/" + serviceName, "../cmd/" + serviceName, "./config", "."} {
			paths = append(paths, dir+"/"+name)
		}
	}
	return paths
}

func firstExisting(fs FileSystem, paths []string) string {
	for _, path := range paths {
		if fs.Exists(path) {
			return path
		}
	}
	return ""
}

// LoadConfig loads configuration for a service into cfg.
//
// Sources, from lowest to highest precedence: WithDefaults, the YAML config file, the
// process environment, then the .env file. Files found by searching are
// optional and produce a warning when unreadable; explicit files are
// required.
func LoadConfig(serviceName string, cfg any, opts ...LoaderOption) error {
	lc := LoaderConfig{FileSystem: RealFileSystem{}}
	for _, opt := range opts {
		opt(&lc)
	}

	files := ResolveFiles(serviceName, lc)
	log := logger.WithComponent("config")
	v := viper.New()
	for key, value := range lc.Defaults {
		v.SetDefault(key, value)
	}

	if files.ConfigFile != "" {
		v.SetConfigFile(files.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			if lc.ConfigFile != "" {
				return errors.InvalidInput("config_file", "cannot be read").
					WithDetail("path", files.ConfigFile).WithCause(err)
			}
			log.Warn("ignoring unreadable config file", logger.ErrorFields("read_config", err))
		}
	}

	bindEnv(v, lc.EnvPrefix)

	if files.EnvFile != "" {
		if err := lc.FileSystem.LoadEnv(files.EnvFile); err != nil {
			if lc.EnvFile != "" {
				return errors.InvalidInput("env_file", "cannot be loaded").
					WithDetail("path", files.EnvFile).WithCause(err)
			}
			log.Warn("ignoring unreadable env file", logger.ErrorFields("load_env", err))
		} else {
			bindEnv(v, lc.EnvPrefix)
		}
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("config: unmarshal for service %s: %w", serviceName, err)
	}
	return nil
}

// bindEnv sets every matching environment variable on v under each nested
// key it could address.
func bindEnv(v *viper.Viper, prefix string) {
	for _, env := range os.Environ() {
		key, value, ok := strings.Cut(env, "=")
		if !ok {
			continue
		}
		if prefix != "" {
			rest, found := strings.CutPrefix(key, prefix+"_")
			if !found {
				continue
			}
			key = rest
		}
		for _, variant := range envKeyVariants(key) {
			v.Set(variant, value)
		}
	}
}

// envKeyVariants maps an env var name onto the config keys it may address.
// Every split point between sections is tried since keys themselves may
// contain underscores:
//
//	DEMO_MAX_VALUE -> [demo_max_value, demo.max_value, demo.max.value, demo_max.value]
func envKeyVariants(envKey string) []string {
	lower := strings.ToLower(envKey)
	parts := strings.Split(lower, "_")
	if len(parts) == 1 {
		return []string{lower}
	}

	variants := []string{lower}
	for i := 1; i < len(parts); i++ {
		variants = append(variants, strings.Join(parts[:i], ".")+"."+strings.Join(parts[i:], "_"))
	}
	variants = append(variants, strings.Join(parts, "."))
	for i := len(parts) - 1; i > 1; i-- {
		variants = append(variants, strings.Join(parts[:i], "_")+"."+strings.Join(parts[i:], "."))
	}
	return dedupe(variants)
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}
