package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"github.com/dshills/arbiter/internal/providers"
)

// Config represents the arbiter configuration.
type Config struct {
	Primary         ProviderConfig `json:"primary"`
	Counter         ProviderConfig `json:"counter"`
	Format          string         `json:"format"`
	MaxContextLines int            `json:"maxContextLines"`
	Cache           CacheConfig    `json:"cache"`
	History         HistoryConfig  `json:"history"`
}

// ProviderConfig describes one side's provider.
type ProviderConfig struct {
	Kind           string   `json:"kind"` // "cli" or "bridge"
	Name           string   `json:"name"`
	Command        string   `json:"command,omitempty"`
	Args           []string `json:"args,omitempty"`
	URL            string   `json:"url,omitempty"`
	Vendor         string   `json:"vendor,omitempty"`
	TimeoutSeconds int      `json:"timeoutSeconds,omitempty"`
}

// Spec converts the provider configuration into a providers.Spec.
func (p ProviderConfig) Spec() providers.Spec {
	return providers.Spec{
		Kind:           providers.Kind(p.Kind),
		Name:           p.Name,
		Command:        p.Command,
		Args:           append([]string(nil), p.Args...),
		URL:            p.URL,
		Vendor:         p.Vendor,
		TimeoutSeconds: p.TimeoutSeconds,
	}
}

// CacheConfig controls response caching.
type CacheConfig struct {
	Enabled    bool   `json:"enabled"`
	Dir        string `json:"dir,omitempty"`
	TTLMinutes int    `json:"ttlMinutes"`
}

// HistoryConfig controls debate history persistence.
type HistoryConfig struct {
	Enabled bool   `json:"enabled"`
	Dir     string `json:"dir,omitempty"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Primary: ProviderConfig{
			Kind:           "cli",
			Name:           "Claude",
			Command:        "claude",
			Args:           []string{"-p"},
			Vendor:         "anthropic",
			TimeoutSeconds: 120,
		},
		Counter: ProviderConfig{
			Kind:           "cli",
			Name:           "Codex",
			Command:        "codex",
			Args:           []string{"exec"},
			Vendor:         "openai",
			TimeoutSeconds: 120,
		},
		Format:          "text",
		MaxContextLines: 200,
		Cache: CacheConfig{
			Enabled:    true,
			TTLMinutes: 5,
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for arbiter.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "arbiter"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "arbiter"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "arbiter"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "arbiter"), nil
	default:
		return filepath.Join(home, ".config", "arbiter"), nil
	}
}

// ConfigPath returns the full path to the config file.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Save writes the config to the config file.
func Save(cfg Config) error {
	path, err := ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// Load builds the effective config by merging: defaults <- file <- env <-
// overrides. The overrides map comes from CLI flags (only non-zero values
// should be set).
func Load(overrides map[string]string) (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return LoadFrom(path, overrides)
}

// LoadFrom builds the effective config from an explicit file path. A missing
// file is not an error; the defaults simply stand.
func LoadFrom(path string, overrides map[string]string) (Config, error) {
	cfg, err := readFile(path)
	if err != nil {
		return Config{}, err
	}
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)
	return cfg, nil
}

// File loads the config file merged over defaults, without the environment
// or override layers. Used by `config set` so the saved file reflects only
// deliberate choices.
func File() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	return readFile(path)
}

func readFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Unmarshaling onto the defaults gives JSON merge semantics: absent
		// fields keep their default, present fields (booleans included) win.
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	return cfg, nil
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("ARBITER_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("ARBITER_MAX_CONTEXT_LINES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxContextLines = n
		}
	}
	if v := os.Getenv("ARBITER_CACHE_DIR"); v != "" {
		cfg.Cache.Dir = v
	}
	if v := os.Getenv("ARBITER_CACHE_TTL_MINUTES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.TTLMinutes = n
		}
	}
	if v := os.Getenv("ARBITER_HISTORY_DIR"); v != "" {
		cfg.History.Dir = v
	}
	if v := os.Getenv("ARBITER_PRIMARY_COMMAND"); v != "" {
		cfg.Primary.Command = v
	}
	if v := os.Getenv("ARBITER_COUNTER_COMMAND"); v != "" {
		cfg.Counter.Command = v
	}
	if v := os.Getenv("ARBITER_BRIDGE_URL"); v != "" {
		cfg.Counter.Kind = "bridge"
		cfg.Counter.URL = v
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["maxContextLines"]; ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxContextLines = n
		}
	}
	if v, ok := overrides["cacheDir"]; ok && v != "" {
		cfg.Cache.Dir = v
	}
	if v, ok := overrides["noCache"]; ok && v == "true" {
		cfg.Cache.Enabled = false
	}
	if v, ok := overrides["noHistory"]; ok && v == "true" {
		cfg.History.Enabled = false
	}
}

// SetField sets a single config field by key name. Returns error if key is
// unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "format":
		cfg.Format = value
	case "maxContextLines":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("maxContextLines must be an integer: %w", err)
		}
		cfg.MaxContextLines = n
	case "cache.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("cache.enabled must be a boolean: %w", err)
		}
		cfg.Cache.Enabled = b
	case "cache.dir":
		cfg.Cache.Dir = value
	case "cache.ttlMinutes":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("cache.ttlMinutes must be an integer: %w", err)
		}
		cfg.Cache.TTLMinutes = n
	case "history.enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("history.enabled must be a boolean: %w", err)
		}
		cfg.History.Enabled = b
	case "history.dir":
		cfg.History.Dir = value
	case "primary.command":
		cfg.Primary.Command = value
	case "primary.kind":
		cfg.Primary.Kind = value
	case "primary.url":
		cfg.Primary.URL = value
	case "counter.command":
		cfg.Counter.Command = value
	case "counter.kind":
		cfg.Counter.Kind = value
	case "counter.url":
		cfg.Counter.URL = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}
