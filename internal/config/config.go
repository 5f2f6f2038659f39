package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/dshills/phiscrub/internal/bridge"
	"github.com/dshills/phiscrub/internal/browser"
	"github.com/dshills/phiscrub/internal/inject"
	"github.com/dshills/phiscrub/internal/ollama"
	"github.com/dshills/phiscrub/internal/scrub"
)

// DefaultAgentAddr is where the page-side agent listens.
const DefaultAgentAddr = "127.0.0.1:8765"

// Config represents the phiscrub configuration.
type Config struct {
	OllamaHost   string    `json:"ollamaHost"`
	Model        string    `json:"model"`
	ModelFamily  string    `json:"modelFamily"`
	Format       string    `json:"format"`
	AllowedHosts []string  `json:"allowedHosts"`
	CDPURL       string    `json:"cdpURL"`
	AgentAddr    string    `json:"agentAddr"`
	Log          LogConfig `json:"log"`
}

// LogConfig controls the diagnostic logger.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		OllamaHost:   ollama.DefaultHost,
		Model:        scrub.DefaultModel,
		ModelFamily:  scrub.DefaultFamily,
		Format:       "text",
		AllowedHosts: inject.DefaultAllowedHosts(),
		CDPURL:       browser.DefaultCDPURL,
		AgentAddr:    DefaultAgentAddr,
		Log: LogConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}

// ConfigDir returns the platform-appropriate config directory for phiscrub.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "phiscrub"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "phiscrub"), nil
	case "windows":
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "phiscrub"), nil
		}
		return filepath.Join(home, "AppData", "Roaming", "phiscrub"), nil
	default:
		return filepath.Join(home, ".config", "phiscrub"), nil
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

// LoadFile loads config from the config file. Returns zero Config and nil error if file doesn't exist.
func LoadFile() (Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("reading config file: %w", err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file: %w", err)
	}
	return cfg, nil
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

// Load builds the effective config by merging: defaults <- file <- env <- overrides.
// The overrides map comes from CLI flags (only non-zero values should be set).
func Load(overrides map[string]string) (Config, error) {
	cfg := Default()

	fileCfg, err := LoadFile()
	if err != nil {
		return Config{}, err
	}
	MergeFile(&cfg, fileCfg)
	mergeEnv(&cfg)
	mergeOverrides(&cfg, overrides)

	return cfg, nil
}

// MergeFile copies the non-zero fields of src onto dst.
func MergeFile(dst *Config, src Config) {
	if src.OllamaHost != "" {
		dst.OllamaHost = src.OllamaHost
	}
	if src.Model != "" {
		dst.Model = src.Model
	}
	if src.ModelFamily != "" {
		dst.ModelFamily = src.ModelFamily
	}
	if src.Format != "" {
		dst.Format = src.Format
	}
	if len(src.AllowedHosts) > 0 {
		dst.AllowedHosts = src.AllowedHosts
	}
	if src.CDPURL != "" {
		dst.CDPURL = src.CDPURL
	}
	if src.AgentAddr != "" {
		dst.AgentAddr = src.AgentAddr
	}
	if src.Log.Level != "" {
		dst.Log.Level = src.Log.Level
	}
	if src.Log.Format != "" {
		dst.Log.Format = src.Log.Format
	}
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("OLLAMA_HOST"); v != "" {
		cfg.OllamaHost = v
	}
	if v := os.Getenv("PHISCRUB_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("PHISCRUB_FORMAT"); v != "" {
		cfg.Format = v
	}
	if v := os.Getenv("PHISCRUB_CDP_URL"); v != "" {
		cfg.CDPURL = v
	}
	if v := os.Getenv("PHISCRUB_AGENT_ADDR"); v != "" {
		cfg.AgentAddr = v
	}
	if v := os.Getenv("PHISCRUB_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) {
	if overrides == nil {
		return
	}
	if v, ok := overrides["ollamaHost"]; ok && v != "" {
		cfg.OllamaHost = v
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["format"]; ok && v != "" {
		cfg.Format = v
	}
	if v, ok := overrides["cdpURL"]; ok && v != "" {
		cfg.CDPURL = v
	}
	if v, ok := overrides["agentAddr"]; ok && v != "" {
		cfg.AgentAddr = v
	}
	if v, ok := overrides["logLevel"]; ok && v != "" {
		cfg.Log.Level = v
	}
}

// SetField sets a single config field by key name. Returns error if key is unknown.
func SetField(cfg *Config, key, value string) error {
	switch key {
	case "ollamaHost":
		cfg.OllamaHost = value
	case "model":
		cfg.Model = value
	case "modelFamily":
		cfg.ModelFamily = value
	case "format":
		if value != "text" && value != "json" {
			return fmt.Errorf("format must be text or json, got %q", value)
		}
		cfg.Format = value
	case "allowedHosts":
		cfg.AllowedHosts = splitList(value)
	case "cdpURL":
		cfg.CDPURL = value
	case "agentAddr":
		cfg.AgentAddr = value
	case "logLevel":
		cfg.Log.Level = value
	case "logFormat":
		cfg.Log.Format = value
	default:
		return fmt.Errorf("unknown config key: %s", key)
	}
	return nil
}

// Validate reports settings that cannot work.
func (c Config) Validate() error {
	if c.Format != "text" && c.Format != "json" {
		return fmt.Errorf("format must be text or json, got %q", c.Format)
	}
	if len(c.AllowedHosts) == 0 {
		return errors.New("allowedHosts is empty: insertion will be refused on every page")
	}
	if _, err := bridge.ListenAddr(c.AgentAddr); err != nil {
		return err
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
