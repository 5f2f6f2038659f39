package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.OllamaHost != "http://localhost:11434" {
		t.Errorf("Default ollamaHost = %q", cfg.OllamaHost)
	}
	if cfg.Model != "phi3:mini" {
		t.Errorf("Default model = %q, want %q", cfg.Model, "phi3:mini")
	}
	if cfg.ModelFamily != "phi3" {
		t.Errorf("Default modelFamily = %q, want %q", cfg.ModelFamily, "phi3")
	}
	if cfg.Format != "text" {
		t.Errorf("Default format = %q, want %q", cfg.Format, "text")
	}
	want := []string{"chat.openai.com", "chatgpt.com", "perplexity.ai"}
	if !reflect.DeepEqual(cfg.AllowedHosts, want) {
		t.Errorf("Default allowedHosts = %v, want %v", cfg.AllowedHosts, want)
	}
	if cfg.AgentAddr != DefaultAgentAddr {
		t.Errorf("Default agentAddr = %q", cfg.AgentAddr)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Default log level = %q, want warn", cfg.Log.Level)
	}
}

func TestDefault_AllowedHostsNotShared(t *testing.T) {
	a := Default()
	a.AllowedHosts[0] = "mutated"
	b := Default()
	if b.AllowedHosts[0] == "mutated" {
		t.Error("Default() must return a fresh allow-list")
	}
}

func TestMergeEnv(t *testing.T) {
	t.Setenv("OLLAMA_HOST", "http://gpu-box:11434")
	t.Setenv("PHISCRUB_MODEL", "phi3:medium")
	t.Setenv("PHISCRUB_FORMAT", "json")
	t.Setenv("PHISCRUB_CDP_URL", "http://localhost:9333")
	t.Setenv("PHISCRUB_AGENT_ADDR", "127.0.0.1:9999")
	t.Setenv("PHISCRUB_LOG_LEVEL", "debug")

	cfg := Default()
	mergeEnv(&cfg)

	if cfg.OllamaHost != "http://gpu-box:11434" {
		t.Errorf("OllamaHost = %q", cfg.OllamaHost)
	}
	if cfg.Model != "phi3:medium" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q", cfg.Format)
	}
	if cfg.CDPURL != "http://localhost:9333" {
		t.Errorf("CDPURL = %q", cfg.CDPURL)
	}
	if cfg.AgentAddr != "127.0.0.1:9999" {
		t.Errorf("AgentAddr = %q", cfg.AgentAddr)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestMergeOverrides(t *testing.T) {
	cfg := Default()
	mergeOverrides(&cfg, map[string]string{
		"ollamaHost": "http://other:11434",
		"model":      "phi3:14b",
		"format":     "json",
		"cdpURL":     "ws://127.0.0.1:9222/devtools/browser/x",
		"agentAddr":  "127.0.0.1:1234",
		"logLevel":   "info",
	})

	if cfg.OllamaHost != "http://other:11434" {
		t.Errorf("OllamaHost = %q", cfg.OllamaHost)
	}
	if cfg.Model != "phi3:14b" {
		t.Errorf("Model = %q", cfg.Model)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q", cfg.Format)
	}
	if cfg.CDPURL != "ws://127.0.0.1:9222/devtools/browser/x" {
		t.Errorf("CDPURL = %q", cfg.CDPURL)
	}
	if cfg.AgentAddr != "127.0.0.1:1234" {
		t.Errorf("AgentAddr = %q", cfg.AgentAddr)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q", cfg.Log.Level)
	}
}

func TestMergeOverrides_Nil(t *testing.T) {
	cfg := Default()
	mergeOverrides(&cfg, nil)
	if !reflect.DeepEqual(cfg, Default()) {
		t.Error("config changed with nil overrides")
	}
}

func TestMergeFile(t *testing.T) {
	dst := Default()
	MergeFile(&dst, Config{
		Model:        "phi3:medium",
		AllowedHosts: []string{"claude.ai"},
		Log:          LogConfig{Format: "json"},
	})

	if dst.Model != "phi3:medium" {
		t.Errorf("Model = %q", dst.Model)
	}
	if !reflect.DeepEqual(dst.AllowedHosts, []string{"claude.ai"}) {
		t.Errorf("AllowedHosts = %v", dst.AllowedHosts)
	}
	if dst.Log.Format != "json" {
		t.Errorf("Log.Format = %q", dst.Log.Format)
	}
	// Unset fields keep their defaults
	if dst.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", dst.Log.Level)
	}
	if dst.OllamaHost != "http://localhost:11434" {
		t.Errorf("OllamaHost = %q", dst.OllamaHost)
	}
}

func TestSetField(t *testing.T) {
	cfg := Default()

	tests := []struct {
		key   string
		value string
	}{
		{"ollamaHost", "http://gpu-box:11434"},
		{"model", "phi3:medium"},
		{"modelFamily", "phi3"},
		{"format", "json"},
		{"allowedHosts", "chatgpt.com, claude.ai,,"},
		{"cdpURL", "http://localhost:9333"},
		{"agentAddr", "127.0.0.1:9000"},
		{"logLevel", "debug"},
		{"logFormat", "json"},
	}

	for _, tt := range tests {
		if err := SetField(&cfg, tt.key, tt.value); err != nil {
			t.Errorf("SetField(%q, %q) error: %v", tt.key, tt.value, err)
		}
	}

	if !reflect.DeepEqual(cfg.AllowedHosts, []string{"chatgpt.com", "claude.ai"}) {
		t.Errorf("AllowedHosts = %v", cfg.AllowedHosts)
	}
	if cfg.Format != "json" {
		t.Errorf("Format = %q", cfg.Format)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Log.Format = %q", cfg.Log.Format)
	}
}

func TestSetField_Errors(t *testing.T) {
	cfg := Default()
	if err := SetField(&cfg, "nonexistent", "value"); err == nil {
		t.Error("Expected error for unknown key")
	}
	if err := SetField(&cfg, "format", "sarif"); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

func TestConfigPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	path, err := ConfigPath()
	if err != nil {
		t.Fatalf("ConfigPath error: %v", err)
	}
	want := filepath.Join("/tmp/xdg-test", "phiscrub", "config.json")
	if path != want {
		t.Errorf("ConfigPath = %q, want %q", path, want)
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PHISCRUB_MODEL", "")
	t.Setenv("OLLAMA_HOST", "")

	cfg := Default()
	cfg.Model = "phi3:medium"
	cfg.AllowedHosts = []string{"chatgpt.com"}
	if err := Save(cfg); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err := Load(map[string]string{"format": "json"})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.Model != "phi3:medium" {
		t.Errorf("Model = %q", loaded.Model)
	}
	if !reflect.DeepEqual(loaded.AllowedHosts, []string{"chatgpt.com"}) {
		t.Errorf("AllowedHosts = %v", loaded.AllowedHosts)
	}
	if loaded.Format != "json" {
		t.Errorf("Format = %q, want json from override", loaded.Format)
	}
}

func TestLoadFile_NoFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadFile()
	if err != nil {
		t.Fatalf("LoadFile error: %v", err)
	}
	if cfg.Model != "" {
		t.Errorf("Model should be empty for missing file, got %q", cfg.Model)
	}
}

func TestLoadFile_Invalid(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	if err := os.MkdirAll(filepath.Join(dir, "phiscrub"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "phiscrub", "config.json"), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(); err == nil {
		t.Error("Expected error for invalid config file")
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Default().Validate() = %v, want nil", err)
	}
	for _, addr := range []string{"ws://127.0.0.1:8765", "http://localhost:9000", "ws://127.0.0.1:8765/bridge"} {
		cfg := Default()
		cfg.AgentAddr = addr
		if err := cfg.Validate(); err != nil {
			t.Errorf("Validate() with agentAddr %q = %v, want nil", addr, err)
		}
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"bad format", func(c *Config) { c.Format = "sarif" }},
		{"no hosts", func(c *Config) { c.AllowedHosts = nil }},
		{"bad agent addr", func(c *Config) { c.AgentAddr = "localhost" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}
