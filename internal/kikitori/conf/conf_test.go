package conf

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNormalizeDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.Normalize()

	if cfg.Provider != "whispercpp" {
		t.Errorf("provider = %q, want whispercpp", cfg.Provider)
	}
	if cfg.Model != "small" {
		t.Errorf("model = %q, want small", cfg.Model)
	}
	if cfg.Language != "ja" {
		t.Errorf("language = %q, want ja", cfg.Language)
	}
	if cfg.ModelDir == "" || cfg.ScriptDir == "" || cfg.LogFile == "" {
		t.Errorf("directories not defaulted: %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("log level = %q, want info", cfg.LogLevel)
	}
	if cfg.RequestTimeoutSeconds != 300 {
		t.Errorf("request timeout = %d, want 300", cfg.RequestTimeoutSeconds)
	}
}

func TestNormalizeKeepsExplicitValues(t *testing.T) {
	cfg := &Config{Provider: " OpenAI ", Model: "medium", Language: "en"}
	cfg.Normalize()

	if cfg.Provider != "openai" {
		t.Errorf("provider = %q, want openai", cfg.Provider)
	}
	if cfg.Model != "medium" || cfg.Language != "en" {
		t.Errorf("explicit values overwritten: %+v", cfg)
	}
}

func TestToOptions(t *testing.T) {
	temp := 0.4
	fallback := 0.8
	cfg := &Config{
		Language:            "ja",
		Threads:             8,
		InitialPrompt:       "句読点を付けてください。",
		Temperature:         &temp,
		TemperatureFallback: &fallback,
	}

	opts := cfg.ToOptions()
	if !opts.LanguageSet || opts.Language != "ja" {
		t.Errorf("language not carried: %+v", opts)
	}
	if !opts.ThreadsSet || opts.Threads != 8 {
		t.Errorf("threads not carried: %+v", opts)
	}
	if !opts.InitialPromptSet {
		t.Errorf("prompt not carried: %+v", opts)
	}
	if !opts.TemperatureSet || opts.Temperature != 0.4 {
		t.Errorf("temperature not carried: %+v", opts)
	}
	if !opts.TemperatureFloorSet || opts.TemperatureFloor != 0.8 {
		t.Errorf("fallback temperature not carried: %+v", opts)
	}
}

func TestToOptionsEmpty(t *testing.T) {
	opts := (&Config{}).ToOptions()
	if opts.LanguageSet || opts.ThreadsSet || opts.TemperatureSet {
		t.Errorf("empty config raised option flags: %+v", opts)
	}

	var nilCfg *Config
	if got := nilCfg.ToOptions(); got.LanguageSet {
		t.Errorf("nil config should yield zero options: %+v", got)
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("provider: script\nmodel: medium\nlanguage: ja\nthreads: 2\n")
	if err := os.WriteFile(path, content, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Provider != "script" || cfg.Model != "medium" || cfg.Threads != 2 {
		t.Errorf("config not decoded: %+v", cfg)
	}
	// Normalize must have filled the rest.
	if cfg.ModelDir == "" || cfg.LogLevel == "" {
		t.Errorf("defaults missing after load: %+v", cfg)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}
