package conf

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sjzar/kikitori/internal/speech"
)

// Config controls the transcription backend and application behaviour.
type Config struct {
	// Provider selects the speech backend: "whispercpp", "script" or "openai".
	Provider string `mapstructure:"provider" json:"provider"`

	// Model is the whisper model size: "small" (default), "medium" or "large".
	Model    string `mapstructure:"model" json:"model"`
	ModelDir string `mapstructure:"model_dir" json:"model_dir"`

	Language            string   `mapstructure:"language" json:"language"`
	Threads             int      `mapstructure:"threads" json:"threads"`
	InitialPrompt       string   `mapstructure:"initial_prompt" json:"initial_prompt"`
	Temperature         *float64 `mapstructure:"temperature" json:"temperature"`
	TemperatureFallback *float64 `mapstructure:"temperature_fallback" json:"temperature_fallback"`

	// Script backend.
	PythonPath string `mapstructure:"python_path" json:"python_path"`
	ScriptDir  string `mapstructure:"script_dir" json:"script_dir"`

	// OpenAI-compatible backend.
	APIKey                string `mapstructure:"api_key" json:"api_key"`
	BaseURL               string `mapstructure:"base_url" json:"base_url"`
	Organization          string `mapstructure:"organization" json:"organization"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds" json:"request_timeout_seconds"`

	LogFile  string `mapstructure:"log_file" json:"log_file"`
	LogLevel string `mapstructure:"log_level" json:"log_level"`
}

// Normalize fills defaults for anything left unset. The language default is
// Japanese; the app exists to follow along Japanese audio.
func (c *Config) Normalize() {
	if strings.TrimSpace(c.Provider) == "" {
		c.Provider = "whispercpp"
	}
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))

	if strings.TrimSpace(c.Model) == "" {
		c.Model = speech.DefaultModel
	}
	if strings.TrimSpace(c.Language) == "" {
		c.Language = "ja"
	}

	base := baseDir()
	if strings.TrimSpace(c.ModelDir) == "" {
		c.ModelDir = filepath.Join(base, "models")
	}
	if strings.TrimSpace(c.ScriptDir) == "" {
		c.ScriptDir = filepath.Join(base, "scripts")
	}
	if strings.TrimSpace(c.LogFile) == "" {
		c.LogFile = filepath.Join(base, "kikitori.log")
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = "info"
	}
	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = 300
	}
}

// ToOptions converts the config into runtime options for a transcription backend.
func (c *Config) ToOptions() speech.Options {
	var opts speech.Options

	if c == nil {
		return opts
	}

	if c.Language != "" {
		opts.Language = c.Language
		opts.LanguageSet = true
	}
	if c.Threads > 0 {
		opts.Threads = c.Threads
		opts.ThreadsSet = true
	}
	if c.InitialPrompt != "" {
		opts.InitialPrompt = c.InitialPrompt
		opts.InitialPromptSet = true
	}
	if c.Temperature != nil {
		opts.Temperature = float32(*c.Temperature)
		opts.TemperatureSet = true
	}
	if c.TemperatureFallback != nil {
		opts.TemperatureFloor = float32(*c.TemperatureFallback)
		opts.TemperatureFloorSet = true
	}

	return opts
}

// RequestTimeout returns the API request timeout as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func baseDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".kikitori"
	}
	return filepath.Join(home, ".kikitori")
}
