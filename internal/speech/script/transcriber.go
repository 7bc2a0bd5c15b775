package script

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	_ "embed"

	"github.com/sjzar/kikitori/internal/audio"
	"github.com/sjzar/kikitori/internal/errors"
	"github.com/sjzar/kikitori/internal/speech"
)

//go:embed whisper.py
var embeddedWhisperScript []byte

// Config describes how to initialise the Python based whisper backend.
type Config struct {
	ScriptDir      string
	PythonPath     string
	Model          string // whisper model size, e.g. "small"
	DefaultOptions speech.Options
	Env            map[string]string
}

// Transcriber bridges to the openai-whisper Python package via an embedded
// helper script.
type Transcriber struct {
	cfg        Config
	scriptPath string
}

// New ensures the Python helper script is available and ready.
func New(cfg Config) (*Transcriber, error) {
	if cfg.ScriptDir == "" {
		return nil, errors.New("script directory is required")
	}
	if cfg.Env == nil {
		cfg.Env = make(map[string]string)
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = speech.DefaultModel
	}
	cfg.DefaultOptions = speech.NormalizeDefaults(cfg.DefaultOptions)

	pythonPath := cfg.PythonPath
	if pythonPath == "" {
		if envPath := os.Getenv("KIKITORI_PYTHON"); envPath != "" {
			pythonPath = envPath
		}
	}
	if pythonPath == "" {
		if runtime.GOOS == "windows" {
			pythonPath = "python.exe"
		} else {
			pythonPath = "python3"
		}
	}

	if err := os.MkdirAll(cfg.ScriptDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure script directory: %w", err)
	}

	scriptPath := filepath.Join(cfg.ScriptDir, "whisper.py")
	if err := ensureScript(scriptPath); err != nil {
		return nil, err
	}

	cfg.PythonPath = pythonPath

	return &Transcriber{
		cfg:        cfg,
		scriptPath: scriptPath,
	}, nil
}

// ScriptPath returns the path to the extracted Python helper script.
func (t *Transcriber) ScriptPath() string {
	return t.scriptPath
}

// Close implements the Transcriber interface. No-op for the script backend.
func (t *Transcriber) Close() {}

// TranscribeFile hands the audio file to the helper script as-is; the
// whisper package decodes mp3 and wav itself.
func (t *Transcriber) TranscribeFile(ctx context.Context, path string, opts speech.Options) (*speech.Result, error) {
	effective := speech.MergeOptions(t.cfg.DefaultOptions, opts)

	args := []string{t.scriptPath, "--audio", path, "--model", t.cfg.Model, "--log-level", "WARNING"}
	if effective.LanguageSet && strings.TrimSpace(effective.Language) != "" {
		args = append(args, "--language", strings.TrimSpace(effective.Language))
	}

	cmd := exec.CommandContext(ctx, t.cfg.PythonPath, args...)
	env := append([]string{}, os.Environ()...)
	env = append(env, "PYTHONIOENCODING=utf-8")
	for key, value := range t.cfg.Env {
		env = append(env, fmt.Sprintf("%s=%s", key, value))
	}
	cmd.Env = env

	output, err := cmd.CombinedOutput()
	if err != nil {
		if ctx != nil && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Transcription(fmt.Errorf("python whisper: %w: %s", err, strings.TrimSpace(string(output))))
	}

	return ParseResponse(output)
}

// TranscribePCM writes the samples as a temporary WAV file and transcribes it.
func (t *Transcriber) TranscribePCM(ctx context.Context, samples []float32, sampleRate int, opts speech.Options) (*speech.Result, error) {
	if len(samples) == 0 {
		return nil, errors.Transcription(errors.New("empty audio data"))
	}
	tmpFile, err := os.CreateTemp("", "kikitori-*.wav")
	if err != nil {
		return nil, fmt.Errorf("create temp wav: %w", err)
	}
	wavPath := tmpFile.Name()
	tmpFile.Close()
	defer os.Remove(wavPath)

	pcm := audio.Float32ToPCM16(samples)
	if err := audio.WritePCM16WAV(wavPath, pcm, sampleRate); err != nil {
		return nil, fmt.Errorf("write wav: %w", err)
	}

	return t.TranscribeFile(ctx, wavPath, opts)
}

// ParseResponse decodes the helper script output into a Result. A reported
// TypeError is mapped to a model load failure with reinstall guidance: a
// half-installed whisper package fails inside load_model with a None state
// rather than a clean import error.
func ParseResponse(output []byte) (*speech.Result, error) {
	var resp scriptResult
	if err := json.Unmarshal(bytes.TrimSpace(output), &resp); err != nil {
		return nil, errors.Transcription(fmt.Errorf("decode whisper response: %w", err))
	}
	if resp.Error != "" {
		if strings.Contains(resp.Error, "TypeError") || strings.Contains(resp.Error, "NoneType") {
			return nil, errors.ModelLoadHint(errors.New(resp.Error), "try reinstalling the openai-whisper package")
		}
		return nil, errors.Transcription(errors.New(resp.Error))
	}

	result := &speech.Result{
		Text:     resp.Text,
		Language: resp.Language,
	}

	if len(resp.Segments) > 0 {
		segments := make([]speech.Segment, 0, len(resp.Segments))
		for _, seg := range resp.Segments {
			segments = append(segments, speech.Segment{
				ID:    seg.ID,
				Start: speech.SecondsToDuration(seg.Start),
				End:   speech.SecondsToDuration(seg.End),
				Text:  seg.Text,
			})
		}
		result.Segments = segments
		result.Duration = segments[len(segments)-1].End
	}

	return result, nil
}

func ensureScript(path string) error {
	if info, err := os.Stat(path); err == nil && !info.IsDir() {
		current, readErr := os.ReadFile(path)
		if readErr == nil && bytes.Equal(current, embeddedWhisperScript) {
			return nil
		}
	}
	if err := os.WriteFile(path, embeddedWhisperScript, 0o644); err != nil {
		return fmt.Errorf("write whisper helper: %w", err)
	}
	return nil
}

type scriptResult struct {
	Text     string          `json:"text"`
	Language string          `json:"language"`
	Segments []scriptSegment `json:"segments"`
	Error    string          `json:"error"`
}

type scriptSegment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}
