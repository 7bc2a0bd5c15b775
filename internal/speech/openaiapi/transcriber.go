package openaiapi

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/sjzar/kikitori/internal/audio"
	"github.com/sjzar/kikitori/internal/errors"
	"github.com/sjzar/kikitori/internal/speech"
)

// DefaultModel is the hosted transcription model used when none is configured.
const DefaultModel = "whisper-1"

// Config describes how to initialise the OpenAI-compatible API backend.
// BaseURL may point at any server speaking the audio/transcriptions API.
type Config struct {
	APIKey         string
	BaseURL        string
	Organization   string
	Model          string
	RequestTimeout time.Duration
	DefaultOptions speech.Options
}

// Transcriber uploads audio files to an OpenAI-compatible endpoint.
type Transcriber struct {
	client openai.Client
	cfg    Config
}

// New validates the configuration and builds the API client.
func New(cfg Config) (*Transcriber, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.ModelLoad(errors.New("openai api key is required"))
	}
	if strings.TrimSpace(cfg.Model) == "" {
		cfg.Model = DefaultModel
	}
	cfg.DefaultOptions = speech.NormalizeDefaults(cfg.DefaultOptions)

	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.Organization != "" {
		opts = append(opts, option.WithOrganization(cfg.Organization))
	}
	if cfg.RequestTimeout > 0 {
		opts = append(opts, option.WithRequestTimeout(cfg.RequestTimeout))
	}

	return &Transcriber{
		client: openai.NewClient(opts...),
		cfg:    cfg,
	}, nil
}

// Close implements the Transcriber interface. No-op for the API backend.
func (t *Transcriber) Close() {}

// TranscribeFile uploads the audio file and requests verbose output so the
// response carries per-segment timestamps.
func (t *Transcriber) TranscribeFile(ctx context.Context, path string, opts speech.Options) (*speech.Result, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound(path)
		}
		return nil, fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	effective := speech.MergeOptions(t.cfg.DefaultOptions, opts)

	params := openai.AudioTranscriptionNewParams{
		File:           file,
		Model:          openai.AudioModel(t.cfg.Model),
		ResponseFormat: openai.AudioResponseFormatVerboseJSON,
	}
	if effective.LanguageSet && strings.TrimSpace(effective.Language) != "" {
		params.Language = openai.String(strings.TrimSpace(effective.Language))
	}
	if effective.InitialPromptSet && effective.InitialPrompt != "" {
		params.Prompt = openai.String(effective.InitialPrompt)
	}
	if effective.TemperatureSet {
		params.Temperature = openai.Float(float64(effective.Temperature))
	}

	var verbose verboseTranscription
	_, err = t.client.Audio.Transcriptions.New(ctx, params, option.WithResponseBodyInto(&verbose))
	if err != nil {
		if ctx != nil && ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Transcription(err)
	}

	result := &speech.Result{
		Text:     strings.TrimSpace(verbose.Text),
		Language: verbose.Language,
		Duration: speech.SecondsToDuration(verbose.Duration),
	}
	if len(verbose.Segments) > 0 {
		segments := make([]speech.Segment, 0, len(verbose.Segments))
		for _, seg := range verbose.Segments {
			segments = append(segments, speech.Segment{
				ID:    seg.ID,
				Start: speech.SecondsToDuration(seg.Start),
				End:   speech.SecondsToDuration(seg.End),
				Text:  seg.Text,
			})
		}
		result.Segments = segments
	}

	return result, nil
}

// TranscribePCM writes the samples as a temporary WAV file and uploads it.
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

type verboseTranscription struct {
	Text     string           `json:"text"`
	Language string           `json:"language"`
	Duration float64          `json:"duration"`
	Segments []verboseSegment `json:"segments"`
}

type verboseSegment struct {
	ID    int     `json:"id"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
	Text  string  `json:"text"`
}
