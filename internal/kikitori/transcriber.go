package kikitori

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/sjzar/kikitori/internal/errors"
	"github.com/sjzar/kikitori/internal/speech"
	"github.com/sjzar/kikitori/internal/speech/openaiapi"
	"github.com/sjzar/kikitori/internal/speech/script"
	"github.com/sjzar/kikitori/internal/speech/whispercpp"
)

// buildTranscriber constructs the configured speech backend. For the native
// backend the ggml model file is downloaded first if it is not cached yet.
func (s *Session) buildTranscriber(ctx context.Context) (speech.Transcriber, error) {
	cfg := s.cfg

	switch cfg.Provider {
	case "whispercpp":
		downloader := speech.NewDownloader(cfg.ModelDir)
		s.dispatch(func() { s.setStatus("Checking model " + cfg.Model + "...") })
		result, err := downloader.EnsureModel(ctx, cfg.Model)
		if err != nil {
			return nil, errors.ModelLoad(err)
		}
		if !result.Existed {
			log.Info().Str("model", cfg.Model).Str("path", result.Path).Msg("model downloaded")
		}
		t, err := whispercpp.New(whispercpp.Config{
			ModelPath:      result.Path,
			DefaultOptions: cfg.ToOptions(),
		})
		if err != nil {
			return nil, err
		}
		return t, nil

	case "script":
		t, err := script.New(script.Config{
			ScriptDir:      cfg.ScriptDir,
			PythonPath:     cfg.PythonPath,
			Model:          cfg.Model,
			DefaultOptions: cfg.ToOptions(),
		})
		if err != nil {
			return nil, err
		}
		return t, nil

	case "openai":
		t, err := openaiapi.New(openaiapi.Config{
			APIKey:         cfg.APIKey,
			BaseURL:        cfg.BaseURL,
			Organization:   cfg.Organization,
			Model:          cfg.Model,
			RequestTimeout: cfg.RequestTimeout(),
			DefaultOptions: cfg.ToOptions(),
		})
		if err != nil {
			return nil, err
		}
		return t, nil

	case "stub":
		// Deterministic backend for trying the UI without a model.
		return speech.NewStub(&speech.Result{}), nil

	default:
		return nil, fmt.Errorf("unsupported speech provider: %s", cfg.Provider)
	}
}
