package kikitori

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sjzar/kikitori/internal/kikitori/conf"
	"github.com/sjzar/kikitori/internal/player"
)

// Run starts the application: logging, playback, session, UI. When
// initialPath is non-empty the file is loaded before the event loop starts.
func Run(cfg *conf.Config, initialPath string) error {
	closeLog, err := setupLogging(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ui := NewUI()
	play := player.New(player.NewSpeakerOutput())
	session := NewSession(cfg, play, ui)
	ui.Bind(session)
	defer session.Close()

	session.setStatus("Ready. Load an audio file to begin.")
	if initialPath != "" {
		// Errors surface through the status line; the app stays up.
		_ = session.LoadAudio(initialPath)
	}

	log.Info().Str("provider", cfg.Provider).Str("model", cfg.Model).Msg("kikitori started")
	return ui.Run()
}

// setupLogging sends zerolog output to the configured log file. The terminal
// belongs to the TUI, so nothing is written to stderr while it runs.
func setupLogging(cfg *conf.Config) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	file, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = zerolog.New(file).With().Timestamp().Logger()

	return func() { _ = file.Close() }, nil
}
