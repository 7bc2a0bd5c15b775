package kikitori

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/sjzar/kikitori/internal/audio"
	"github.com/sjzar/kikitori/internal/errors"
	"github.com/sjzar/kikitori/internal/kikitori/conf"
	"github.com/sjzar/kikitori/internal/player"
	"github.com/sjzar/kikitori/internal/speech"
	"github.com/sjzar/kikitori/pkg/util"
)

// View receives state changes from the session. The tview layer implements
// it with widget updates; tests substitute a recorder.
type View interface {
	SetStatus(status string)
	SetTranscript(segments []speech.Segment)
}

// Session owns the loaded audio file, the transcript and the transcription
// backend, and coordinates the playback controller and the view. All session
// methods are expected to run on the UI loop; the transcription worker
// reaches back in only through the dispatch function.
type Session struct {
	cfg    *conf.Config
	play   *player.Player
	view   View
	status string

	// dispatch marshals a function onto the UI loop. Defaults to inline
	// execution for headless use.
	dispatch func(func())

	// build constructs the transcription backend on first use. Overridable
	// in tests to inject a stub.
	build func(ctx context.Context) (speech.Transcriber, error)

	transcriber  speech.Transcriber
	file         *audio.File
	loadGen      uuid.UUID
	transcript   []speech.Segment
	transcribing bool
}

// NewSession wires a session over the given config, playback controller and view.
func NewSession(cfg *conf.Config, play *player.Player, view View) *Session {
	s := &Session{
		cfg:      cfg,
		play:     play,
		view:     view,
		dispatch: func(fn func()) { fn() },
	}
	s.build = s.buildTranscriber
	return s
}

// SetDispatch installs the UI-loop marshaling function.
func (s *Session) SetDispatch(dispatch func(func())) {
	if dispatch != nil {
		s.dispatch = dispatch
	}
}

// Close releases the transcription backend and playback resources.
func (s *Session) Close() {
	if s.transcriber != nil {
		s.transcriber.Close()
		s.transcriber = nil
	}
	s.play.Reset()
}

// LoadAudio opens a new audio file. On success any previous transcript and
// playback state are discarded; on failure the session is left untouched.
func (s *Session) LoadAudio(path string) error {
	f, err := audio.Open(path)
	if err != nil {
		log.Err(err).Str("path", path).Msg("load audio failed")
		s.setStatus(statusForError(err))
		return err
	}

	if err := s.play.Load(f); err != nil {
		log.Err(err).Str("path", path).Msg("init playback failed")
		s.setStatus(statusForError(err))
		return err
	}

	s.file = f
	s.loadGen = uuid.New()
	s.transcript = nil
	s.view.SetTranscript(nil)
	s.setStatus(fmt.Sprintf("Loaded %s (%s)", filepath.Base(path), util.FormatDuration(f.Duration)))

	log.Info().Str("path", path).Dur("duration", f.Duration).Msg("audio loaded")
	return nil
}

// Transcribe runs the model on the loaded file in a background goroutine.
// Only one transcription may be in flight; a second request is rejected with
// a status message. A result arriving after a newer LoadAudio is discarded.
func (s *Session) Transcribe() error {
	if s.file == nil {
		s.setStatus("No audio loaded")
		return errors.New("no audio loaded")
	}
	if s.transcribing {
		s.setStatus("Transcription already running")
		return errors.New("transcription already running")
	}

	s.transcribing = true
	gen := s.loadGen
	path := s.file.Path
	opts := s.cfg.ToOptions()

	s.setStatus("Transcribing...")

	go func() {
		start := time.Now()
		result, err := s.runTranscription(path, opts)

		s.dispatch(func() {
			s.transcribing = false

			if gen != s.loadGen {
				// A different file was loaded while the model was running.
				log.Warn().Str("path", path).Msg("discarding stale transcription result")
				return
			}

			if err != nil {
				log.Err(err).Str("path", path).Msg("transcription failed")
				s.setStatus(statusForError(err))
				return
			}

			s.transcript = result.Segments
			s.view.SetTranscript(s.transcript)
			s.setStatus(fmt.Sprintf("Transcription done: %d sentences in %s",
				len(s.transcript), time.Since(start).Round(time.Second)))
			log.Info().Str("path", path).Int("segments", len(s.transcript)).
				Dur("elapsed", time.Since(start)).Msg("transcription done")
		})
	}()

	return nil
}

// runTranscription executes on the worker goroutine.
func (s *Session) runTranscription(path string, opts speech.Options) (*speech.Result, error) {
	ctx := context.Background()

	t, err := s.ensureTranscriber(ctx)
	if err != nil {
		return nil, err
	}

	return t.TranscribeFile(ctx, path, opts)
}

// ensureTranscriber lazily constructs the backend on the first run. The
// model stays loaded until the session is closed.
func (s *Session) ensureTranscriber(ctx context.Context) (speech.Transcriber, error) {
	if s.transcriber != nil {
		return s.transcriber, nil
	}

	s.dispatch(func() { s.setStatus("Loading model...") })
	t, err := s.build(ctx)
	if err != nil {
		return nil, err
	}
	s.transcriber = t
	s.dispatch(func() { s.setStatus("Model loaded, transcribing...") })
	return t, nil
}

// PlaySegment seeks playback to the start of transcript row i.
func (s *Session) PlaySegment(i int) error {
	if i < 0 || i >= len(s.transcript) {
		return errors.Playback(fmt.Errorf("segment %d out of range", i))
	}
	seg := s.transcript[i]
	if err := s.play.Play(seg.Start); err != nil {
		s.setStatus(statusForError(err))
		return err
	}
	s.setStatus(fmt.Sprintf("Playing from %s", util.FormatDuration(seg.Start)))
	return nil
}

// Play starts playback from the given offset.
func (s *Session) Play(offset time.Duration) error {
	if err := s.play.Play(offset); err != nil {
		s.setStatus(statusForError(err))
		return err
	}
	s.setStatus(fmt.Sprintf("Playing from %s", util.FormatDuration(offset)))
	return nil
}

// Stop halts playback. When nothing is playing this does nothing, not even
// a status change.
func (s *Session) Stop() {
	if s.play.State() != player.Playing {
		return
	}
	s.play.Stop()
	s.setStatus("Stopped")
}

// Transcript returns the current segment list.
func (s *Session) Transcript() []speech.Segment {
	return s.transcript
}

// PlaybackState returns a snapshot of the playback controller.
func (s *Session) PlaybackState() player.PlaybackState {
	return s.play.Snapshot()
}

// Status returns the current status line.
func (s *Session) Status() string {
	return s.status
}

func (s *Session) setStatus(status string) {
	s.status = status
	s.view.SetStatus(status)
}

// statusForError folds the error taxonomy into a user-facing status line.
func statusForError(err error) string {
	switch {
	case errors.Is(err, errors.ErrFileNotFound):
		return "File not found: " + trimPrefix(err, errors.ErrFileNotFound)
	case errors.Is(err, errors.ErrInvalidFormat):
		return "Unsupported audio format (use .mp3 or .wav)"
	case errors.Is(err, errors.ErrModelLoad):
		return "Model load failed: " + trimPrefix(err, errors.ErrModelLoad)
	case errors.Is(err, errors.ErrTranscription):
		return "Transcription failed: " + trimPrefix(err, errors.ErrTranscription)
	case errors.Is(err, errors.ErrPlayback):
		return "Playback failed: " + trimPrefix(err, errors.ErrPlayback)
	default:
		return "Error: " + err.Error()
	}
}

func trimPrefix(err, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
