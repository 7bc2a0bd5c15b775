package errors

import (
	"errors"
	"fmt"
)

// Failure categories surfaced to the user. Every component boundary wraps
// its errors with one of these so the UI can report them uniformly.
var (
	ErrFileNotFound  = errors.New("file not found")
	ErrInvalidFormat = errors.New("unsupported audio format")
	ErrModelLoad     = errors.New("model load failed")
	ErrTranscription = errors.New("transcription failed")
	ErrPlayback      = errors.New("playback failed")
)

func FileNotFound(path string) error {
	return fmt.Errorf("%w: %s", ErrFileNotFound, path)
}

func InvalidFormat(path string) error {
	return fmt.Errorf("%w: %s", ErrInvalidFormat, path)
}

func ModelLoad(err error) error {
	return fmt.Errorf("%w: %v", ErrModelLoad, err)
}

// ModelLoadHint wraps a model failure with actionable guidance. Used for the
// known whisper installation issue where a broken package raises a type error
// instead of a clean load failure.
func ModelLoadHint(err error, hint string) error {
	return fmt.Errorf("%w: %v (%s)", ErrModelLoad, err, hint)
}

func Transcription(err error) error {
	return fmt.Errorf("%w: %v", ErrTranscription, err)
}

func Playback(err error) error {
	return fmt.Errorf("%w: %v", ErrPlayback, err)
}

// Is reports whether err matches target. Re-exported so callers do not need
// to import both this package and the standard library errors package.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

func New(text string) error {
	return errors.New(text)
}
