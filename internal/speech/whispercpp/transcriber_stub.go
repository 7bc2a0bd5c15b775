//go:build !cgo

package whispercpp

import (
	"github.com/sjzar/kikitori/internal/errors"
	"github.com/sjzar/kikitori/internal/speech"
)

// Config describes how to initialise the whisper.cpp backend.
type Config struct {
	ModelPath      string
	DefaultOptions speech.Options
}

// New reports that the native backend was disabled at build time. The
// "script" and "openai" providers remain available in cgo-free builds.
func New(cfg Config) (speech.Transcriber, error) {
	return nil, errors.ModelLoad(errors.New("whisper.cpp backend requires a cgo build"))
}
