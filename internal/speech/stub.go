package speech

import (
	"context"
	"sync"
)

// Stub is a deterministic Transcriber used by tests and by the "stub"
// provider for exercising the UI without a model download.
type Stub struct {
	mu      sync.Mutex
	Result  *Result
	Err     error
	files   []string
	pcmRuns int
	closed  bool
}

// NewStub returns a Stub that answers every request with result.
func NewStub(result *Result) *Stub {
	return &Stub{Result: result}
}

func (s *Stub) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Stub) TranscribeFile(ctx context.Context, path string, opts Options) (*Result, error) {
	s.mu.Lock()
	s.files = append(s.files, path)
	s.mu.Unlock()
	return s.answer(ctx)
}

func (s *Stub) TranscribePCM(ctx context.Context, samples []float32, sampleRate int, opts Options) (*Result, error) {
	s.mu.Lock()
	s.pcmRuns++
	s.mu.Unlock()
	return s.answer(ctx)
}

func (s *Stub) answer(ctx context.Context) (*Result, error) {
	if ctx != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Result != nil {
		// Copy so callers cannot mutate the canned answer.
		out := *s.Result
		out.Segments = append([]Segment(nil), s.Result.Segments...)
		return &out, nil
	}
	return &Result{}, nil
}

// Files returns the file paths transcribed so far.
func (s *Stub) Files() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.files...)
}

// Closed reports whether Close has been called.
func (s *Stub) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}
