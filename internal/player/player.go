package player

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"

	"github.com/sjzar/kikitori/internal/audio"
	"github.com/sjzar/kikitori/internal/errors"
)

// State describes the playback controller state machine.
type State int

const (
	Idle State = iota
	Playing
	Stopped
)

func (s State) String() string {
	switch s {
	case Playing:
		return "playing"
	case Stopped:
		return "stopped"
	default:
		return "idle"
	}
}

// PlaybackState is a point-in-time snapshot for status display.
type PlaybackState struct {
	LoadedPath string
	Playing    bool
	Offset     time.Duration
}

// Player drives audio output for one loaded file. The underlying output has
// no native seek, so Play at an offset is implemented as clear-then-start
// from the sample position. At most one stream is ever active: every Play
// clears the output first.
type Player struct {
	mu          sync.Mutex
	out         Output
	file        *audio.File
	state       State
	stream      beep.StreamSeeker
	startSample int
	finished    *atomic.Bool
	inited      bool
	rate        beep.SampleRate
}

// New creates a Player on top of the given output device.
func New(out Output) *Player {
	return &Player{out: out}
}

// Load replaces the current audio file, stopping any active stream and
// re-initialising the output at the file's sample rate.
func (p *Player) Load(f *audio.File) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.out.Clear()
	if !p.inited || p.rate != f.Format.SampleRate {
		if err := p.out.Init(f.Format.SampleRate, f.Format.SampleRate.N(time.Second/10)); err != nil {
			return errors.Playback(err)
		}
		p.inited = true
		p.rate = f.Format.SampleRate
	}

	p.file = f
	p.state = Idle
	p.stream = nil
	p.startSample = 0
	p.finished = nil
	return nil
}

// Reset drops the loaded file and returns to Idle.
func (p *Player) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out.Clear()
	p.file = nil
	p.state = Idle
	p.stream = nil
	p.startSample = 0
	p.finished = nil
}

// Play starts playback from the given offset, stopping any active stream
// first. Offsets are clamped to the clip bounds.
func (p *Player) Play(offset time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.file == nil {
		return errors.Playback(errors.New("no audio loaded"))
	}

	p.out.Clear()

	start := p.file.Format.SampleRate.N(offset)
	if start < 0 {
		start = 0
	}
	if start > p.file.Buffer.Len() {
		start = p.file.Buffer.Len()
	}

	stream := p.file.Buffer.Streamer(start, p.file.Buffer.Len())

	// The end-of-stream callback runs on the output's own goroutine while it
	// holds the output lock; it only touches an atomic flag so there is no
	// lock ordering with p.mu.
	fin := &atomic.Bool{}
	p.stream = stream
	p.startSample = start
	p.finished = fin
	p.state = Playing

	p.out.Play(beep.Seq(stream, beep.Callback(func() {
		fin.Store(true)
	})))
	return nil
}

// Stop halts playback. Calling Stop with nothing active is a no-op.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reconcile()
	if p.state != Playing {
		return
	}
	p.out.Clear()
	p.state = Stopped
}

// State returns the current state, accounting for natural end-of-audio.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reconcile()
	return p.state
}

// Position returns the current playback offset within the loaded file.
func (p *Player) Position() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.position()
}

// Snapshot returns the playback state for status display.
func (p *Player) Snapshot() PlaybackState {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.reconcile()

	st := PlaybackState{
		Playing: p.state == Playing,
		Offset:  p.position(),
	}
	if p.file != nil {
		st.LoadedPath = p.file.Path
	}
	return st
}

// reconcile folds a completed stream into the state machine. Called with
// p.mu held.
func (p *Player) reconcile() {
	if p.state == Playing && p.finished != nil && p.finished.Load() {
		p.state = Stopped
	}
}

// position reads the active stream offset under the output lock. Called with
// p.mu held.
func (p *Player) position() time.Duration {
	if p.file == nil || p.stream == nil {
		return 0
	}
	p.out.Lock()
	pos := p.startSample + p.stream.Position()
	p.out.Unlock()
	return p.file.Format.SampleRate.D(pos)
}
