// Package testutil provides shared fakes for package tests.
package testutil

import (
	"sync"

	"github.com/gopxl/beep"
)

// FakeOutput stands in for the system speaker. It records the operation
// sequence and lets tests drain a playing stream to simulate natural
// end-of-audio.
type FakeOutput struct {
	mu       sync.Mutex
	InitRate beep.SampleRate
	InitSize int
	Ops      []string
	streams  []beep.Streamer
}

func (f *FakeOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.InitRate = sampleRate
	f.InitSize = bufferSize
	f.Ops = append(f.Ops, "init")
	return nil
}

func (f *FakeOutput) Play(s beep.Streamer) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.streams = append(f.streams, s)
	f.Ops = append(f.Ops, "play")
}

func (f *FakeOutput) Clear() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Ops = append(f.Ops, "clear")
}

func (f *FakeOutput) Lock()   {}
func (f *FakeOutput) Unlock() {}

// Plays returns how many streams were started.
func (f *FakeOutput) Plays() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.streams)
}

// OpSequence returns a copy of the recorded operations.
func (f *FakeOutput) OpSequence() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.Ops...)
}

// Drain streams the most recent stream to exhaustion, firing any completion
// callbacks attached to it.
func (f *FakeOutput) Drain() {
	f.mu.Lock()
	var s beep.Streamer
	if len(f.streams) > 0 {
		s = f.streams[len(f.streams)-1]
	}
	f.mu.Unlock()
	if s == nil {
		return
	}

	chunk := make([][2]float64, 512)
	for {
		if _, ok := s.Stream(chunk); !ok {
			return
		}
	}
}
