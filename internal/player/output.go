package player

import (
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

// Output abstracts the system audio device so the controller can be tested
// without opening real hardware.
type Output interface {
	Init(sampleRate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Clear()
	Lock()
	Unlock()
}

type speakerOutput struct{}

// NewSpeakerOutput returns the production Output backed by the beep speaker.
func NewSpeakerOutput() Output {
	return speakerOutput{}
}

func (speakerOutput) Init(sampleRate beep.SampleRate, bufferSize int) error {
	return speaker.Init(sampleRate, bufferSize)
}

func (speakerOutput) Play(s beep.Streamer) {
	speaker.Play(s)
}

func (speakerOutput) Clear() {
	speaker.Clear()
}

func (speakerOutput) Lock() {
	speaker.Lock()
}

func (speakerOutput) Unlock() {
	speaker.Unlock()
}
