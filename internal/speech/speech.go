package speech

import (
	"context"
	"math"
	"time"
)

// Options configures a transcription request.
type Options struct {
	Language            string  // BCP-47-ish language hint, e.g. "ja"
	LanguageSet         bool    // true when Language should override defaults
	Threads             int     // number of threads used by the backend (<=0 uses default)
	ThreadsSet          bool    // true when Threads should override defaults
	InitialPrompt       string  // optional priming prompt
	InitialPromptSet    bool    // true when InitialPrompt should override defaults
	Temperature         float32 // sampling temperature
	TemperatureSet      bool    // true when Temperature should override defaults
	TemperatureFloor    float32 // optional fallback temperature when decoding stalls
	TemperatureFloorSet bool    // true when TemperatureFloor should override defaults
}

// Segment represents one transcribed utterance with timestamps.
type Segment struct {
	ID    int           `json:"id"`
	Start time.Duration `json:"start"`
	End   time.Duration `json:"end"`
	Text  string        `json:"text"`
}

// Result holds the transcription outcome returned by a backend. Segments are
// kept in the order the model emitted them; overlapping or zero-length ranges
// are passed through untouched.
type Result struct {
	Text     string        `json:"text"`
	Language string        `json:"language"`
	Duration time.Duration `json:"duration"`
	Segments []Segment     `json:"segments"`
}

// Transcriber describes a backend capable of converting speech into text.
type Transcriber interface {
	Close()
	TranscribeFile(ctx context.Context, path string, opts Options) (*Result, error)
	TranscribePCM(ctx context.Context, samples []float32, sampleRate int, opts Options) (*Result, error)
}

// SecondsToDuration converts model timestamps (float seconds) into durations.
func SecondsToDuration(seconds float64) time.Duration {
	if math.IsNaN(seconds) || math.IsInf(seconds, 0) || seconds <= 0 {
		return 0
	}
	return time.Duration(seconds * float64(time.Second))
}

// PCMDuration returns the play time of a mono PCM sample block.
func PCMDuration(sampleCount, sampleRate int) time.Duration {
	if sampleRate <= 0 || sampleCount <= 0 {
		return 0
	}
	return SecondsToDuration(float64(sampleCount) / float64(sampleRate))
}
