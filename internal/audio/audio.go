package audio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/mp3"
	"github.com/gopxl/beep/wav"

	"github.com/sjzar/kikitori/internal/errors"
)

// File is a fully decoded audio resource tied to one path. The buffer keeps
// the whole clip in memory so playback can restart from any offset without
// re-reading the source.
type File struct {
	Path     string
	Format   beep.Format
	Buffer   *beep.Buffer
	Duration time.Duration
}

// Open loads and decodes the audio file at path. Supported extensions are
// .mp3 and .wav; anything else fails with ErrInvalidFormat before the file
// is touched.
func Open(path string) (*File, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3", ".wav":
	default:
		return nil, errors.InvalidFormat(path)
	}

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.FileNotFound(path)
		}
		return nil, fmt.Errorf("stat audio file: %w", err)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio file: %w", err)
	}

	var (
		streamer beep.StreamSeekCloser
		format   beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		streamer, format, err = mp3.Decode(f)
	case ".wav":
		streamer, format, err = wav.Decode(f)
	}
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidFormat, err)
	}
	defer streamer.Close()

	buffer := beep.NewBuffer(format)
	buffer.Append(streamer)

	return &File{
		Path:     path,
		Format:   format,
		Buffer:   buffer,
		Duration: format.SampleRate.D(buffer.Len()),
	}, nil
}

// MonoSamples renders the clip as mono float32 PCM at targetRate, the form
// speech recognizers consume. Channels are averaged; rate conversion uses
// linear interpolation, which is adequate for speech input.
func (f *File) MonoSamples(targetRate int) []float32 {
	if f == nil || f.Buffer == nil || f.Buffer.Len() == 0 {
		return nil
	}

	streamer := f.Buffer.Streamer(0, f.Buffer.Len())
	mono := make([]float32, 0, f.Buffer.Len())
	chunk := make([][2]float64, 2048)
	for {
		n, ok := streamer.Stream(chunk)
		for i := 0; i < n; i++ {
			mono = append(mono, float32((chunk[i][0]+chunk[i][1])/2))
		}
		if !ok {
			break
		}
	}

	return Resample(mono, int(f.Format.SampleRate), targetRate)
}

// Resample converts mono samples from srcRate to dstRate using linear
// interpolation. The input is returned copied when no conversion is needed.
func Resample(src []float32, srcRate, dstRate int) []float32 {
	if len(src) == 0 {
		return nil
	}
	if srcRate <= 0 {
		srcRate = dstRate
	}
	if dstRate <= 0 || srcRate == dstRate {
		out := make([]float32, len(src))
		copy(out, src)
		return out
	}

	ratio := float64(srcRate) / float64(dstRate)
	targetLen := int(float64(len(src)) / ratio)
	if targetLen <= 0 {
		targetLen = 1
	}

	out := make([]float32, targetLen)
	for i := 0; i < targetLen; i++ {
		srcPos := float64(i) * ratio
		idx := int(srcPos)
		frac := float32(srcPos - float64(idx))
		switch {
		case idx >= len(src)-1:
			out[i] = src[len(src)-1]
		default:
			val := src[idx]
			next := src[idx+1]
			out[i] = val + (next-val)*frac
		}
	}
	return out
}
