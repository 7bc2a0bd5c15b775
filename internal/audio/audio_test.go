package audio

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sjzar/kikitori/internal/errors"
)

// writeTestWAV writes count samples of mono 16-bit silence at rate.
func writeTestWAV(t *testing.T, path string, count, rate int) {
	t.Helper()
	if err := WritePCM16WAV(path, make([]int16, count), rate); err != nil {
		t.Fatalf("write test wav: %v", err)
	}
}

func TestOpenMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.wav"))
	if !errors.Is(err, errors.ErrFileNotFound) {
		t.Fatalf("got %v, want ErrFileNotFound", err)
	}
}

func TestOpenUnsupportedExtension(t *testing.T) {
	tests := []string{"notes.txt", "clip.ogg", "clip.m4a", "clip"}
	for _, name := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Open(filepath.Join(t.TempDir(), name))
			if !errors.Is(err, errors.ErrInvalidFormat) {
				t.Fatalf("got %v, want ErrInvalidFormat", err)
			}
		})
	}
}

func TestOpenRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	if err := os.WriteFile(path, []byte("this is not audio"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(path)
	if !errors.Is(err, errors.ErrInvalidFormat) {
		t.Fatalf("got %v, want ErrInvalidFormat", err)
	}
}

func TestOpenWAV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeTestWAV(t, path, 16000, 16000) // one second

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if f.Path != path {
		t.Errorf("path = %q, want %q", f.Path, path)
	}
	if f.Buffer.Len() != 16000 {
		t.Errorf("buffer len = %d, want 16000", f.Buffer.Len())
	}
	if f.Duration != time.Second {
		t.Errorf("duration = %v, want 1s", f.Duration)
	}
}

func TestMonoSamplesSameRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeTestWAV(t, path, 8000, 16000)

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	samples := f.MonoSamples(16000)
	if len(samples) != 8000 {
		t.Errorf("samples = %d, want 8000", len(samples))
	}
}

func TestMonoSamplesResamples(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeTestWAV(t, path, 44100, 44100)

	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	samples := f.MonoSamples(16000)
	// Linear resampling of a 1s clip should land close to the target rate.
	if len(samples) < 15900 || len(samples) > 16100 {
		t.Errorf("samples = %d, want ~16000", len(samples))
	}
}

func TestResample(t *testing.T) {
	tests := []struct {
		name     string
		src      []float32
		srcRate  int
		dstRate  int
		wantLen  int
		wantSame bool
	}{
		{"empty", nil, 16000, 16000, 0, false},
		{"same rate copies", []float32{0.1, 0.2, 0.3}, 16000, 16000, 3, true},
		{"downsample halves", make([]float32, 1000), 32000, 16000, 500, false},
		{"upsample doubles", make([]float32, 500), 8000, 16000, 1000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Resample(tt.src, tt.srcRate, tt.dstRate)
			if len(out) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(out), tt.wantLen)
			}
			if tt.wantSame {
				for i := range out {
					if out[i] != tt.src[i] {
						t.Fatalf("sample %d = %v, want %v", i, out[i], tt.src[i])
					}
				}
			}
		})
	}
}

func TestFloat32PCM16RoundTrip(t *testing.T) {
	in := []float32{0, 0.5, -0.5, 1, -1, 2, -2}
	pcm := Float32ToPCM16(in)

	want := []int16{0, 16384, -16384, 32767, -32767, 32767, -32767}
	for i := range want {
		// Quantization leaves a one-step tolerance.
		if d := int(pcm[i]) - int(want[i]); d > 1 || d < -1 {
			t.Errorf("pcm[%d] = %d, want %d", i, pcm[i], want[i])
		}
	}

	back := PCM16ToFloat32(pcm)
	for i, v := range []float32{0, 0.5, -0.5, 1, -1, 1, -1} {
		if math.Abs(float64(back[i]-v)) > 0.001 {
			t.Errorf("back[%d] = %v, want ~%v", i, back[i], v)
		}
	}
}
