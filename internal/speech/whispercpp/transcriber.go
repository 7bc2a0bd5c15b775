//go:build cgo

package whispercpp

/*
#cgo CFLAGS: -I${SRCDIR}/../../../third_party/whisper/include
#cgo LDFLAGS: -L${SRCDIR}/../../../third_party/whisper/lib -lwhisper -lggml -lstdc++ -lm
*/
import "C"

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"strings"
	"sync"
	"time"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"github.com/sjzar/kikitori/internal/audio"
	"github.com/sjzar/kikitori/internal/errors"
	"github.com/sjzar/kikitori/internal/speech"
)

// Config describes how to initialise the whisper.cpp backend.
type Config struct {
	ModelPath      string
	DefaultOptions speech.Options
}

// Transcriber wraps a whisper.cpp model instance.
type Transcriber struct {
	mu    sync.Mutex
	model whisper.Model
	cfg   Config
}

// New instantiates a whisper.cpp backed transcriber.
func New(cfg Config) (*Transcriber, error) {
	path := strings.TrimSpace(cfg.ModelPath)
	if path == "" {
		return nil, errors.ModelLoad(errors.New("whisper model path is required"))
	}

	model, err := whisper.New(path)
	if err != nil {
		return nil, errors.ModelLoad(fmt.Errorf("load whisper model: %w", err))
	}

	cfg.DefaultOptions = speech.NormalizeDefaults(cfg.DefaultOptions)

	return &Transcriber{model: model, cfg: cfg}, nil
}

// Close releases the underlying model resources.
func (t *Transcriber) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.model != nil {
		_ = t.model.Close()
		t.model = nil
	}
}

// TranscribeFile decodes the audio file and transcribes it.
func (t *Transcriber) TranscribeFile(ctx context.Context, path string, opts speech.Options) (*speech.Result, error) {
	f, err := audio.Open(path)
	if err != nil {
		return nil, err
	}
	samples := f.MonoSamples(int(whisper.SampleRate))
	return t.process(ctx, samples, opts)
}

// TranscribePCM transcribes mono PCM samples.
func (t *Transcriber) TranscribePCM(ctx context.Context, samples []float32, sampleRate int, opts speech.Options) (*speech.Result, error) {
	if len(samples) == 0 {
		return nil, errors.Transcription(errors.New("empty audio samples"))
	}

	processed := audio.Resample(samples, sampleRate, int(whisper.SampleRate))
	return t.process(ctx, processed, opts)
}

func (t *Transcriber) process(ctx context.Context, samples []float32, override speech.Options) (*speech.Result, error) {
	t.mu.Lock()
	model := t.model
	cfg := t.cfg
	t.mu.Unlock()
	if model == nil {
		return nil, errors.Transcription(errors.New("transcriber closed"))
	}

	if ctx != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	wctx, err := model.NewContext()
	if err != nil {
		return nil, errors.Transcription(fmt.Errorf("create whisper context: %w", err))
	}

	effective := speech.MergeOptions(cfg.DefaultOptions, override)

	threads := effective.Threads
	if !effective.ThreadsSet || threads <= 0 {
		threads = runtime.NumCPU()
	}
	wctx.SetThreads(uint(threads))

	languageOpt := "auto"
	if effective.LanguageSet && strings.TrimSpace(effective.Language) != "" {
		languageOpt = strings.TrimSpace(effective.Language)
	}
	if err := wctx.SetLanguage(languageOpt); err != nil {
		return nil, errors.Transcription(err)
	}

	if effective.InitialPromptSet && effective.InitialPrompt != "" {
		wctx.SetInitialPrompt(effective.InitialPrompt)
	}
	if effective.TemperatureSet {
		wctx.SetTemperature(effective.Temperature)
	}
	if effective.TemperatureFloorSet {
		wctx.SetTemperatureFallback(effective.TemperatureFloor)
	}

	var encoderCb whisper.EncoderBeginCallback
	if ctx != nil {
		encoderCb = func() bool {
			return ctx.Err() == nil
		}
	}

	if err := wctx.Process(samples, encoderCb, nil, nil); err != nil {
		return nil, errors.Transcription(err)
	}
	if ctx != nil && ctx.Err() != nil {
		return nil, ctx.Err()
	}

	segments := make([]speech.Segment, 0)
	var textBuilder strings.Builder
	for {
		seg, err := wctx.NextSegment()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Transcription(err)
		}

		segments = append(segments, speech.Segment{
			ID:    seg.Num,
			Start: seg.Start,
			End:   seg.End,
			Text:  seg.Text,
		})
		if textBuilder.Len() > 0 {
			textBuilder.WriteByte(' ')
		}
		textBuilder.WriteString(strings.TrimSpace(seg.Text))
	}

	duration := time.Duration(float64(len(samples)) / float64(whisper.SampleRate) * float64(time.Second))
	detected := wctx.DetectedLanguage()
	if detected == "" {
		detected = languageOpt
	}

	return &speech.Result{
		Text:     strings.TrimSpace(textBuilder.String()),
		Language: detected,
		Duration: duration,
		Segments: segments,
	}, nil
}
