package script

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sjzar/kikitori/internal/errors"
)

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		wantErr  error
		wantText string
		wantSegs int
	}{
		{
			name: "segments",
			output: `{"text": "こんにちは 世界", "language": "ja", "segments": [
				{"id": 0, "start": 0.0, "end": 2.5, "text": "こんにちは"},
				{"id": 1, "start": 2.5, "end": 5.0, "text": "世界"}]}`,
			wantText: "こんにちは 世界",
			wantSegs: 2,
		},
		{
			name:     "empty transcript",
			output:   `{"text": "", "language": "ja", "segments": []}`,
			wantText: "",
			wantSegs: 0,
		},
		{
			name:    "generic error",
			output:  `{"error": "RuntimeError: out of memory"}`,
			wantErr: errors.ErrTranscription,
		},
		{
			name:    "type error maps to model load failure",
			output:  `{"error": "TypeError: argument of type 'NoneType' is not iterable"}`,
			wantErr: errors.ErrModelLoad,
		},
		{
			name:    "not json",
			output:  "Traceback (most recent call last): boom",
			wantErr: errors.ErrTranscription,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseResponse([]byte(tt.output))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("got err %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseResponse: %v", err)
			}
			if result.Text != tt.wantText {
				t.Errorf("text = %q, want %q", result.Text, tt.wantText)
			}
			if len(result.Segments) != tt.wantSegs {
				t.Errorf("segments = %d, want %d", len(result.Segments), tt.wantSegs)
			}
		})
	}
}

func TestParseResponseTimestamps(t *testing.T) {
	output := `{"text": "a b", "segments": [
		{"id": 0, "start": 1.25, "end": 3.75, "text": "a b"}]}`
	result, err := ParseResponse([]byte(output))
	if err != nil {
		t.Fatalf("ParseResponse: %v", err)
	}
	seg := result.Segments[0]
	if seg.Start != 1250*time.Millisecond || seg.End != 3750*time.Millisecond {
		t.Errorf("segment times = %v..%v, want 1.25s..3.75s", seg.Start, seg.End)
	}
	if result.Duration != seg.End {
		t.Errorf("duration = %v, want %v", result.Duration, seg.End)
	}
}

func TestTypeErrorHintMentionsReinstall(t *testing.T) {
	_, err := ParseResponse([]byte(`{"error": "TypeError: NoneType"}`))
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "reinstall") {
		t.Errorf("error %q should suggest reinstalling the package", err)
	}
}

func TestNewExtractsScript(t *testing.T) {
	dir := t.TempDir()
	tr, err := New(Config{ScriptDir: dir, Model: "small"})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer tr.Close()

	data, err := os.ReadFile(tr.ScriptPath())
	if err != nil {
		t.Fatalf("read extracted script: %v", err)
	}
	if len(data) == 0 || !strings.Contains(string(data), "whisper") {
		t.Error("extracted script looks wrong")
	}
	if filepath.Dir(tr.ScriptPath()) != dir {
		t.Errorf("script extracted outside configured dir: %s", tr.ScriptPath())
	}
}

func TestNewRequiresScriptDir(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Fatal("expected error with no script dir")
	}
}
