package speech

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
)

func TestNormalizeModelName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"small", "ggml-small.bin"},
		{"medium", "ggml-medium.bin"},
		{"large", "ggml-large-v3.bin"},
		{"", "ggml-small.bin"},
		{"ggml-small.bin", "ggml-small.bin"},
		{"  tiny ", "ggml-tiny.bin"},
	}
	for _, tt := range tests {
		if got := NormalizeModelName(tt.in); got != tt.want {
			t.Errorf("NormalizeModelName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestEnsureModelDownloadsOnce(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/ggml-small.bin" {
			t.Errorf("request path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte("model-bytes"))
	}))
	defer ts.Close()

	dest := t.TempDir()
	d := NewDownloader(dest)
	d.baseURL = ts.URL + "/"

	got, err := d.EnsureModel(context.Background(), "small")
	if err != nil {
		t.Fatalf("EnsureModel: %v", err)
	}
	if got.Existed {
		t.Error("first ensure reported existing model")
	}
	if want := filepath.Join(dest, "ggml-small.bin"); got.Path != want {
		t.Errorf("path = %q, want %q", got.Path, want)
	}
	data, err := os.ReadFile(got.Path)
	if err != nil || string(data) != "model-bytes" {
		t.Fatalf("model content = %q, %v", data, err)
	}

	again, err := d.EnsureModel(context.Background(), "small")
	if err != nil {
		t.Fatalf("second EnsureModel: %v", err)
	}
	if !again.Existed {
		t.Error("second ensure should hit the cache")
	}
	if hits.Load() != 1 {
		t.Errorf("server hits = %d, want 1", hits.Load())
	}
}

func TestEnsureModelServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer ts.Close()

	d := NewDownloader(t.TempDir())
	d.baseURL = ts.URL + "/"

	if _, err := d.EnsureModel(context.Background(), "small"); err == nil {
		t.Fatal("expected error for 404 response")
	}
}
