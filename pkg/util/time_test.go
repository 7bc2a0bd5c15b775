package util

import (
	"testing"
	"time"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00.00"},
		{-time.Second, "00:00.00"},
		{1500 * time.Millisecond, "00:01.50"},
		{65 * time.Second, "01:05.00"},
		{10*time.Minute + 3*time.Second + 450*time.Millisecond, "10:03.45"},
		{90 * time.Minute, "90:00.00"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatRange(t *testing.T) {
	got := FormatRange(1500*time.Millisecond, 4200*time.Millisecond)
	if got != "00:01.50 - 00:04.20" {
		t.Errorf("FormatRange = %q", got)
	}
}
