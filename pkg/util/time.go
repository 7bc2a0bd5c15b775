package util

import (
	"fmt"
	"time"
)

// FormatDuration renders an audio offset as mm:ss.cc for status lines and
// sentence rows. Hours are folded into the minute field; listening material
// rarely needs more.
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := d.Seconds()
	minutes := int(total) / 60
	seconds := total - float64(minutes*60)
	return fmt.Sprintf("%02d:%05.2f", minutes, seconds)
}

// FormatRange renders a segment time range the way the sentence panel shows
// it, e.g. "00:01.50 - 00:04.20".
func FormatRange(start, end time.Duration) string {
	return FormatDuration(start) + " - " + FormatDuration(end)
}
