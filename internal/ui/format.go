package ui

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
)

func sprintf(format string, a ...any) string { return fmt.Sprintf(format, a...) }

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func containsError(s string) bool { return strings.Contains(s, "Error") }

// humanSize renders a byte count with one decimal above 1 KB.
func humanSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return sprintf("%d B", bytes)
	case bytes < 1024*1024:
		return sprintf("%.1f KB", float64(bytes)/1024)
	case bytes < 1024*1024*1024:
		return sprintf("%.1f MB", float64(bytes)/(1024*1024))
	default:
		return sprintf("%.1f GB", float64(bytes)/(1024*1024*1024))
	}
}

// timeAgo renders the age of t in the coarsest unit that fits. A zero time
// renders as "-".
func timeAgo(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	secs := int64(time.Since(t).Seconds())
	if secs < 0 {
		secs = 0
	}
	switch {
	case secs < 60:
		return sprintf("%ds ago", secs)
	case secs < 3600:
		return sprintf("%dm ago", secs/60)
	case secs < 86400:
		return sprintf("%dh ago", secs/3600)
	default:
		return sprintf("%dd ago", secs/86400)
	}
}

// padCell clips s to w terminal cells and pads it right to exactly w.
// Width is measured with runewidth so wide runes do not break columns.
func padCell(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > w {
		s = runewidth.Truncate(s, w, "")
	}
	return runewidth.FillRight(s, w)
}

// padLeftCell right-aligns s within w cells.
func padLeftCell(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > w {
		s = runewidth.Truncate(s, w, "")
	}
	return runewidth.FillLeft(s, w)
}

func centerCell(s string, w int) string {
	if w <= 0 {
		return ""
	}
	if runewidth.StringWidth(s) > w {
		s = runewidth.Truncate(s, w, "")
	}
	left := (w - runewidth.StringWidth(s)) / 2
	return strings.Repeat(" ", left) + runewidth.FillRight(s, w-left)
}

func baseName(path string) string { return filepath.Base(path) }
