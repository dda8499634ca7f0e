package utils

import (
	"fmt"
	"strings"
)

// FormatDuration renders a length in seconds as M:SS or H:MM:SS for the info
// response. Zero or negative input means the duration is unknown and renders
// as "0:00".
func FormatDuration(seconds int) string {
	if seconds <= 0 {
		return "0:00"
	}

	minutes := seconds / 60
	secs := seconds % 60
	hours := minutes / 60
	minutes = minutes % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, secs)
	}
	return fmt.Sprintf("%d:%02d", minutes, secs)
}

// FormatViews renders a view count with a K/M suffix. Zero means unknown and
// renders as "0".
func FormatViews(count int64) string {
	if count <= 0 {
		return "0"
	}

	switch {
	case count >= 1000000:
		return fmt.Sprintf("%.1fM", float64(count)/1000000)
	case count >= 1000:
		return fmt.Sprintf("%.1fK", float64(count)/1000)
	default:
		return fmt.Sprintf("%d", count)
	}
}

const maxFilenameLength = 100

// SanitizeFilename makes a video title safe for the filesystem and for a
// Content-Disposition header: path separators become underscores, quote
// characters are dropped, and the result is truncated to 100 characters.
func SanitizeFilename(title string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		"\"", "",
		"'", "",
	)
	safe := replacer.Replace(title)

	// Truncation counts characters, not bytes, so multibyte titles never end
	// on a partial rune.
	if runes := []rune(safe); len(runes) > maxFilenameLength {
		safe = string(runes[:maxFilenameLength])
	}
	return safe
}
