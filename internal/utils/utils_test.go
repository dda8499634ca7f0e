package utils

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestFormatDuration(t *testing.T) {
	testCases := []struct {
		name     string
		seconds  int
		expected string
	}{
		{
			name:     "Unknown duration",
			seconds:  0,
			expected: "0:00",
		},
		{
			name:     "Under a minute",
			seconds:  45,
			expected: "0:45",
		},
		{
			name:     "Minutes and seconds",
			seconds:  213,
			expected: "3:33",
		},
		{
			name:     "Over an hour",
			seconds:  3725,
			expected: "1:02:05",
		},
		{
			name:     "Negative treated as unknown",
			seconds:  -5,
			expected: "0:00",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatDuration(tc.seconds); got != tc.expected {
				t.Errorf("FormatDuration(%d) = %q, want %q", tc.seconds, got, tc.expected)
			}
		})
	}
}

func TestFormatViews(t *testing.T) {
	testCases := []struct {
		name     string
		count    int64
		expected string
	}{
		{
			name:     "Unknown views",
			count:    0,
			expected: "0",
		},
		{
			name:     "Small count",
			count:    532,
			expected: "532",
		},
		{
			name:     "Thousands",
			count:    15400,
			expected: "15.4K",
		},
		{
			name:     "Millions",
			count:    1200000,
			expected: "1.2M",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FormatViews(tc.count); got != tc.expected {
				t.Errorf("FormatViews(%d) = %q, want %q", tc.count, got, tc.expected)
			}
		})
	}
}

func TestSanitizeFilename(t *testing.T) {
	testCases := []struct {
		name     string
		title    string
		expected string
	}{
		{
			name:     "Plain title",
			title:    "Never Gonna Give You Up",
			expected: "Never Gonna Give You Up",
		},
		{
			name:     "Path separators replaced",
			title:    "AC/DC - Back\\In Black",
			expected: "AC_DC - Back_In Black",
		},
		{
			name:     "Quotes stripped",
			title:    `The "Best" of 'Rock'`,
			expected: "The Best of Rock",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := SanitizeFilename(tc.title); got != tc.expected {
				t.Errorf("SanitizeFilename(%q) = %q, want %q", tc.title, got, tc.expected)
			}
		})
	}

	t.Run("Long title truncated", func(t *testing.T) {
		long := strings.Repeat("a", 250)
		if got := SanitizeFilename(long); len(got) != 100 {
			t.Errorf("expected 100 characters, got %d", len(got))
		}
	})

	t.Run("Multibyte title truncated on a rune boundary", func(t *testing.T) {
		long := strings.Repeat("a", 99) + strings.Repeat("日本語", 10)
		got := SanitizeFilename(long)
		if !utf8.ValidString(got) {
			t.Errorf("truncated filename is not valid UTF-8: %q", got)
		}
		if n := utf8.RuneCountInString(got); n != 100 {
			t.Errorf("expected 100 characters, got %d", n)
		}
		if !strings.HasSuffix(got, "日") {
			t.Errorf("expected truncation after the first multibyte rune, got %q", got)
		}
	})
}

func TestGenerateIDs(t *testing.T) {
	correlationID := GenerateCorrelationID()
	if correlationID == "" {
		t.Error("Expected non-empty correlation ID")
	}

	requestID := GenerateRequestID()
	if requestID == "" {
		t.Error("Expected non-empty request ID")
	}

	// Check that IDs are different
	if correlationID == requestID {
		t.Error("Correlation ID and request ID should be different")
	}
}
