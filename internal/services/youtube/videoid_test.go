package youtube

import (
	"testing"
)

func TestExtractVideoID(t *testing.T) {
	testCases := []struct {
		name        string
		url         string
		expected    string
		expectError bool
	}{
		{
			name:     "Canonical watch URL",
			url:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: "dQw4w9WgXcQ",
		},
		{
			name:     "Short link",
			url:      "https://youtu.be/dQw4w9WgXcQ",
			expected: "dQw4w9WgXcQ",
		},
		{
			name:     "Short link with query stripped",
			url:      "https://youtu.be/dQw4w9WgXcQ?t=5",
			expected: "dQw4w9WgXcQ",
		},
		{
			name:     "Watch URL with extra parameters",
			url:      "https://www.youtube.com/watch?v=dQw4w9WgXcQ&list=PL123&index=2",
			expected: "dQw4w9WgXcQ",
		},
		{
			name:     "Mobile host",
			url:      "https://m.youtube.com/watch?v=dQw4w9WgXcQ",
			expected: "dQw4w9WgXcQ",
		},
		{
			name:        "Watch URL without v parameter",
			url:         "https://www.youtube.com/watch?list=PL123",
			expectError: true,
		},
		{
			name:        "Unrelated host",
			url:         "https://example.com/watch?v=dQw4w9WgXcQ",
			expectError: true,
		},
		{
			name:        "Not a URL",
			url:         "not-a-url",
			expectError: true,
		},
		{
			name:        "Empty string",
			url:         "",
			expectError: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, err := ExtractVideoID(tc.url)
			if tc.expectError {
				if err == nil {
					t.Errorf("expected error for %q, got id %q", tc.url, id)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error for %q: %v", tc.url, err)
			}
			if id != tc.expected {
				t.Errorf("ExtractVideoID(%q) = %q, want %q", tc.url, id, tc.expected)
			}
		})
	}
}

// Both URL shapes of the same video must yield the same identifier.
func TestExtractVideoIDStableAcrossShapes(t *testing.T) {
	urls := []string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ?t=5",
		"https://m.youtube.com/watch?v=dQw4w9WgXcQ&feature=share",
	}

	for _, u := range urls {
		id, err := ExtractVideoID(u)
		if err != nil {
			t.Fatalf("unexpected error for %q: %v", u, err)
		}
		if id != "dQw4w9WgXcQ" {
			t.Errorf("ExtractVideoID(%q) = %q, want dQw4w9WgXcQ", u, id)
		}
	}
}
