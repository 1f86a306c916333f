package platform

import "testing"

func TestIsPlaylistURL(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected bool
	}{
		{
			name:     "watch URL with playlist",
			url:      "https://www.youtube.com/watch?v=abc123&list=PLxyz",
			expected: true,
		},
		{
			name:     "playlist URL",
			url:      "https://www.youtube.com/playlist?list=PLxyz",
			expected: true,
		},
		{
			name:     "single video",
			url:      "https://www.youtube.com/watch?v=abc123",
			expected: false,
		},
		{
			name:     "empty URL",
			url:      "",
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isPlaylistURL(tt.url); got != tt.expected {
				t.Errorf("isPlaylistURL(%q) = %v, expected %v", tt.url, got, tt.expected)
			}
		})
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		expected    string
		expectError bool
	}{
		{
			name:     "watch URL with radio parameter",
			url:      "https://www.youtube.com/watch?v=abc&list=RDabc&start_radio=1",
			expected: "RDabc",
		},
		{
			name:     "playlist URL",
			url:      "https://www.youtube.com/playlist?list=PL123",
			expected: "PL123",
		},
		{
			name:        "empty list value",
			url:         "https://www.youtube.com/playlist?list=&x=1",
			expectError: true,
		},
		{
			name:        "no list parameter",
			url:         "https://www.youtube.com/watch?v=abc",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractPlaylistID(tt.url)
			if tt.expectError {
				if err == nil {
					t.Errorf("expected error for %q, got ID %q", tt.url, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestStripPlaylistParam(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "removes list",
			url:      "https://www.youtube.com/watch?v=abc&list=PL1",
			expected: "https://www.youtube.com/watch?v=abc",
		},
		{
			name:     "untouched without list",
			url:      "https://youtu.be/abc",
			expected: "https://youtu.be/abc",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripPlaylistParam(tt.url); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestPlaylistTitle(t *testing.T) {
	tests := []struct {
		name     string
		titles   []string
		expected string
	}{
		{
			name:     "no entries",
			titles:   nil,
			expected: DefaultPlaylistTitle,
		},
		{
			name:     "single entry",
			titles:   []string{"Intro"},
			expected: "Intro" + PlaylistSuffix,
		},
		{
			name:     "long common prefix",
			titles:   []string{"Go Concurrency Patterns 1", "Go Concurrency Patterns 2"},
			expected: "Go Concurrency Patterns" + PlaylistSuffix,
		},
		{
			name:     "short common prefix falls back to first title",
			titles:   []string{"Go 1", "Go 2"},
			expected: "Go 1" + PlaylistSuffix,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := playlistTitle(tt.titles); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFindCommonPrefix(t *testing.T) {
	tests := []struct {
		s1, s2   string
		expected string
	}{
		{"abcdef", "abcxyz", "abc"},
		{"abc", "abc", "abc"},
		{"abc", "", ""},
		{"short", "shorter", "short"},
	}

	for _, tt := range tests {
		if got := findCommonPrefix(tt.s1, tt.s2); got != tt.expected {
			t.Errorf("findCommonPrefix(%q, %q) = %q, expected %q", tt.s1, tt.s2, got, tt.expected)
		}
	}
}
