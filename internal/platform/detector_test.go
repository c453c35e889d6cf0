package platform

import "testing"

func TestDetect(t *testing.T) {
	tests := []struct {
		url      string
		expected string
		found    bool
	}{
		{"https://youtu.be/x", "YouTube", true},
		{"https://YOUTUBE.com/x", "YouTube", true},
		{"https://www.youtube.com/watch?v=dQw4w9WgXcQ", "YouTube", true},
		{"https://www.instagram.com/p/ABC123/", "Instagram", true},
		{"https://www.tiktok.com/@user/video/123", "TikTok", true},
		{"https://twitter.com/user/status/123", "Twitter", true},
		{"https://x.com/user/status/123", "Twitter", true},
		{"https://www.facebook.com/watch?v=1", "Facebook", true},
		{"https://fb.watch/abc/", "Facebook", true},
		{"https://www.reddit.com/r/videos/comments/abc/", "Reddit", true},
		{"https://vimeo.com/123456789", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			name, ok := Detect(tt.url)
			if ok != tt.found || name != tt.expected {
				t.Errorf("Detect(%q) = (%q, %v), want (%q, %v)", tt.url, name, ok, tt.expected, tt.found)
			}
		})
	}
}

func TestDetect_FirstMatchWins(t *testing.T) {
	// Matches both youtube.com and x.com; youtube.com comes first in the table
	name, ok := Detect("https://youtube.com/redirect?q=https://x.com/a")
	if !ok || name != "YouTube" {
		t.Errorf("Detect = (%q, %v), want YouTube", name, ok)
	}

	// Only x.com is present as a substring of netflix.com
	name, ok = Detect("https://netflix.com/title/1")
	if !ok || name != "Twitter" {
		t.Errorf("Detect = (%q, %v), want Twitter (substring match)", name, ok)
	}
}

func TestTable_ReturnsCopy(t *testing.T) {
	entries := Table()
	entries[0].Name = "changed"

	if name, _ := Detect("https://youtube.com/x"); name != "YouTube" {
		t.Errorf("table mutated through copy: %q", name)
	}
}
