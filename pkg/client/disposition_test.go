package client

import "testing"

func TestFilenameFromDisposition(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{"quoted", `attachment; filename="clip.mp4"`, "clip.mp4"},
		{"unquoted", `attachment; filename=clip.mp4`, "clip.mp4"},
		{"single quoted", `attachment; filename='clip.mp4'`, "clip.mp4"},
		{"quoted with spaces", `attachment; filename="My Playlist.zip"`, "My Playlist.zip"},
		{"unquoted stops at semicolon", `attachment; filename=a.zip; size=10`, "a.zip"},
		{"case insensitive key", `attachment; FILENAME="Bulk_vid_A1B2C3.zip"`, "Bulk_vid_A1B2C3.zip"},
		{"spaces around equals", `attachment; filename = "x.mp3"`, "x.mp3"},
		{"absent header", ``, "download.zip"},
		{"no filename param", `attachment`, "download.zip"},
		{"empty quoted value", `attachment; filename=""`, "download.zip"},
		{"extended param only", `attachment; filename*=UTF-8''caf%C3%A9.mp4`, "download.zip"},
		{"path stripped", `attachment; filename="../../etc/passwd"`, "passwd"},
		{"windows path stripped", `attachment; filename="C:\temp\evil.exe"`, "evil.exe"},
		{"dot dot only", `attachment; filename=".."`, "download.zip"},
		{"not a filename param", `attachment; myfilename=x.mp4`, "download.zip"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FilenameFromDisposition(tt.header, DefaultSingleFilename)
			if result != tt.expected {
				t.Errorf("FilenameFromDisposition(%q) = %q, want %q", tt.header, result, tt.expected)
			}
		})
	}
}

func TestFilenameFromDisposition_BulkFallback(t *testing.T) {
	if got := FilenameFromDisposition("", DefaultBulkFilename); got != "bulk_download.zip" {
		t.Errorf("got %q, want bulk_download.zip", got)
	}
}
