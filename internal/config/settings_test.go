package config

import "testing"

func TestDefault(t *testing.T) {
	s := Default()

	tests := []struct {
		name     string
		got      string
		expected string
	}{
		{"filename template", s.FilenameTemplate, "%(title)s.%(ext)s"},
		{"subtitle languages", s.SubtitleLanguages, "en"},
		{"sponsorblock categories", s.SponsorBlockCategories, "sponsor"},
		{"concurrent fragments", s.ConcurrentFragments, "1"},
		{"yt-dlp path", s.YtDlpPath, "yt-dlp"},
		{"output directory", s.OutputDirectory, ""},
		{"proxy", s.Proxy, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, tt.got)
			}
		})
	}

	if s.DownloadSubtitles || s.EmbedSubtitles || s.EmbedThumbnail || s.EmbedMetadata || s.EnableSponsorBlock {
		t.Errorf("expected all toggles off by default, got %+v", s)
	}
}

func TestSettings_Executable(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"", "yt-dlp"},
		{"   ", "yt-dlp"},
		{"/opt/bin/yt-dlp", "/opt/bin/yt-dlp"},
	}

	for _, tt := range tests {
		s := Settings{YtDlpPath: tt.path}
		if got := s.Executable(); got != tt.expected {
			t.Errorf("Executable() with %q = %q, expected %q", tt.path, got, tt.expected)
		}
	}
}
