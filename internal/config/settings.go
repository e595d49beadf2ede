package config

import "strings"

// Default values
const (
	DefaultFilenameTemplate       = "%(title)s.%(ext)s"
	DefaultSubtitleLanguages      = "en"
	DefaultSponsorBlockCategories = "sponsor"
	DefaultConcurrentFragments    = "1"
	DefaultYtDlpPath              = "yt-dlp"
)

// Settings holds every user-tunable yt-dlp option. A download captures a copy
// when it starts, so later edits never reach a running process.
type Settings struct {
	// Output
	OutputDirectory  string `yaml:"output_directory"`
	FilenameTemplate string `yaml:"filename_template"`

	// Quality
	PreferredQuality string `yaml:"preferred_quality"`
	PreferredCodec   string `yaml:"preferred_codec"`

	// Subtitles
	DownloadSubtitles bool   `yaml:"download_subtitles"`
	SubtitleLanguages string `yaml:"subtitle_languages"`
	EmbedSubtitles    bool   `yaml:"embed_subtitles"`

	// Metadata
	EmbedThumbnail bool `yaml:"embed_thumbnail"`
	EmbedMetadata  bool `yaml:"embed_metadata"`

	// SponsorBlock
	EnableSponsorBlock     bool   `yaml:"enable_sponsorblock"`
	SponsorBlockCategories string `yaml:"sponsorblock_categories"`

	// Network
	Proxy               string `yaml:"proxy"`
	RateLimit           string `yaml:"rate_limit"`
	ConcurrentFragments string `yaml:"concurrent_fragments"`

	// Authentication
	CookiesFile string `yaml:"cookies_file"`

	// Advanced
	YtDlpPath      string `yaml:"ytdlp_path"`
	JSRuntimes     string `yaml:"js_runtimes"`
	ExtraArguments string `yaml:"extra_arguments"`
}

// Default returns Settings with the stock yt-dlp behaviour
func Default() Settings {
	return Settings{
		FilenameTemplate:       DefaultFilenameTemplate,
		SubtitleLanguages:      DefaultSubtitleLanguages,
		SponsorBlockCategories: DefaultSponsorBlockCategories,
		ConcurrentFragments:    DefaultConcurrentFragments,
		YtDlpPath:              DefaultYtDlpPath,
	}
}

// Executable returns the yt-dlp binary to run
func (s Settings) Executable() string {
	if p := strings.TrimSpace(s.YtDlpPath); p != "" {
		return p
	}
	return DefaultYtDlpPath
}
