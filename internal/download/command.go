package download

import (
	"path/filepath"
	"strings"

	"github.com/ytget/yt-dlgui/internal/config"
	"github.com/ytget/yt-dlgui/internal/model"
)

// yt-dlp flags
const (
	FlagProgressTemplate    = "--progress-template"
	FlagNewline             = "--newline"
	FlagMergeOutputFormat   = "--merge-output-format"
	FlagExtractAudio        = "-x"
	FlagAudioFormat         = "--audio-format"
	FlagOutput              = "-o"
	FlagFormat              = "-f"
	FlagFormatSort          = "-S"
	FlagWriteSubs           = "--write-subs"
	FlagSubLangs            = "--sub-langs"
	FlagEmbedSubs           = "--embed-subs"
	FlagEmbedThumbnail      = "--embed-thumbnail"
	FlagEmbedMetadata       = "--embed-metadata"
	FlagSponsorBlockRemove  = "--sponsorblock-remove"
	FlagProxy               = "--proxy"
	FlagLimitRate           = "--limit-rate"
	FlagConcurrentFragments = "--concurrent-fragments"
	FlagCookies             = "--cookies"
	FlagJSRuntimes          = "--js-runtimes"
)

// ProgressTemplate makes yt-dlp print one JSON progress record per line
const ProgressTemplate = "download:%(progress)j"

// VideoCodecSortPrefix prefixes the preferred codec in a -S sort expression
const VideoCodecSortPrefix = "vcodec:"

// Request is everything one download needs. Settings are a copy taken when
// the download starts.
type Request struct {
	URL      string
	Format   model.Format
	Settings config.Settings
}

// Executable returns the yt-dlp binary for the request
func (r Request) Executable() string {
	return r.Settings.Executable()
}

// BuildArgs returns the yt-dlp argument list for the request. The URL is
// always the last argument.
func BuildArgs(req Request) []string {
	s := req.Settings
	args := []string{FlagProgressTemplate, ProgressTemplate, FlagNewline}

	switch req.Format {
	case model.FormatMP4, model.FormatMKV:
		args = append(args, FlagMergeOutputFormat, req.Format.String())
	case model.FormatMP3, model.FormatAAC:
		args = append(args, FlagExtractAudio, FlagAudioFormat, req.Format.String())
	}

	template := s.FilenameTemplate
	if template == "" {
		template = config.DefaultFilenameTemplate
	}
	if s.OutputDirectory != "" {
		args = append(args, FlagOutput, filepath.Join(s.OutputDirectory, template))
	} else if template != config.DefaultFilenameTemplate {
		args = append(args, FlagOutput, template)
	}

	if s.PreferredQuality != "" {
		args = append(args, FlagFormat, s.PreferredQuality)
	}
	if codec := strings.TrimSpace(s.PreferredCodec); codec != "" {
		args = append(args, FlagFormatSort, VideoCodecSortPrefix+codec)
	}

	if s.DownloadSubtitles {
		args = append(args, FlagWriteSubs)
		if s.SubtitleLanguages != "" {
			args = append(args, FlagSubLangs, s.SubtitleLanguages)
		}
		if s.EmbedSubtitles {
			args = append(args, FlagEmbedSubs)
		}
	}

	if s.EmbedThumbnail {
		args = append(args, FlagEmbedThumbnail)
	}
	if s.EmbedMetadata {
		args = append(args, FlagEmbedMetadata)
	}

	if s.EnableSponsorBlock {
		categories := s.SponsorBlockCategories
		if categories == "" {
			categories = config.DefaultSponsorBlockCategories
		}
		args = append(args, FlagSponsorBlockRemove, categories)
	}

	if s.Proxy != "" {
		args = append(args, FlagProxy, s.Proxy)
	}
	if s.RateLimit != "" {
		args = append(args, FlagLimitRate, s.RateLimit)
	}
	if s.ConcurrentFragments != "" && s.ConcurrentFragments != config.DefaultConcurrentFragments {
		args = append(args, FlagConcurrentFragments, s.ConcurrentFragments)
	}

	if s.CookiesFile != "" {
		args = append(args, FlagCookies, s.CookiesFile)
	}
	if s.JSRuntimes != "" {
		args = append(args, FlagJSRuntimes, s.JSRuntimes)
	}

	args = append(args, strings.Fields(s.ExtraArguments)...)

	return append(args, req.URL)
}
