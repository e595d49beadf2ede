package model

import (
	"fmt"
	"strings"
)

// Format is the container or audio format requested from yt-dlp
type Format int

const (
	// FormatDefault lets yt-dlp pick the container
	FormatDefault Format = iota
	FormatMP4
	FormatMKV
	FormatMP3
	FormatAAC
)

// String returns the lowercase flag value, or "default" for FormatDefault
func (f Format) String() string {
	switch f {
	case FormatMP4:
		return "mp4"
	case FormatMKV:
		return "mkv"
	case FormatMP3:
		return "mp3"
	case FormatAAC:
		return "aac"
	default:
		return "default"
	}
}

// Label returns the human readable name shown in pickers
func (f Format) Label() string {
	switch f {
	case FormatMP4:
		return "MP4"
	case FormatMKV:
		return "MKV"
	case FormatMP3:
		return "MP3 (audio)"
	case FormatAAC:
		return "AAC (audio)"
	default:
		return "Best (default)"
	}
}

// IsAudio reports whether the format extracts audio only
func (f Format) IsAudio() bool {
	return f == FormatMP3 || f == FormatAAC
}

// AllFormats returns every format in display order
func AllFormats() []Format {
	return []Format{FormatDefault, FormatMP4, FormatMKV, FormatMP3, FormatAAC}
}

// ParseFormat accepts either the flag value or the label of a format
func ParseFormat(s string) (Format, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return FormatDefault, nil
	}
	for _, f := range AllFormats() {
		if strings.EqualFold(s, f.String()) || s == f.Label() {
			return f, nil
		}
	}
	return FormatDefault, fmt.Errorf("unknown format: %s", s)
}
