package platform

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/ytget/yt-dlgui/internal/model"
)

// Progress statuses reported by yt-dlp's progress hook
const (
	StatusDownloading = "downloading"
	StatusFinished    = "finished"
	StatusError       = "error"
)

// Default values
const (
	DefaultSpeed    = "N/A"
	DefaultETA      = "N/A"
	DefaultFilename = "Unknown"
)

// Post-processing labels
const (
	LabelProcessing      = "Processing..."
	LabelMerging         = "Merging formats..."
	LabelThumbnail       = "Embedding thumbnail..."
	LabelMetadata        = "Writing metadata..."
	LabelSponsorBlock    = "Removing sponsor segments..."
	MessageDownloadError = "Download failed"
)

var ansiEscape = regexp.MustCompile(`\x1b\[[0-9;]*[A-Za-z]`)

// progressRecord is one line printed by --progress-template download:%(progress)j.
// Byte counts are floats because yt-dlp emits estimates with fractions.
type progressRecord struct {
	Status             string   `json:"status"`
	PercentStr         *string  `json:"_percent_str"`
	SpeedStr           *string  `json:"_speed_str"`
	ETAStr             *string  `json:"_eta_str"`
	Filename           *string  `json:"filename"`
	DownloadedBytes    *float64 `json:"downloaded_bytes"`
	TotalBytes         *float64 `json:"total_bytes"`
	TotalBytesEstimate *float64 `json:"total_bytes_estimate"`
}

// bannerRule maps a lowercase substring of a free-text line to a status label
type bannerRule struct {
	needles []string
	label   string
}

// First match wins
var bannerRules = []bannerRule{
	{needles: []string{"[merger]", "[ffmpeg]", "merging"}, label: LabelMerging},
	{needles: []string{"[embedthumbnail]"}, label: LabelThumbnail},
	{needles: []string{"[metadata]"}, label: LabelMetadata},
	{needles: []string{"[sponsorblock]"}, label: LabelSponsorBlock},
}

// ParseProgressLine turns one line of yt-dlp output into a progress event.
// The boolean is false for lines that carry no progress information.
func ParseProgressLine(line string) (model.ProgressEvent, bool) {
	line = strings.TrimSuffix(line, "\r")

	var rec progressRecord
	if err := json.Unmarshal([]byte(line), &rec); err == nil {
		switch rec.Status {
		case StatusDownloading:
			return model.Downloading{
				Fraction: rec.fraction(),
				Speed:    labelOr(rec.SpeedStr, DefaultSpeed),
				ETA:      labelOr(rec.ETAStr, DefaultETA),
				Filename: stringOr(rec.Filename, DefaultFilename),
			}, true
		case StatusFinished:
			return model.PostProcessing{Status: LabelProcessing}, true
		case StatusError:
			return model.Failed{Message: MessageDownloadError}, true
		}
	}

	lower := strings.ToLower(line)
	for _, rule := range bannerRules {
		for _, needle := range rule.needles {
			if strings.Contains(lower, needle) {
				return model.PostProcessing{Status: rule.label}, true
			}
		}
	}

	if IsErrorLine(line) {
		return model.Failed{Message: line}, true
	}

	return nil, false
}

// IsErrorLine reports whether a line mentions an error, ignoring case
func IsErrorLine(line string) bool {
	return strings.Contains(strings.ToLower(line), StatusError)
}

func (r progressRecord) fraction() float64 {
	if r.PercentStr != nil {
		cleaned := strings.TrimSuffix(strings.TrimSpace(stripANSI(*r.PercentStr)), "%")
		if pct, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64); err == nil {
			return pct / 100
		}
	}

	var downloaded, total float64
	if r.DownloadedBytes != nil {
		downloaded = *r.DownloadedBytes
	}
	if r.TotalBytes != nil {
		total = *r.TotalBytes
	} else if r.TotalBytesEstimate != nil {
		total = *r.TotalBytesEstimate
	}
	if total > 0 {
		return downloaded / total
	}
	return 0
}

func labelOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return strings.TrimSpace(stripANSI(*s))
}

func stringOr(s *string, fallback string) string {
	if s == nil {
		return fallback
	}
	return *s
}

func stripANSI(s string) string {
	return ansiEscape.ReplaceAllString(s, "")
}
