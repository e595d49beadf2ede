package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ytget/yt-dlgui/internal/model"
	"github.com/ytget/ytdlp/v2"
)

// Timeout constants
const (
	DefaultPlaylistParseTimeout = 60 * time.Second
)

// URL parameters
const (
	PlaylistURLParam = "list"
)

// Default values
const (
	DefaultPlaylistTitle = "Untitled Playlist"
	PlaylistTitleSuffix  = " - Playlist"
	MaxTitleLength       = 50
	TitleTruncateSuffix  = "..."
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// playlistFetcher lists the videos of a playlist by ID
type playlistFetcher func(ctx context.Context, playlistID string) ([]model.PlaylistEntry, error)

// PlaylistParserService lists playlist entries without downloading them
type PlaylistParserService struct {
	timeout time.Duration
	fetch   playlistFetcher
}

// NewPlaylistParserService creates a playlist parser backed by the ytdlp library
func NewPlaylistParserService() *PlaylistParserService {
	return &PlaylistParserService{
		timeout: DefaultPlaylistParseTimeout,
		fetch:   fetchWithLibrary,
	}
}

// SetTimeout sets the timeout for playlist parsing
func (p *PlaylistParserService) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// ParsePlaylist lists the entries of a playlist URL
func (p *PlaylistParserService) ParsePlaylist(ctx context.Context, rawURL string) (*model.Playlist, error) {
	playlistID, err := ExtractPlaylistID(rawURL)
	if err != nil {
		return nil, err
	}

	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	entries, err := p.fetch(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	return &model.Playlist{
		ID:      playlistID,
		URL:     rawURL,
		Title:   playlistTitle(entries),
		Entries: entries,
	}, nil
}

// IsPlaylistURL reports whether the URL carries a playlist ID
func IsPlaylistURL(rawURL string) bool {
	_, err := ExtractPlaylistID(rawURL)
	return err == nil
}

// ExtractPlaylistID returns the value of the list query parameter. Supported forms:
//   - https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID&start_radio=1
//   - https://www.youtube.com/playlist?list=PLAYLIST_ID
func ExtractPlaylistID(rawURL string) (string, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", fmt.Errorf("invalid playlist URL: %w", err)
	}
	id := u.Query().Get(PlaylistURLParam)
	if id == "" {
		return "", fmt.Errorf("URL does not contain playlist parameter: %s", rawURL)
	}
	return id, nil
}

func fetchWithLibrary(ctx context.Context, playlistID string) ([]model.PlaylistEntry, error) {
	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, err
	}

	entries := make([]model.PlaylistEntry, 0, len(items))
	for i, it := range items {
		entries = append(entries, model.PlaylistEntry{
			Index:   i + 1,
			VideoID: it.VideoID,
			Title:   it.Title,
			URL:     fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	return entries, nil
}

// playlistTitle derives a display title from the first entry
func playlistTitle(entries []model.PlaylistEntry) string {
	if len(entries) == 0 || entries[0].Title == "" {
		return DefaultPlaylistTitle
	}

	title := entries[0].Title
	if len([]rune(title)) > MaxTitleLength {
		title = string([]rune(title)[:MaxTitleLength]) + TitleTruncateSuffix
	}
	return title + PlaylistTitleSuffix
}
