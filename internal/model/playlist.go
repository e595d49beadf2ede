package model

// PlaylistEntry is one video listed in a playlist
type PlaylistEntry struct {
	Index   int // 1-based position in the playlist
	VideoID string
	Title   string
	URL     string
}

// Playlist is the flat listing of a playlist URL
type Playlist struct {
	ID      string
	URL     string
	Title   string
	Entries []PlaylistEntry
}
