package platform

// Package platform contains OS integration and yt-dlp output glue: the
// progress line parser, playlist listing, user directories, and revealing
// downloaded files in the system file manager.
