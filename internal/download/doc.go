package download

// Package download runs yt-dlp as a child process and turns its output into
// an ordered stream of progress events that ends with exactly one outcome.
//
// Runner owns one process and parses its stdout and stderr. Session wraps a
// Runner with cancellation and multiplexes progress, cancel and outcome into
// a single channel. Controller keeps at most one Session alive and reduces
// its events into the model.DownloadState rendered by the front ends.
