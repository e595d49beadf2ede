package model

// ProgressEvent is one observation parsed from yt-dlp output.
// Implemented by Downloading, PostProcessing and Failed only.
type ProgressEvent interface {
	isProgressEvent()
}

// Downloading reports transfer progress of the current file
type Downloading struct {
	Fraction float64 // 0.0 to 1.0
	Speed    string  // e.g. "1.20MiB/s" or "N/A"
	ETA      string  // e.g. "00:42" or "N/A"
	Filename string
}

// PostProcessing reports a post-download step such as merging or tagging
type PostProcessing struct {
	Status string
}

// Failed reports an error line emitted by yt-dlp
type Failed struct {
	Message string
}

func (Downloading) isProgressEvent()    {}
func (PostProcessing) isProgressEvent() {}
func (Failed) isProgressEvent()         {}
