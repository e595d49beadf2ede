package model

// HistoryStatus represents the recorded status of a download in history
type HistoryStatus string

const (
	// HistoryStatusDownloading means the session has started and not finished
	HistoryStatusDownloading HistoryStatus = "Downloading"

	// HistoryStatusCompleted means yt-dlp exited successfully
	HistoryStatusCompleted HistoryStatus = "Completed"

	// HistoryStatusError means the session ended with a failure
	HistoryStatusError HistoryStatus = "Error"

	// HistoryStatusCancelled means the user cancelled the session
	HistoryStatusCancelled HistoryStatus = "Cancelled"
)

// String returns the string representation of HistoryStatus
func (hs HistoryStatus) String() string {
	return string(hs)
}

// IsActive returns true if the download has not finished yet
func (hs HistoryStatus) IsActive() bool {
	return hs == HistoryStatusDownloading
}

// IsFinished returns true for completed, errored, or cancelled downloads
func (hs HistoryStatus) IsFinished() bool {
	return hs == HistoryStatusCompleted || hs == HistoryStatusError || hs == HistoryStatusCancelled
}

// StatusForOutcome maps a session outcome to its history status
func StatusForOutcome(o Outcome) HistoryStatus {
	switch o.Kind {
	case OutcomeSuccess:
		return HistoryStatusCompleted
	case OutcomeCancelled:
		return HistoryStatusCancelled
	default:
		return HistoryStatusError
	}
}
