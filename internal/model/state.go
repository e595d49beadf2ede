package model

// Labels used for the initial Downloading state
const (
	StartingSpeedLabel = "Starting..."
	UnknownLabel       = "N/A"
)

// Phase enumerates the renderable download states
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDownloading
	PhasePostProcessing
	PhaseCompleted
	PhaseError
)

// String returns the string representation of Phase
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "Idle"
	case PhaseDownloading:
		return "Downloading"
	case PhasePostProcessing:
		return "PostProcessing"
	case PhaseCompleted:
		return "Completed"
	case PhaseError:
		return "Error"
	default:
		return "Unknown"
	}
}

// DownloadState is what front ends render. Only the fields that belong to
// Phase are meaningful; build new states with the transition methods.
type DownloadState struct {
	Phase Phase

	// PhaseDownloading
	Fraction float64
	Speed    string
	ETA      string
	Filename string

	// PhasePostProcessing
	Status string

	// PhaseCompleted
	OutputPath string

	// PhaseError
	Message string
}

// IdleState returns the initial state
func IdleState() DownloadState {
	return DownloadState{Phase: PhaseIdle}
}

// IsActive reports whether a session is expected to be running
func (s DownloadState) IsActive() bool {
	return s.Phase == PhaseDownloading || s.Phase == PhasePostProcessing
}

// IsFinished reports whether the state is a terminal Completed or Error
func (s DownloadState) IsFinished() bool {
	return s.Phase == PhaseCompleted || s.Phase == PhaseError
}

// Starting returns the state entered right after a download is requested
func Starting() DownloadState {
	return DownloadState{
		Phase:    PhaseDownloading,
		Fraction: 0,
		Speed:    StartingSpeedLabel,
		ETA:      UnknownLabel,
	}
}

// ApplyProgress returns the state after a progress event. Idle ignores events.
func (s DownloadState) ApplyProgress(ev ProgressEvent) DownloadState {
	if s.Phase == PhaseIdle {
		return s
	}
	switch ev := ev.(type) {
	case Downloading:
		return DownloadState{
			Phase:    PhaseDownloading,
			Fraction: ev.Fraction,
			Speed:    ev.Speed,
			ETA:      ev.ETA,
			Filename: ev.Filename,
		}
	case PostProcessing:
		return DownloadState{Phase: PhasePostProcessing, Status: ev.Status}
	case Failed:
		return DownloadState{Phase: PhaseError, Message: ev.Message}
	}
	return s
}

// ApplyOutcome returns the state after the session outcome. Idle ignores outcomes.
func (s DownloadState) ApplyOutcome(o Outcome) DownloadState {
	if s.Phase == PhaseIdle {
		return s
	}
	switch o.Kind {
	case OutcomeSuccess:
		return DownloadState{Phase: PhaseCompleted, OutputPath: o.OutputPath}
	case OutcomeFailure:
		return DownloadState{Phase: PhaseError, Message: o.Message}
	case OutcomeCancelled:
		return IdleState()
	}
	return s
}
