package model

// OutcomeKind classifies how a download session ended
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeFailure
	OutcomeCancelled
)

// String returns the string representation of OutcomeKind
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeFailure:
		return "failure"
	case OutcomeCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Outcome is the single terminal result of a download session
type Outcome struct {
	Kind       OutcomeKind
	OutputPath string // set for OutcomeSuccess, may be empty
	Message    string // set for OutcomeFailure
}

// Success builds a successful outcome for the given output path
func Success(outputPath string) Outcome {
	return Outcome{Kind: OutcomeSuccess, OutputPath: outputPath}
}

// Failure builds a failed outcome with a user-facing message
func Failure(message string) Outcome {
	return Outcome{Kind: OutcomeFailure, Message: message}
}

// Cancelled builds the outcome of a user-cancelled session
func Cancelled() Outcome {
	return Outcome{Kind: OutcomeCancelled}
}
