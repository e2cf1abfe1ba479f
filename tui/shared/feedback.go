package shared

import "time"

// FeedbackLevel controls styling and auto-clear duration.
type FeedbackLevel int

const (
	FeedbackInfo    FeedbackLevel = iota // transient, auto-clears 4s
	FeedbackSuccess                      // green styled, auto-clears 4s
	FeedbackWarning                      // accent, auto-clears 8s
	FeedbackError                        // red, auto-clears 12s
)

// FeedbackTTL returns the auto-clear duration for a given level.
func FeedbackTTL(level FeedbackLevel) time.Duration {
	switch level {
	case FeedbackWarning:
		return 8 * time.Second
	case FeedbackError:
		return 12 * time.Second
	default:
		return 4 * time.Second
	}
}

// Feedback represents a user-facing status message.
type Feedback struct {
	Level     FeedbackLevel
	Message   string
	Timestamp time.Time
}

// ClearFeedbackMsg clears the feedback stamped at Timestamp, if it is still shown.
type ClearFeedbackMsg struct {
	Timestamp time.Time
}
