package domain

import (
	"context"
	"time"
)

// Cache defines the interface for cache operations
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// Mailer sends transactional mail. Delivery is an external collaborator; the
// core only hands it a recipient and a verification code.
type Mailer interface {
	SendOTP(ctx context.Context, email, code string) error
}

// ProfanityFilter screens discussion text before it is stored.
type ProfanityFilter interface {
	// Flag returns true and the offending words when the text is rejected.
	Flag(text string) (bool, []string)
}

// IntegritySignals carries the anti-cheating flags the client reports with a
// submission. The webcam presence check itself happens outside this core; the
// core only consumes its boolean outcome.
type IntegritySignals struct {
	TimedOut     bool
	PresenceLost bool
}

// FailureReasonFor maps integrity signals to an attempt failure reason.
// Timeout wins when both flags are set, matching the order the client
// reports them in.
func (s IntegritySignals) FailureReason() FailureReason {
	switch {
	case s.TimedOut:
		return FailureTimeout
	case s.PresenceLost:
		return FailureIntegrity
	default:
		return FailureNone
	}
}

// ContentReport is the outcome of an AI-content or plagiarism analysis.
// Supported is false when no real detector is wired in; consumers must not
// treat an unsupported report as a score.
type ContentReport struct {
	Supported bool   `json:"supported"`
	Verdict   string `json:"verdict"`
}

// ContentDetector is a pluggable analysis collaborator. The default adapter
// honestly reports the check as unimplemented instead of fabricating a score.
type ContentDetector interface {
	Analyze(ctx context.Context, text string) (ContentReport, error)
}
