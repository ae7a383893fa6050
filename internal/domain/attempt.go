package domain

import "time"

// FailureReason records why an attempt ended without a normal completion.
type FailureReason string

const (
	FailureNone      FailureReason = ""
	FailureTimeout   FailureReason = "timeout"
	FailureIntegrity FailureReason = "integrity_violation"
)

// AttemptStatus tracks a (user, quiz) pair through its lifecycle. Every
// terminal status is permanent; nothing transitions back to in_progress.
type AttemptStatus string

const (
	AttemptNotStarted      AttemptStatus = "not_started"
	AttemptInProgress      AttemptStatus = "in_progress"
	AttemptCompleted       AttemptStatus = "completed"
	AttemptFailedTimeout   AttemptStatus = "failed_timeout"
	AttemptFailedIntegrity AttemptStatus = "failed_integrity"
)

// QuestionResult is the graded outcome of a single question.
type QuestionResult struct {
	QuestionText string       `json:"question_text"`
	Type         QuestionType `json:"type"`
	Submitted    string       `json:"submitted"`
	Expected     string       `json:"expected"`
	IsCorrect    bool         `json:"is_correct"`
	Annotation   string       `json:"annotation,omitempty"`
}

// AttemptResult is the full grading outcome for one submission.
type AttemptResult struct {
	CorrectCount   int
	TotalQuestions int
	Percentage     int
	Passed         bool
	Breakdown      []QuestionResult
}

// Attempt is one scored completion (or failure) of a quiz by a user.
// The breakdown is stored by value so later quiz edits never rewrite history.
type Attempt struct {
	ID             string
	UserID         string
	QuizID         string
	CorrectCount   int
	TotalQuestions int
	Percentage     int
	Passed         bool
	FailureReason  FailureReason
	Breakdown      []QuestionResult
	AttemptedAt    time.Time
	CreatedAt      time.Time
}

// NewAttempt builds an attempt record from a graded result.
func NewAttempt(userID, quizID string, result AttemptResult, reason FailureReason) *Attempt {
	now := time.Now()
	passed := result.Passed
	if reason != FailureNone {
		// a timed-out or integrity-flagged attempt never passes
		passed = false
	}
	return &Attempt{
		UserID:         userID,
		QuizID:         quizID,
		CorrectCount:   result.CorrectCount,
		TotalQuestions: result.TotalQuestions,
		Percentage:     result.Percentage,
		Passed:         passed,
		FailureReason:  reason,
		Breakdown:      result.Breakdown,
		AttemptedAt:    now,
		CreatedAt:      now,
	}
}

// Status derives the terminal state of a stored attempt.
func (a *Attempt) Status() AttemptStatus {
	switch a.FailureReason {
	case FailureTimeout:
		return AttemptFailedTimeout
	case FailureIntegrity:
		return AttemptFailedIntegrity
	default:
		return AttemptCompleted
	}
}
