package dto

import "time"

// QuestionSubmission is one structured question record from the admin panel.
// Numeric fields arrive as strings because the legacy admin form posts
// everything as text; the builder owns parsing and validation.
type QuestionSubmission struct {
	Type           string   `json:"type"`
	Text           string   `json:"text"`
	Options        []string `json:"options,omitempty"`
	CorrectAnswer  string   `json:"correct_answer,omitempty"`
	Blanks         []string `json:"blanks,omitempty"`
	LeftItems      []string `json:"left_items,omitempty"`
	RightItems     []string `json:"right_items,omitempty"`
	CorrectMatches []string `json:"correct_matches,omitempty"`
	TimeLimit      string   `json:"time_limit,omitempty"`
}

// CreateQuizRequest creates a quiz shell with an empty question bank.
type CreateQuizRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Topics      []string `json:"topics"`
	Strand      string   `json:"strand"`
	Category    string   `json:"category"`
	PassingScore int     `json:"passing_score,omitempty"`
}

// ReplaceQuestionsRequest swaps a quiz's full question bank.
type ReplaceQuestionsRequest struct {
	Questions []QuestionSubmission `json:"questions"`
}

// QuestionView is a question as exposed to a learner: no answer key.
type QuestionView struct {
	Position   int      `json:"position"`
	Type       string   `json:"type"`
	Text       string   `json:"text"`
	Options    []string `json:"options,omitempty"`
	LeftItems  []string `json:"left_items,omitempty"`
	RightItems []string `json:"right_items,omitempty"`
	TimeLimit  int      `json:"time_limit"`
}

// QuizSummary is a quiz as listed on the dashboard.
type QuizSummary struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Topics        []string  `json:"topics"`
	Strand        string    `json:"strand"`
	Category      string    `json:"category"`
	QuestionCount int       `json:"question_count"`
	TotalTime     int       `json:"total_time"`
	PassingScore  int       `json:"passing_score"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuizTakeResponse is what a learner receives when the start gate admits them.
type QuizTakeResponse struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	TotalTime    int            `json:"total_time"`
	PassingScore int            `json:"passing_score"`
	Questions    []QuestionView `json:"questions"`
}

// SubmitAttemptRequest carries the learner's answers plus the integrity flags
// the client reports. Answers are keyed by question position; matching
// questions encode right-item indices comma-separated.
type SubmitAttemptRequest struct {
	QuizID       string            `json:"quiz_id"`
	Answers      map[string]string `json:"answers"`
	TimedOut     bool              `json:"timed_out"`
	PresenceLost bool              `json:"presence_lost"`
}

// QuestionResultView mirrors domain.QuestionResult for API responses.
type QuestionResultView struct {
	QuestionText string `json:"question_text"`
	Type         string `json:"type"`
	Submitted    string `json:"submitted"`
	Expected     string `json:"expected"`
	IsCorrect    bool   `json:"is_correct"`
	Annotation   string `json:"annotation,omitempty"`
}

// AttemptResultResponse is the scored outcome returned after submission.
type AttemptResultResponse struct {
	QuizID         string               `json:"quiz_id"`
	CorrectCount   int                  `json:"correct_count"`
	TotalQuestions int                  `json:"total_questions"`
	Percentage     int                  `json:"percentage"`
	Passed         bool                 `json:"passed"`
	FailureReason  string               `json:"failure_reason,omitempty"`
	Breakdown      []QuestionResultView `json:"breakdown"`
}

// AttemptSummary is one row of a learner's quiz history.
type AttemptSummary struct {
	QuizID        string    `json:"quiz_id"`
	CorrectCount  int       `json:"correct_count"`
	Total         int       `json:"total_questions"`
	Percentage    int       `json:"percentage"`
	Passed        bool      `json:"passed"`
	FailureReason string    `json:"failure_reason,omitempty"`
	AttemptedAt   time.Time `json:"attempted_at"`
}

// ErrorResponse is the minimal error payload handlers fall back to.
type ErrorResponse struct {
	Error string `json:"error"`
}
