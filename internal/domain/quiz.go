package domain

import (
	"fmt"
	"strings"
	"time"
)

// Strand is an academic track that scopes which quizzes a student sees.
type Strand string

const (
	StrandSTEM  Strand = "STEM"
	StrandICT   Strand = "ICT"
	StrandHUMSS Strand = "HUMSS"
	StrandTVL   Strand = "TVL"
	StrandABM   Strand = "ABM"
)

// AllStrands lists every valid strand in display order.
var AllStrands = []Strand{StrandSTEM, StrandICT, StrandHUMSS, StrandTVL, StrandABM}

// ParseStrand validates a strand name case-insensitively.
func ParseStrand(s string) (Strand, error) {
	upper := Strand(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range AllStrands {
		if st == upper {
			return st, nil
		}
	}
	return "", NewInvalidStrandError(s)
}

// QuestionType is the closed enumeration governing a question's answer-key
// shape and grading rule.
type QuestionType string

const (
	QuestionMultipleChoice QuestionType = "multiple_choice"
	QuestionTrueFalse      QuestionType = "true_false"
	QuestionShortAnswer    QuestionType = "short_answer"
	QuestionFillBlank      QuestionType = "fill_blank"
	QuestionMatching       QuestionType = "matching"
)

// ParseQuestionType validates a question type tag.
func ParseQuestionType(s string) (QuestionType, error) {
	switch QuestionType(strings.ToLower(strings.TrimSpace(s))) {
	case QuestionMultipleChoice:
		return QuestionMultipleChoice, nil
	case QuestionTrueFalse:
		return QuestionTrueFalse, nil
	case QuestionShortAnswer:
		return QuestionShortAnswer, nil
	case QuestionFillBlank:
		return QuestionFillBlank, nil
	case QuestionMatching:
		return QuestionMatching, nil
	}
	return "", fmt.Errorf("unknown question type: %q", s)
}

// Per-question time limits in seconds.
const (
	DefaultQuestionTime = 30
	MinQuestionTime     = 10
	MaxQuestionTime     = 300
)

// ClampTimeLimit forces a per-question time limit into the allowed range.
// Zero or negative values fall back to the default.
func ClampTimeLimit(seconds int) int {
	if seconds <= 0 {
		return DefaultQuestionTime
	}
	if seconds < MinQuestionTime {
		return MinQuestionTime
	}
	if seconds > MaxQuestionTime {
		return MaxQuestionTime
	}
	return seconds
}

// Question is one quiz item. The payload fields that are meaningful depend
// entirely on Type; the builder is the only constructor that guarantees the
// shape invariants, so handlers must never assemble Questions by hand.
type Question struct {
	Type QuestionType
	Text string

	// multiple_choice
	Options       []string
	CorrectOption int // zero-based index into Options

	// true_false ("true"/"false") and short_answer (reference answer)
	AnswerKey string

	// fill_blank: accepted values, first blank graded
	Blanks []string

	// matching
	LeftItems      []string
	RightItems     []string
	CorrectMatches []int // right-item index per pair

	// seconds, clamped into [MinQuestionTime, MaxQuestionTime]
	TimeLimit int
}

// Validate checks the type/payload shape invariants.
func (q *Question) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return NewMissingFieldError("question_text")
	}
	switch q.Type {
	case QuestionMultipleChoice:
		if len(q.Options) < 2 {
			return NewInsufficientOptionsError("options", len(q.Options))
		}
		if q.CorrectOption < 0 || q.CorrectOption >= len(q.Options) {
			return NewInvalidAnswerKeyError("correct_answer",
				fmt.Sprintf("correct option index %d out of range for %d options", q.CorrectOption, len(q.Options)))
		}
	case QuestionTrueFalse:
		if q.AnswerKey != "true" && q.AnswerKey != "false" {
			return NewInvalidAnswerKeyError("correct_answer",
				fmt.Sprintf("true/false answer key must be \"true\" or \"false\", got %q", q.AnswerKey))
		}
	case QuestionShortAnswer:
		if strings.TrimSpace(q.AnswerKey) == "" {
			return NewInvalidAnswerKeyError("correct_answer", "short answer reference is empty")
		}
	case QuestionFillBlank:
		if len(q.Blanks) == 0 {
			return NewInvalidAnswerKeyError("blanks", "fill-in-the-blank question has no accepted values")
		}
	case QuestionMatching:
		if len(q.LeftItems) == 0 || len(q.RightItems) == 0 {
			return NewInvalidAnswerKeyError("matching", "matching question needs left and right items")
		}
		if len(q.CorrectMatches) != len(q.RightItems) {
			return NewInvalidAnswerKeyError("correct_matches",
				fmt.Sprintf("expected %d match indices, got %d", len(q.RightItems), len(q.CorrectMatches)))
		}
		for _, m := range q.CorrectMatches {
			if m < 0 || m >= len(q.RightItems) {
				return NewInvalidAnswerKeyError("correct_matches",
					fmt.Sprintf("match index %d out of range for %d right items", m, len(q.RightItems)))
			}
		}
	default:
		return NewInvalidFormatError("question_type", string(q.Type))
	}
	return nil
}

// DefaultPassingScore is the percentage a learner needs to pass a quiz when
// the quiz does not override it.
const DefaultPassingScore = 60

// Quiz represents a quiz in the domain. Questions are owned outright: the
// only mutation is a full replace of the question list.
type Quiz struct {
	ID           string
	Title        string
	Description  string
	Topics       []string
	Strand       Strand
	Category     string
	PassingScore int
	Questions    []Question
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewQuiz creates a quiz with an empty question list.
func NewQuiz(title, description string, topics []string, strand Strand, category string) *Quiz {
	now := time.Now()
	return &Quiz{
		Title:        title,
		Description:  description,
		Topics:       topics,
		Strand:       strand,
		Category:     category,
		PassingScore: DefaultPassingScore,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// Validate validates the quiz metadata.
func (q *Quiz) Validate() error {
	if strings.TrimSpace(q.Title) == "" {
		return NewMissingFieldError("title")
	}
	if _, err := ParseStrand(string(q.Strand)); err != nil {
		return err
	}
	if q.PassingScore < 0 || q.PassingScore > 100 {
		return NewOutOfRangeError("passing_score", q.PassingScore, 0, 100)
	}
	return nil
}

// TotalTime is the quiz time budget: the sum of the per-question limits.
func (q *Quiz) TotalTime() int {
	total := 0
	for _, question := range q.Questions {
		total += question.TimeLimit
	}
	return total
}
