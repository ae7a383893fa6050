package models

import (
	"database/sql"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// StringSlice is a custom type for storing string arrays as JSON text.
type StringSlice []string

// Value implements the driver.Valuer interface
func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

// Scan implements the sql.Scanner interface
func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}

	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("StringSlice Scan: unsupported type " + fmt.Sprintf("%T", value))
	}

	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*s = StringSlice{}
		return nil
	}
	return json.Unmarshal(bytesToParse, s)
}

// Question is the stored shape of one quiz item inside the questions
// document column.
type Question struct {
	Type           string   `json:"type"`
	Text           string   `json:"text"`
	Options        []string `json:"options,omitempty"`
	CorrectOption  int      `json:"correct_option"`
	AnswerKey      string   `json:"answer_key,omitempty"`
	Blanks         []string `json:"blanks,omitempty"`
	LeftItems      []string `json:"left_items,omitempty"`
	RightItems     []string `json:"right_items,omitempty"`
	CorrectMatches []int    `json:"correct_matches,omitempty"`
	TimeLimit      int      `json:"time_limit"`
}

// QuestionList stores a quiz's full question bank as one JSON document.
// The quiz owns its questions outright; the only mutation is a full replace,
// so a single document column keeps that swap atomic.
type QuestionList []Question

func (q QuestionList) Value() (driver.Value, error) {
	if q == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(q)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (q *QuestionList) Scan(value interface{}) error {
	if value == nil {
		*q = QuestionList{}
		return nil
	}
	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("QuestionList Scan: unsupported type " + fmt.Sprintf("%T", value))
	}
	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*q = QuestionList{}
		return nil
	}
	return json.Unmarshal(bytesToParse, q)
}

// QuestionResult is the stored per-question outcome inside an attempt's
// breakdown column.
type QuestionResult struct {
	QuestionText string `json:"question_text"`
	Type         string `json:"type"`
	Submitted    string `json:"submitted"`
	Expected     string `json:"expected"`
	IsCorrect    bool   `json:"is_correct"`
	Annotation   string `json:"annotation,omitempty"`
}

// ResultList stores an attempt's breakdown as one JSON document.
type ResultList []QuestionResult

func (r ResultList) Value() (driver.Value, error) {
	if r == nil {
		return "[]", nil
	}
	jsonData, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(jsonData), nil
}

func (r *ResultList) Scan(value interface{}) error {
	if value == nil {
		*r = ResultList{}
		return nil
	}
	var bytesToParse []byte
	switch v := value.(type) {
	case []byte:
		bytesToParse = v
	case string:
		bytesToParse = []byte(v)
	default:
		return errors.New("ResultList Scan: unsupported type " + fmt.Sprintf("%T", value))
	}
	if len(bytesToParse) == 0 || string(bytesToParse) == "null" {
		*r = ResultList{}
		return nil
	}
	return json.Unmarshal(bytesToParse, r)
}

// Quiz row
type Quiz struct {
	ID           string       `db:"id"`
	Title        string       `db:"title"`
	Description  string       `db:"description"`
	Topics       StringSlice  `db:"topics"`
	Strand       string       `db:"strand"`
	Category     string       `db:"category"`
	PassingScore int          `db:"passing_score"`
	Questions    QuestionList `db:"questions"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
	DeletedAt    sql.NullTime `db:"deleted_at"`
}

// User row
type User struct {
	ID           string       `db:"id"`
	Username     string       `db:"username"`
	Email        string       `db:"email"`
	PasswordHash string       `db:"password_hash"`
	Strand       string       `db:"strand"`
	CreatedAt    time.Time    `db:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at"`
	DeletedAt    sql.NullTime `db:"deleted_at"`
}

// Attempt row. (user_id, quiz_id) carries a unique constraint so concurrent
// double submissions serialize at the storage layer.
type Attempt struct {
	ID             string         `db:"id"`
	UserID         string         `db:"user_id"`
	QuizID         string         `db:"quiz_id"`
	CorrectCount   int            `db:"correct_count"`
	TotalQuestions int            `db:"total_questions"`
	Percentage     int            `db:"percentage"`
	Passed         bool           `db:"passed"`
	FailureReason  sql.NullString `db:"failure_reason"`
	Breakdown      ResultList     `db:"breakdown"`
	AttemptedAt    time.Time      `db:"attempted_at"`
	CreatedAt      time.Time      `db:"created_at"`
}

// Post row
type Post struct {
	ID        string    `db:"id"`
	Author    string    `db:"author"`
	Strand    string    `db:"strand"`
	Content   string    `db:"content"`
	Likes     int       `db:"likes"`
	CreatedAt time.Time `db:"created_at"`
}
