package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrCacheMiss is returned by cache adapters when a key is absent.
var ErrCacheMiss = errors.New("cache miss")

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput       ErrorCode = "INVALID_INPUT"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeValidation         ErrorCode = "VALIDATION_ERROR"
	CodeStorageUnavailable ErrorCode = "STORAGE_UNAVAILABLE"

	// Quiz authoring errors
	CodeQuizNotFound        ErrorCode = "QUIZ_NOT_FOUND"
	CodeMalformedSubmission ErrorCode = "MALFORMED_SUBMISSION"
	CodeInsufficientOptions ErrorCode = "INSUFFICIENT_OPTIONS"
	CodeInvalidAnswerKey    ErrorCode = "INVALID_ANSWER_KEY"
	CodeInvalidStrand       ErrorCode = "INVALID_STRAND"
	CodeQuizHasAttempts     ErrorCode = "QUIZ_HAS_ATTEMPTS"

	// Attempt errors
	CodeAlreadyAttempted ErrorCode = "ALREADY_ATTEMPTED"

	// Account errors
	CodeUserNotFound       ErrorCode = "USER_NOT_FOUND"
	CodeEmailTaken         ErrorCode = "EMAIL_TAKEN"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidOTP         ErrorCode = "INVALID_OTP"
	CodeOTPExpired         ErrorCode = "OTP_EXPIRED"

	// Discussion errors
	CodeProfanityRejected ErrorCode = "PROFANITY_REJECTED"
	CodePostNotFound      ErrorCode = "POST_NOT_FOUND"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Helper functions for common errors
func NewNotFoundError(message string) *DomainError {
	return NewError(CodeNotFound, message, nil)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewStorageUnavailableError(cause error) *DomainError {
	return NewError(CodeStorageUnavailable, "Storage backend is unavailable", cause)
}

func NewQuizNotFoundError(quizID string) *DomainError {
	return NewError(CodeQuizNotFound, fmt.Sprintf("Quiz not found with ID: %s", quizID), nil)
}

func NewQuizHasAttemptsError(quizID string) *DomainError {
	return NewError(CodeQuizHasAttempts, fmt.Sprintf("Quiz %s has recorded attempts and cannot be deleted", quizID), nil)
}

func NewAlreadyAttemptedError(quizID string) *DomainError {
	return NewError(CodeAlreadyAttempted, fmt.Sprintf("Quiz %s was already attempted", quizID), nil)
}

func NewUserNotFoundError(userID string) *DomainError {
	return NewError(CodeUserNotFound, fmt.Sprintf("User not found: %s", userID), nil)
}

func NewEmailTakenError(email string) *DomainError {
	return NewError(CodeEmailTaken, fmt.Sprintf("Email already registered: %s", email), nil)
}

func NewInvalidStrandError(strand string) *DomainError {
	return NewError(CodeInvalidStrand, fmt.Sprintf("Invalid strand: %s", strand), nil)
}

// ValidationError describes a single invalid field in a request or an admin
// quiz submission. The code narrows the failure to one of the builder's
// rejection reasons so the admin UI can surface a specific message.
type ValidationError struct {
	Field   string    `json:"field"`
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return e[0].Error()
}

// HasCode reports whether any contained error carries the given code.
func (e ValidationErrors) HasCode(code ErrorCode) bool {
	for _, ve := range e {
		if ve.Code == code {
			return true
		}
	}
	return false
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeValidation,
		Message: fmt.Sprintf("%s is required", field),
	}
}

func NewInvalidFormatError(field string, value interface{}) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeValidation,
		Message: fmt.Sprintf("%s has invalid format: %v", field, value),
	}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeValidation,
		Message: fmt.Sprintf("%s must be between %d and %d, got %d", field, min, max, value),
	}
}

func NewMalformedSubmissionError(message string) ValidationError {
	return ValidationError{
		Field:   "questions",
		Code:    CodeMalformedSubmission,
		Message: message,
	}
}

func NewInsufficientOptionsError(field string, count int) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeInsufficientOptions,
		Message: fmt.Sprintf("multiple choice question needs at least 2 options, got %d", count),
	}
}

func NewInvalidAnswerKeyError(field, message string) ValidationError {
	return ValidationError{
		Field:   field,
		Code:    CodeInvalidAnswerKey,
		Message: message,
	}
}
