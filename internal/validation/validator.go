package validation

import (
	"regexp"
	"strings"

	"campus-quiz/internal/domain"
	"campus-quiz/internal/dto"
)

const maxPostLength = 1000

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateSignupRequest validates a registration request.
func (v *Validator) ValidateSignupRequest(req dto.SignupRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Username) == "" {
		errors = append(errors, domain.NewMissingFieldError("username"))
	} else if len(req.Username) > 50 {
		errors = append(errors, domain.NewOutOfRangeError("username", len(req.Username), 1, 50))
	}

	if strings.TrimSpace(req.Email) == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	} else if !isValidEmail(req.Email) {
		errors = append(errors, domain.NewInvalidFormatError("email", req.Email))
	}

	if req.Password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	} else if len(req.Password) < 8 {
		errors = append(errors, domain.NewOutOfRangeError("password", len(req.Password), 8, 72))
	}

	if strings.TrimSpace(req.Strand) == "" {
		errors = append(errors, domain.NewMissingFieldError("strand"))
	}

	return errors
}

// ValidateLoginRequest validates login credentials shape.
func (v *Validator) ValidateLoginRequest(req dto.LoginRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Email) == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	}
	if req.Password == "" {
		errors = append(errors, domain.NewMissingFieldError("password"))
	}
	return errors
}

// ValidateVerifyOTPRequest validates an OTP verification request.
func (v *Validator) ValidateVerifyOTPRequest(req dto.VerifyOTPRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Email) == "" {
		errors = append(errors, domain.NewMissingFieldError("email"))
	}
	if strings.TrimSpace(req.OTP) == "" {
		errors = append(errors, domain.NewMissingFieldError("otp"))
	} else if !isSixDigits(req.OTP) {
		errors = append(errors, domain.NewInvalidFormatError("otp", req.OTP))
	}
	return errors
}

// ValidateCreateQuizRequest validates the quiz shell an admin submits.
func (v *Validator) ValidateCreateQuizRequest(req dto.CreateQuizRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.Title) == "" {
		errors = append(errors, domain.NewMissingFieldError("title"))
	} else if len(req.Title) > 200 {
		errors = append(errors, domain.NewOutOfRangeError("title", len(req.Title), 1, 200))
	}

	if strings.TrimSpace(req.Strand) == "" {
		errors = append(errors, domain.NewMissingFieldError("strand"))
	}

	if req.PassingScore < 0 || req.PassingScore > 100 {
		errors = append(errors, domain.NewOutOfRangeError("passing_score", req.PassingScore, 0, 100))
	}

	return errors
}

// ValidateSubmitAttemptRequest validates a quiz submission envelope. Answer
// values themselves are the grader's business; missing or garbled answers
// score as incorrect rather than erroring.
func (v *Validator) ValidateSubmitAttemptRequest(req dto.SubmitAttemptRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(req.QuizID) == "" {
		errors = append(errors, domain.NewMissingFieldError("quiz_id"))
	}
	if req.Answers == nil {
		errors = append(errors, domain.NewMissingFieldError("answers"))
	}
	return errors
}

// ValidateCreatePostRequest validates a discussion post.
func (v *Validator) ValidateCreatePostRequest(req dto.CreatePostRequest) domain.ValidationErrors {
	var errors domain.ValidationErrors

	content := strings.TrimSpace(req.Content)
	if content == "" {
		errors = append(errors, domain.NewMissingFieldError("content"))
	} else if len(content) > maxPostLength {
		errors = append(errors, domain.NewOutOfRangeError("content", len(content), 1, maxPostLength))
	}
	return errors
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func isValidEmail(s string) bool {
	return emailPattern.MatchString(strings.TrimSpace(s))
}

func isSixDigits(s string) bool {
	if len(s) != 6 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
