package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"campus-quiz/internal/dto"
)

func TestValidateSignupRequest(t *testing.T) {
	v := NewValidator()

	errs := v.ValidateSignupRequest(dto.SignupRequest{
		Username: "juan",
		Email:    "juan@example.com",
		Password: "supersecret",
		Strand:   "STEM",
	})
	assert.Empty(t, errs)

	errs = v.ValidateSignupRequest(dto.SignupRequest{})
	assert.Len(t, errs, 4)

	errs = v.ValidateSignupRequest(dto.SignupRequest{
		Username: "juan",
		Email:    "not-an-email",
		Password: "supersecret",
		Strand:   "STEM",
	})
	assert.Len(t, errs, 1)
	assert.Equal(t, "email", errs[0].Field)

	errs = v.ValidateSignupRequest(dto.SignupRequest{
		Username: "juan",
		Email:    "juan@example.com",
		Password: "short",
		Strand:   "STEM",
	})
	assert.Len(t, errs, 1)
	assert.Equal(t, "password", errs[0].Field)
}

func TestValidateVerifyOTPRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateVerifyOTPRequest(dto.VerifyOTPRequest{Email: "a@b.com", OTP: "123456"}))

	errs := v.ValidateVerifyOTPRequest(dto.VerifyOTPRequest{Email: "a@b.com", OTP: "12ab56"})
	assert.Len(t, errs, 1)

	errs = v.ValidateVerifyOTPRequest(dto.VerifyOTPRequest{Email: "a@b.com", OTP: "12345"})
	assert.Len(t, errs, 1)
}

func TestValidateCreateQuizRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateCreateQuizRequest(dto.CreateQuizRequest{Title: "Quiz", Strand: "ICT"}))

	errs := v.ValidateCreateQuizRequest(dto.CreateQuizRequest{Strand: "ICT", PassingScore: 150})
	assert.Len(t, errs, 2)
}

func TestValidateSubmitAttemptRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateSubmitAttemptRequest(dto.SubmitAttemptRequest{
		QuizID:  "q1",
		Answers: map[string]string{},
	}))

	errs := v.ValidateSubmitAttemptRequest(dto.SubmitAttemptRequest{})
	assert.Len(t, errs, 2)
}

func TestValidateCreatePostRequest(t *testing.T) {
	v := NewValidator()

	assert.Empty(t, v.ValidateCreatePostRequest(dto.CreatePostRequest{Content: "hello"}))
	assert.Len(t, v.ValidateCreatePostRequest(dto.CreatePostRequest{Content: "   "}), 1)
}
