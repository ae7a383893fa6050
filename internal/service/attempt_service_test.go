package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"campus-quiz/internal/domain"
	"campus-quiz/internal/dto"
)

func gradableQuiz() *domain.Quiz {
	q := validQuiz("q1")
	q.Questions = []domain.Question{
		{
			Type:          domain.QuestionMultipleChoice,
			Text:          "2 + 2 = ?",
			Options:       []string{"3", "4", "5"},
			CorrectOption: 1,
			TimeLimit:     30,
		},
		{Type: domain.QuestionTrueFalse, Text: "The sky is blue.", AnswerKey: "true", TimeLimit: 15},
	}
	return q
}

func TestStartQuizStripsAnswers(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	attemptRepo := new(MockAttemptRepository)
	svc := NewAttemptService(quizRepo, attemptRepo)
	ctx := context.Background()

	quizRepo.On("GetQuizByID", ctx, "q1").Return(gradableQuiz(), nil).Once()
	attemptRepo.On("HasAttempted", ctx, "u1", "q1").Return(false, nil).Once()

	resp, err := svc.StartQuiz(ctx, "u1", "q1")
	require.NoError(t, err)
	require.Len(t, resp.Questions, 2)
	assert.Equal(t, 0, resp.Questions[0].Position)
	assert.Equal(t, []string{"3", "4", "5"}, resp.Questions[0].Options)
	assert.Equal(t, 45, resp.TotalTime)
}

func TestStartQuizAlreadyAttempted(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	attemptRepo := new(MockAttemptRepository)
	svc := NewAttemptService(quizRepo, attemptRepo)
	ctx := context.Background()

	quizRepo.On("GetQuizByID", ctx, "q1").Return(gradableQuiz(), nil).Once()
	attemptRepo.On("HasAttempted", ctx, "u1", "q1").Return(true, nil).Once()

	_, err := svc.StartQuiz(ctx, "u1", "q1")
	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.CodeAlreadyAttempted, derr.Code)
}

func TestStartQuizNotFound(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	svc := NewAttemptService(quizRepo, new(MockAttemptRepository))
	ctx := context.Background()

	quizRepo.On("GetQuizByID", ctx, "missing").Return(nil, nil).Once()

	_, err := svc.StartQuiz(ctx, "u1", "missing")
	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.CodeQuizNotFound, derr.Code)
}

func TestSubmitGradesAndRecords(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	attemptRepo := new(MockAttemptRepository)
	svc := NewAttemptService(quizRepo, attemptRepo)
	ctx := context.Background()

	quizRepo.On("GetQuizByID", ctx, "q1").Return(gradableQuiz(), nil).Once()
	attemptRepo.On("HasAttempted", ctx, "u1", "q1").Return(false, nil).Once()
	attemptRepo.On("CreateAttempt", ctx, mock.MatchedBy(func(a *domain.Attempt) bool {
		return a.ID != "" && a.UserID == "u1" && a.Percentage == 100 && a.Passed
	})).Return(nil).Once()

	resp, err := svc.Submit(ctx, "u1", dto.SubmitAttemptRequest{
		QuizID:  "q1",
		Answers: map[string]string{"0": "1", "1": "TRUE"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, resp.CorrectCount)
	assert.Equal(t, 100, resp.Percentage)
	assert.True(t, resp.Passed)
	require.Len(t, resp.Breakdown, 2)
	attemptRepo.AssertExpectations(t)
}

func TestSubmitTimedOutNeverPasses(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	attemptRepo := new(MockAttemptRepository)
	svc := NewAttemptService(quizRepo, attemptRepo)
	ctx := context.Background()

	quizRepo.On("GetQuizByID", ctx, "q1").Return(gradableQuiz(), nil).Once()
	attemptRepo.On("HasAttempted", ctx, "u1", "q1").Return(false, nil).Once()
	attemptRepo.On("CreateAttempt", ctx, mock.AnythingOfType("*domain.Attempt")).Return(nil).Once()

	resp, err := svc.Submit(ctx, "u1", dto.SubmitAttemptRequest{
		QuizID:   "q1",
		Answers:  map[string]string{"0": "1", "1": "true"},
		TimedOut: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 100, resp.Percentage)
	assert.False(t, resp.Passed)
	assert.Equal(t, string(domain.FailureTimeout), resp.FailureReason)
}

func TestSubmitTimeoutWinsOverPresenceLost(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	attemptRepo := new(MockAttemptRepository)
	svc := NewAttemptService(quizRepo, attemptRepo)
	ctx := context.Background()

	quizRepo.On("GetQuizByID", ctx, "q1").Return(gradableQuiz(), nil).Once()
	attemptRepo.On("HasAttempted", ctx, "u1", "q1").Return(false, nil).Once()
	attemptRepo.On("CreateAttempt", ctx, mock.AnythingOfType("*domain.Attempt")).Return(nil).Once()

	resp, err := svc.Submit(ctx, "u1", dto.SubmitAttemptRequest{
		QuizID:       "q1",
		Answers:      map[string]string{},
		TimedOut:     true,
		PresenceLost: true,
	})
	require.NoError(t, err)
	assert.Equal(t, string(domain.FailureTimeout), resp.FailureReason)
}

func TestSubmitSecondAttemptRejectedBeforeGrading(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	attemptRepo := new(MockAttemptRepository)
	svc := NewAttemptService(quizRepo, attemptRepo)
	ctx := context.Background()

	quizRepo.On("GetQuizByID", ctx, "q1").Return(gradableQuiz(), nil).Once()
	attemptRepo.On("HasAttempted", ctx, "u1", "q1").Return(true, nil).Once()

	_, err := svc.Submit(ctx, "u1", dto.SubmitAttemptRequest{QuizID: "q1", Answers: map[string]string{}})
	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.CodeAlreadyAttempted, derr.Code)
	attemptRepo.AssertNotCalled(t, "CreateAttempt", mock.Anything, mock.Anything)
}

func TestSubmitConcurrentDuplicateSurfacesAlreadyAttempted(t *testing.T) {
	quizRepo := new(MockQuizRepository)
	attemptRepo := new(MockAttemptRepository)
	svc := NewAttemptService(quizRepo, attemptRepo)
	ctx := context.Background()

	// The pre-check saw no row, but another submission won the insert race.
	quizRepo.On("GetQuizByID", ctx, "q1").Return(gradableQuiz(), nil).Once()
	attemptRepo.On("HasAttempted", ctx, "u1", "q1").Return(false, nil).Once()
	attemptRepo.On("CreateAttempt", ctx, mock.AnythingOfType("*domain.Attempt")).
		Return(domain.NewAlreadyAttemptedError("q1")).Once()

	_, err := svc.Submit(ctx, "u1", dto.SubmitAttemptRequest{QuizID: "q1", Answers: map[string]string{}})
	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.CodeAlreadyAttempted, derr.Code)
}

func TestGetHistory(t *testing.T) {
	attemptRepo := new(MockAttemptRepository)
	svc := NewAttemptService(new(MockQuizRepository), attemptRepo)
	ctx := context.Background()

	attemptRepo.On("GetAttemptsByUserID", ctx, "u1").Return([]domain.Attempt{
		{QuizID: "q1", CorrectCount: 3, TotalQuestions: 4, Percentage: 75, Passed: true},
		{QuizID: "q2", CorrectCount: 0, TotalQuestions: 5, Percentage: 0, FailureReason: domain.FailureIntegrity},
	}, nil).Once()

	history, err := svc.GetHistory(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 75, history[0].Percentage)
	assert.Equal(t, string(domain.FailureIntegrity), history[1].FailureReason)
}
