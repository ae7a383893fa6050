package service

import (
	"context"

	"campus-quiz/internal/domain"
	"campus-quiz/internal/dto"
	"campus-quiz/internal/grading"
	"campus-quiz/internal/logger"
	"campus-quiz/internal/util"

	"go.uber.org/zap"
)

// AttemptService runs the take-quiz flow: the start gate, grading on
// submission, and the learner's result history.
type AttemptService interface {
	// StartQuiz admits a learner to a quiz they have not attempted yet and
	// returns the questions with answer keys stripped.
	StartQuiz(ctx context.Context, userID, quizID string) (*dto.QuizTakeResponse, error)
	// Submit grades the answers, applies the integrity signals, and records
	// the attempt. A learner's first submission for a quiz is the only one
	// that sticks.
	Submit(ctx context.Context, userID string, req dto.SubmitAttemptRequest) (*dto.AttemptResultResponse, error)
	GetHistory(ctx context.Context, userID string) ([]dto.AttemptSummary, error)
}

type attemptServiceImpl struct {
	quizRepo    domain.QuizRepository
	attemptRepo domain.AttemptRepository
}

// NewAttemptService creates a new AttemptService.
func NewAttemptService(quizRepo domain.QuizRepository, attemptRepo domain.AttemptRepository) AttemptService {
	return &attemptServiceImpl{quizRepo: quizRepo, attemptRepo: attemptRepo}
}

func (s *attemptServiceImpl) StartQuiz(ctx context.Context, userID, quizID string) (*dto.QuizTakeResponse, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}

	attempted, err := s.attemptRepo.HasAttempted(ctx, userID, quizID)
	if err != nil {
		return nil, err
	}
	if attempted {
		return nil, domain.NewAlreadyAttemptedError(quizID)
	}

	questions := make([]dto.QuestionView, len(quiz.Questions))
	for i, q := range quiz.Questions {
		questions[i] = dto.QuestionView{
			Position:   i,
			Type:       string(q.Type),
			Text:       q.Text,
			Options:    q.Options,
			LeftItems:  q.LeftItems,
			RightItems: q.RightItems,
			TimeLimit:  q.TimeLimit,
		}
	}

	return &dto.QuizTakeResponse{
		ID:           quiz.ID,
		Title:        quiz.Title,
		Description:  quiz.Description,
		TotalTime:    quiz.TotalTime(),
		PassingScore: quiz.PassingScore,
		Questions:    questions,
	}, nil
}

func (s *attemptServiceImpl) Submit(ctx context.Context, userID string, req dto.SubmitAttemptRequest) (*dto.AttemptResultResponse, error) {
	appLogger := logger.Get()

	quiz, err := s.quizRepo.GetQuizByID(ctx, req.QuizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(req.QuizID)
	}

	// Reject a repeat submission before grading; the unique index on
	// (user_id, quiz_id) still backstops a concurrent double submit.
	attempted, err := s.attemptRepo.HasAttempted(ctx, userID, req.QuizID)
	if err != nil {
		return nil, err
	}
	if attempted {
		return nil, domain.NewAlreadyAttemptedError(req.QuizID)
	}

	result := grading.Grade(quiz, req.Answers)

	signals := domain.IntegritySignals{TimedOut: req.TimedOut, PresenceLost: req.PresenceLost}
	reason := signals.FailureReason()

	attempt := domain.NewAttempt(userID, req.QuizID, result, reason)
	attempt.ID = util.NewULID()
	if err := s.attemptRepo.CreateAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	appLogger.Info("Attempt recorded",
		zap.String("userID", userID),
		zap.String("quizID", req.QuizID),
		zap.Int("percentage", attempt.Percentage),
		zap.Bool("passed", attempt.Passed),
		zap.String("failureReason", string(reason)))

	return toAttemptResultResponse(attempt), nil
}

func (s *attemptServiceImpl) GetHistory(ctx context.Context, userID string) ([]dto.AttemptSummary, error) {
	attempts, err := s.attemptRepo.GetAttemptsByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.AttemptSummary, len(attempts))
	for i, a := range attempts {
		summaries[i] = dto.AttemptSummary{
			QuizID:        a.QuizID,
			CorrectCount:  a.CorrectCount,
			Total:         a.TotalQuestions,
			Percentage:    a.Percentage,
			Passed:        a.Passed,
			FailureReason: string(a.FailureReason),
			AttemptedAt:   a.AttemptedAt,
		}
	}
	return summaries, nil
}

func toAttemptResultResponse(a *domain.Attempt) *dto.AttemptResultResponse {
	breakdown := make([]dto.QuestionResultView, len(a.Breakdown))
	for i, r := range a.Breakdown {
		breakdown[i] = dto.QuestionResultView{
			QuestionText: r.QuestionText,
			Type:         string(r.Type),
			Submitted:    r.Submitted,
			Expected:     r.Expected,
			IsCorrect:    r.IsCorrect,
			Annotation:   r.Annotation,
		}
	}
	return &dto.AttemptResultResponse{
		QuizID:         a.QuizID,
		CorrectCount:   a.CorrectCount,
		TotalQuestions: a.TotalQuestions,
		Percentage:     a.Percentage,
		Passed:         a.Passed,
		FailureReason:  string(a.FailureReason),
		Breakdown:      breakdown,
	}
}
