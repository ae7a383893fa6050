package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"campus-quiz/internal/builder"
	"campus-quiz/internal/cache"
	"campus-quiz/internal/domain"
	"campus-quiz/internal/dto"
	"campus-quiz/internal/logger"
	"campus-quiz/internal/util"

	"go.uber.org/zap"
)

const quizListCacheTTL = 5 * time.Minute

// QuizService covers quiz authoring and the dashboard listings.
type QuizService interface {
	CreateQuiz(ctx context.Context, req dto.CreateQuizRequest) (*dto.QuizSummary, error)
	ListQuizzes(ctx context.Context, strand string) ([]dto.QuizSummary, error)
	GetQuiz(ctx context.Context, quizID string) (*domain.Quiz, error)
	// ReplaceQuestionsFromForm rebuilds a quiz's question bank from the flat
	// admin-panel form encoding.
	ReplaceQuestionsFromForm(ctx context.Context, quizID string, fields map[string][]string) error
	// ReplaceQuestions rebuilds the bank from structured submissions.
	ReplaceQuestions(ctx context.Context, quizID string, subs []dto.QuestionSubmission) error
	DeleteQuiz(ctx context.Context, quizID string) error
}

type quizServiceImpl struct {
	quizRepo    domain.QuizRepository
	attemptRepo domain.AttemptRepository
	cache       domain.Cache
}

// NewQuizService creates a new QuizService. The cache may be nil; listings
// then always go to the store.
func NewQuizService(quizRepo domain.QuizRepository, attemptRepo domain.AttemptRepository, cacheClient domain.Cache) QuizService {
	return &quizServiceImpl{
		quizRepo:    quizRepo,
		attemptRepo: attemptRepo,
		cache:       cacheClient,
	}
}

func (s *quizServiceImpl) CreateQuiz(ctx context.Context, req dto.CreateQuizRequest) (*dto.QuizSummary, error) {
	strand, err := domain.ParseStrand(req.Strand)
	if err != nil {
		return nil, domain.NewInvalidStrandError(req.Strand)
	}

	quiz := domain.NewQuiz(req.Title, req.Description, req.Topics, strand, req.Category)
	quiz.ID = util.NewULID()
	if req.PassingScore > 0 {
		quiz.PassingScore = req.PassingScore
	}
	if err := quiz.Validate(); err != nil {
		return nil, err
	}

	if err := s.quizRepo.CreateQuiz(ctx, quiz); err != nil {
		return nil, err
	}
	s.invalidateListCache(ctx, strand)

	logger.Get().Info("Quiz created",
		zap.String("quizID", quiz.ID),
		zap.String("strand", string(strand)))

	summary := toQuizSummary(*quiz)
	return &summary, nil
}

func (s *quizServiceImpl) ListQuizzes(ctx context.Context, strand string) ([]dto.QuizSummary, error) {
	appLogger := logger.Get()

	identifier := "all"
	var parsed domain.Strand
	if strand != "" {
		var err error
		parsed, err = domain.ParseStrand(strand)
		if err != nil {
			return nil, domain.NewInvalidStrandError(strand)
		}
		identifier = string(parsed)
	}

	cacheKey := cache.GenerateCacheKey("quiz", "list", identifier)
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, cacheKey); err == nil {
			var summaries []dto.QuizSummary
			if err := json.Unmarshal([]byte(cached), &summaries); err == nil {
				return summaries, nil
			}
			appLogger.Warn("Failed to decode cached quiz list, refetching", zap.String("key", cacheKey))
		} else if !errors.Is(err, domain.ErrCacheMiss) {
			appLogger.Warn("Quiz list cache read failed", zap.Error(err))
		}
	}

	var quizzes []domain.Quiz
	var err error
	if identifier == "all" {
		quizzes, err = s.quizRepo.ListQuizzes(ctx)
	} else {
		quizzes, err = s.quizRepo.ListQuizzesByStrand(ctx, parsed)
	}
	if err != nil {
		return nil, err
	}

	summaries := make([]dto.QuizSummary, len(quizzes))
	for i, q := range quizzes {
		summaries[i] = toQuizSummary(q)
	}

	if s.cache != nil {
		if data, err := json.Marshal(summaries); err == nil {
			if err := s.cache.Set(ctx, cacheKey, string(data), quizListCacheTTL); err != nil {
				appLogger.Warn("Quiz list cache write failed", zap.Error(err))
			}
		}
	}
	return summaries, nil
}

func (s *quizServiceImpl) GetQuiz(ctx context.Context, quizID string) (*domain.Quiz, error) {
	quiz, err := s.quizRepo.GetQuizByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if quiz == nil {
		return nil, domain.NewQuizNotFoundError(quizID)
	}
	return quiz, nil
}

func (s *quizServiceImpl) ReplaceQuestionsFromForm(ctx context.Context, quizID string, fields map[string][]string) error {
	questions, err := builder.BuildQuestions(fields)
	if err != nil {
		return err
	}
	return s.replaceQuestions(ctx, quizID, questions)
}

func (s *quizServiceImpl) ReplaceQuestions(ctx context.Context, quizID string, subs []dto.QuestionSubmission) error {
	questions, err := builder.FromSubmissions(subs)
	if err != nil {
		return err
	}
	return s.replaceQuestions(ctx, quizID, questions)
}

func (s *quizServiceImpl) replaceQuestions(ctx context.Context, quizID string, questions []domain.Question) error {
	quiz, err := s.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}
	if err := s.quizRepo.ReplaceQuestions(ctx, quizID, questions); err != nil {
		return err
	}
	s.invalidateListCache(ctx, quiz.Strand)

	logger.Get().Info("Quiz question bank replaced",
		zap.String("quizID", quizID),
		zap.Int("questions", len(questions)))
	return nil
}

// DeleteQuiz removes a quiz, but never one that already has recorded
// attempts: deleting it would orphan learners' history.
func (s *quizServiceImpl) DeleteQuiz(ctx context.Context, quizID string) error {
	quiz, err := s.GetQuiz(ctx, quizID)
	if err != nil {
		return err
	}

	count, err := s.attemptRepo.CountAttemptsByQuizID(ctx, quizID)
	if err != nil {
		return fmt.Errorf("failed to count attempts for quiz %s: %w", quizID, err)
	}
	if count > 0 {
		return domain.NewQuizHasAttemptsError(quizID)
	}

	if err := s.quizRepo.DeleteQuiz(ctx, quizID); err != nil {
		return err
	}
	s.invalidateListCache(ctx, quiz.Strand)

	logger.Get().Info("Quiz deleted", zap.String("quizID", quizID))
	return nil
}

func (s *quizServiceImpl) invalidateListCache(ctx context.Context, strand domain.Strand) {
	if s.cache == nil {
		return
	}
	for _, identifier := range []string{"all", string(strand)} {
		key := cache.GenerateCacheKey("quiz", "list", identifier)
		if err := s.cache.Delete(ctx, key); err != nil {
			logger.Get().Warn("Quiz list cache invalidation failed", zap.String("key", key), zap.Error(err))
		}
	}
}

func toQuizSummary(q domain.Quiz) dto.QuizSummary {
	return dto.QuizSummary{
		ID:            q.ID,
		Title:         q.Title,
		Description:   q.Description,
		Topics:        q.Topics,
		Strand:        string(q.Strand),
		Category:      q.Category,
		QuestionCount: len(q.Questions),
		TotalTime:     q.TotalTime(),
		PassingScore:  q.PassingScore,
		CreatedAt:     q.CreatedAt,
	}
}
