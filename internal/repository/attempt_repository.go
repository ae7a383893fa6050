package repository

import (
	"context"
	"time"

	"campus-quiz/internal/domain"
	"campus-quiz/internal/repository/models"
	"campus-quiz/internal/util"

	"github.com/jmoiron/sqlx"
)

// sqlxAttemptRepository implements domain.AttemptRepository using sqlx.
type sqlxAttemptRepository struct {
	db *sqlx.DB
}

// NewSQLXAttemptRepository creates a new instance of sqlxAttemptRepository.
func NewSQLXAttemptRepository(db *sqlx.DB) domain.AttemptRepository {
	return &sqlxAttemptRepository{db: db}
}

func toModelBreakdown(breakdown []domain.QuestionResult) models.ResultList {
	out := make(models.ResultList, len(breakdown))
	for i, r := range breakdown {
		out[i] = models.QuestionResult{
			QuestionText: r.QuestionText,
			Type:         string(r.Type),
			Submitted:    r.Submitted,
			Expected:     r.Expected,
			IsCorrect:    r.IsCorrect,
			Annotation:   r.Annotation,
		}
	}
	return out
}

func toDomainBreakdown(breakdown models.ResultList) []domain.QuestionResult {
	out := make([]domain.QuestionResult, len(breakdown))
	for i, r := range breakdown {
		out[i] = domain.QuestionResult{
			QuestionText: r.QuestionText,
			Type:         domain.QuestionType(r.Type),
			Submitted:    r.Submitted,
			Expected:     r.Expected,
			IsCorrect:    r.IsCorrect,
			Annotation:   r.Annotation,
		}
	}
	return out
}

func toDomainAttempt(m *models.Attempt) *domain.Attempt {
	if m == nil {
		return nil
	}
	return &domain.Attempt{
		ID:             m.ID,
		UserID:         m.UserID,
		QuizID:         m.QuizID,
		CorrectCount:   m.CorrectCount,
		TotalQuestions: m.TotalQuestions,
		Percentage:     m.Percentage,
		Passed:         m.Passed,
		FailureReason:  domain.FailureReason(m.FailureReason.String),
		Breakdown:      toDomainBreakdown(m.Breakdown),
		AttemptedAt:    m.AttemptedAt,
		CreatedAt:      m.CreatedAt,
	}
}

// CreateAttempt inserts a new attempt. The unique (user_id, quiz_id) index
// turns a concurrent double submission into an ALREADY_ATTEMPTED error
// instead of a second row.
func (r *sqlxAttemptRepository) CreateAttempt(ctx context.Context, attempt *domain.Attempt) error {
	m := &models.Attempt{
		ID:             attempt.ID,
		UserID:         attempt.UserID,
		QuizID:         attempt.QuizID,
		CorrectCount:   attempt.CorrectCount,
		TotalQuestions: attempt.TotalQuestions,
		Percentage:     attempt.Percentage,
		Passed:         attempt.Passed,
		FailureReason:  util.StringToNullString(string(attempt.FailureReason)),
		Breakdown:      toModelBreakdown(attempt.Breakdown),
		AttemptedAt:    attempt.AttemptedAt,
		CreatedAt:      attempt.CreatedAt,
	}
	if m.AttemptedAt.IsZero() {
		m.AttemptedAt = time.Now()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	query := `INSERT INTO attempts (id, user_id, quiz_id, correct_count, total_questions, percentage, passed, failure_reason, breakdown, attempted_at, created_at)
	          VALUES (:id, :user_id, :quiz_id, :correct_count, :total_questions, :percentage, :passed, :failure_reason, :breakdown, :attempted_at, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		if isUniqueViolation(err) {
			return domain.NewAlreadyAttemptedError(attempt.QuizID)
		}
		return storageError("failed to create attempt", err)
	}
	return nil
}

// HasAttempted answers the quiz-start gate's question.
func (r *sqlxAttemptRepository) HasAttempted(ctx context.Context, userID, quizID string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM attempts WHERE user_id = ? AND quiz_id = ?`

	if err := r.db.GetContext(ctx, &count, query, userID, quizID); err != nil {
		return false, storageError("failed to check attempt existence", err)
	}
	return count > 0, nil
}

// GetAttemptsByUserID returns a user's full history, most recent first.
func (r *sqlxAttemptRepository) GetAttemptsByUserID(ctx context.Context, userID string) ([]domain.Attempt, error) {
	var rows []models.Attempt
	query := `SELECT * FROM attempts WHERE user_id = ? ORDER BY attempted_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, storageError("failed to list attempts", err)
	}

	out := make([]domain.Attempt, len(rows))
	for i := range rows {
		out[i] = *toDomainAttempt(&rows[i])
	}
	return out, nil
}

// CountAttemptsByQuizID backs the delete-quiz guard.
func (r *sqlxAttemptRepository) CountAttemptsByQuizID(ctx context.Context, quizID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM attempts WHERE quiz_id = ?`

	if err := r.db.GetContext(ctx, &count, query, quizID); err != nil {
		return 0, storageError("failed to count attempts for quiz", err)
	}
	return count, nil
}
