package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"campus-quiz/internal/domain"
	"campus-quiz/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxQuizRepository implements domain.QuizRepository using sqlx.
type sqlxQuizRepository struct {
	db *sqlx.DB
}

// NewSQLXQuizRepository creates a new instance of sqlxQuizRepository.
func NewSQLXQuizRepository(db *sqlx.DB) domain.QuizRepository {
	return &sqlxQuizRepository{db: db}
}

func toModelQuestions(questions []domain.Question) models.QuestionList {
	out := make(models.QuestionList, len(questions))
	for i, q := range questions {
		out[i] = models.Question{
			Type:           string(q.Type),
			Text:           q.Text,
			Options:        q.Options,
			CorrectOption:  q.CorrectOption,
			AnswerKey:      q.AnswerKey,
			Blanks:         q.Blanks,
			LeftItems:      q.LeftItems,
			RightItems:     q.RightItems,
			CorrectMatches: q.CorrectMatches,
			TimeLimit:      q.TimeLimit,
		}
	}
	return out
}

func toDomainQuestions(questions models.QuestionList) []domain.Question {
	out := make([]domain.Question, len(questions))
	for i, q := range questions {
		out[i] = domain.Question{
			Type:           domain.QuestionType(q.Type),
			Text:           q.Text,
			Options:        q.Options,
			CorrectOption:  q.CorrectOption,
			AnswerKey:      q.AnswerKey,
			Blanks:         q.Blanks,
			LeftItems:      q.LeftItems,
			RightItems:     q.RightItems,
			CorrectMatches: q.CorrectMatches,
			TimeLimit:      q.TimeLimit,
		}
	}
	return out
}

func toDomainQuiz(m *models.Quiz) *domain.Quiz {
	if m == nil {
		return nil
	}
	return &domain.Quiz{
		ID:           m.ID,
		Title:        m.Title,
		Description:  m.Description,
		Topics:       m.Topics,
		Strand:       domain.Strand(m.Strand),
		Category:     m.Category,
		PassingScore: m.PassingScore,
		Questions:    toDomainQuestions(m.Questions),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func fromDomainQuiz(q *domain.Quiz) *models.Quiz {
	return &models.Quiz{
		ID:           q.ID,
		Title:        q.Title,
		Description:  q.Description,
		Topics:       models.StringSlice(q.Topics),
		Strand:       string(q.Strand),
		Category:     q.Category,
		PassingScore: q.PassingScore,
		Questions:    toModelQuestions(q.Questions),
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

// GetQuizByID retrieves a quiz; (nil, nil) when it does not exist.
func (r *sqlxQuizRepository) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	var m models.Quiz
	query := `SELECT id, title, description, topics, strand, category, passing_score, questions, created_at, updated_at, deleted_at
	          FROM quizzes WHERE id = ? AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &m, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("failed to get quiz by id", err)
	}
	return toDomainQuiz(&m), nil
}

// ListQuizzes returns all quizzes ordered by creation time.
func (r *sqlxQuizRepository) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	var rows []models.Quiz
	query := `SELECT id, title, description, topics, strand, category, passing_score, questions, created_at, updated_at, deleted_at
	          FROM quizzes WHERE deleted_at IS NULL ORDER BY created_at`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, storageError("failed to list quizzes", err)
	}

	out := make([]domain.Quiz, len(rows))
	for i := range rows {
		out[i] = *toDomainQuiz(&rows[i])
	}
	return out, nil
}

// ListQuizzesByStrand returns the quizzes visible to one strand.
func (r *sqlxQuizRepository) ListQuizzesByStrand(ctx context.Context, strand domain.Strand) ([]domain.Quiz, error) {
	var rows []models.Quiz
	query := `SELECT id, title, description, topics, strand, category, passing_score, questions, created_at, updated_at, deleted_at
	          FROM quizzes WHERE strand = ? AND deleted_at IS NULL ORDER BY created_at`

	if err := r.db.SelectContext(ctx, &rows, query, string(strand)); err != nil {
		return nil, storageError("failed to list quizzes by strand", err)
	}

	out := make([]domain.Quiz, len(rows))
	for i := range rows {
		out[i] = *toDomainQuiz(&rows[i])
	}
	return out, nil
}

// CreateQuiz inserts a new quiz row.
func (r *sqlxQuizRepository) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	m := fromDomainQuiz(quiz)
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	m.UpdatedAt = time.Now()

	query := `INSERT INTO quizzes (id, title, description, topics, strand, category, passing_score, questions, created_at, updated_at)
	          VALUES (:id, :title, :description, :topics, :strand, :category, :passing_score, :questions, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		return storageError("failed to create quiz", err)
	}
	return nil
}

// ReplaceQuestions swaps the full question bank in one UPDATE of the
// questions document column, so callers never observe a partial bank.
func (r *sqlxQuizRepository) ReplaceQuestions(ctx context.Context, quizID string, questions []domain.Question) error {
	doc, err := toModelQuestions(questions).Value()
	if err != nil {
		return fmt.Errorf("failed to encode question bank: %w", err)
	}

	query := `UPDATE quizzes SET questions = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, doc, time.Now(), quizID)
	if err != nil {
		return storageError("failed to replace questions", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return domain.NewQuizNotFoundError(quizID)
	}
	return nil
}

// DeleteQuiz soft-deletes a quiz row.
func (r *sqlxQuizRepository) DeleteQuiz(ctx context.Context, id string) error {
	query := `UPDATE quizzes SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return storageError("failed to delete quiz", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return domain.NewQuizNotFoundError(id)
	}
	return nil
}
