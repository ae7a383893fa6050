package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"campus-quiz/internal/domain"
	"campus-quiz/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return sqlx.NewDb(db, "sqlmock"), mock
}

func quizColumns() []string {
	return []string{"id", "title", "description", "topics", "strand", "category", "passing_score", "questions", "created_at", "updated_at", "deleted_at"}
}

func TestGetQuizByID(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXQuizRepository(db)

	questions := models.QuestionList{
		{Type: "multiple_choice", Text: "1+1?", Options: []string{"1", "2"}, CorrectOption: 1, TimeLimit: 30},
	}
	questionsDoc, err := questions.Value()
	require.NoError(t, err)

	now := time.Now()
	mock.ExpectQuery("SELECT id, title, description, topics, strand, category, passing_score, questions, created_at, updated_at, deleted_at FROM quizzes").
		WithArgs("quiz-1").
		WillReturnRows(sqlmock.NewRows(quizColumns()).
			AddRow("quiz-1", "Math Basics", "intro", `["algebra"]`, "STEM", "Math", 60, questionsDoc, now, now, nil))

	quiz, err := repo.GetQuizByID(context.Background(), "quiz-1")
	require.NoError(t, err)
	require.NotNil(t, quiz)

	assert.Equal(t, "Math Basics", quiz.Title)
	assert.Equal(t, domain.StrandSTEM, quiz.Strand)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, domain.QuestionMultipleChoice, quiz.Questions[0].Type)
	assert.Equal(t, 1, quiz.Questions[0].CorrectOption)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetQuizByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXQuizRepository(db)

	mock.ExpectQuery("SELECT id, title, description, topics, strand, category, passing_score, questions, created_at, updated_at, deleted_at FROM quizzes").
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(quizColumns()))

	quiz, err := repo.GetQuizByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, quiz)
}

func TestReplaceQuestionsAtomicSwap(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXQuizRepository(db)

	mock.ExpectExec("UPDATE quizzes SET questions").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "quiz-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.ReplaceQuestions(context.Background(), "quiz-1", []domain.Question{
		{Type: domain.QuestionTrueFalse, Text: "The sky is blue.", AnswerKey: "true", TimeLimit: 30},
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReplaceQuestionsMissingQuiz(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXQuizRepository(db)

	mock.ExpectExec("UPDATE quizzes SET questions").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.ReplaceQuestions(context.Background(), "missing", nil)
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeQuizNotFound, domainErr.Code)
}

func TestDeleteQuizMissing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXQuizRepository(db)

	mock.ExpectExec("UPDATE quizzes SET deleted_at").
		WithArgs(sqlmock.AnyArg(), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.DeleteQuiz(context.Background(), "missing")
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeQuizNotFound, domainErr.Code)
}

func TestGetQuizByIDDriverFailureIsStorageUnavailable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXQuizRepository(db)

	mock.ExpectQuery("SELECT id, title, description, topics, strand, category, passing_score, questions, created_at, updated_at, deleted_at FROM quizzes").
		WithArgs("quiz-1").
		WillReturnError(errors.New("disk I/O error"))

	quiz, err := repo.GetQuizByID(context.Background(), "quiz-1")
	assert.Nil(t, quiz)
	require.Error(t, err)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeStorageUnavailable, domainErr.Code)
}

func TestListQuizzesDriverFailureIsStorageUnavailable(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewSQLXQuizRepository(db)

	mock.ExpectQuery("SELECT id, title, description, topics, strand, category, passing_score, questions, created_at, updated_at, deleted_at FROM quizzes").
		WillReturnError(errors.New("database is locked"))

	quizzes, err := repo.ListQuizzes(context.Background())
	assert.Nil(t, quizzes)

	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeStorageUnavailable, domainErr.Code)
}
