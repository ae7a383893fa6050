package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-quiz/internal/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir())
	require.NoError(t, err)
	return s
}

func sampleQuiz(id string, strand domain.Strand) *domain.Quiz {
	now := time.Now()
	return &domain.Quiz{
		ID:           id,
		Title:        "Sample",
		Strand:       strand,
		PassingScore: 60,
		Questions: []domain.Question{
			{Type: domain.QuestionTrueFalse, Text: "Water boils at 100C at sea level.", AnswerKey: "true", TimeLimit: 15},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestNewSeedsStarterQuizzes(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	quizzes, err := s.ListQuizzes(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, quizzes)
	for _, q := range quizzes {
		assert.NoError(t, q.Validate(), "seed quiz %s should be valid", q.ID)
	}

	// Reopening must not re-seed or duplicate.
	s2, err := New(dir)
	require.NoError(t, err)
	again, err := s2.ListQuizzes(context.Background())
	require.NoError(t, err)
	assert.Len(t, again, len(quizzes))
}

func TestQuizRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	quiz := sampleQuiz("q1", domain.StrandICT)
	require.NoError(t, s.CreateQuiz(ctx, quiz))

	got, err := s.GetQuizByID(ctx, "q1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, quiz.Title, got.Title)
	assert.Equal(t, domain.StrandICT, got.Strand)
	require.Len(t, got.Questions, 1)
	assert.Equal(t, domain.QuestionTrueFalse, got.Questions[0].Type)

	missing, err := s.GetUserByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestGetQuizByIDNotFound(t *testing.T) {
	s := newTestStore(t)
	got, err := s.GetQuizByID(context.Background(), "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestListQuizzesByStrand(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateQuiz(ctx, sampleQuiz("ict-1", domain.StrandICT)))
	require.NoError(t, s.CreateQuiz(ctx, sampleQuiz("ict-2", domain.StrandICT)))
	require.NoError(t, s.CreateQuiz(ctx, sampleQuiz("tvl-1", domain.StrandTVL)))

	ict, err := s.ListQuizzesByStrand(ctx, domain.StrandICT)
	require.NoError(t, err)
	assert.Len(t, ict, 2)
	for _, q := range ict {
		assert.Equal(t, domain.StrandICT, q.Strand)
	}
}

func TestReplaceQuestions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateQuiz(ctx, sampleQuiz("q1", domain.StrandSTEM)))

	replacement := []domain.Question{
		{Type: domain.QuestionShortAnswer, Text: "Name the red planet.", AnswerKey: "mars", TimeLimit: 30},
		{Type: domain.QuestionTrueFalse, Text: "The sun is a star.", AnswerKey: "true", TimeLimit: 15},
	}
	require.NoError(t, s.ReplaceQuestions(ctx, "q1", replacement))

	got, err := s.GetQuizByID(ctx, "q1")
	require.NoError(t, err)
	require.Len(t, got.Questions, 2)
	assert.Equal(t, "mars", got.Questions[0].AnswerKey)

	err = s.ReplaceQuestions(ctx, "no-such-quiz", replacement)
	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.CodeQuizNotFound, derr.Code)
}

func TestDeleteQuiz(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateQuiz(ctx, sampleQuiz("q1", domain.StrandSTEM)))
	require.NoError(t, s.DeleteQuiz(ctx, "q1"))

	got, err := s.GetQuizByID(ctx, "q1")
	require.NoError(t, err)
	assert.Nil(t, got)

	err = s.DeleteQuiz(ctx, "q1")
	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.CodeQuizNotFound, derr.Code)
}

func TestUserLifecycle(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := &domain.User{
		ID:           "u1",
		Username:     "rizal",
		Email:        "rizal@example.com",
		PasswordHash: "hash",
		Strand:       domain.StrandHUMSS,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	require.NoError(t, s.CreateUser(ctx, user))

	dup := &domain.User{ID: "u2", Username: "other", Email: "rizal@example.com", PasswordHash: "h", Strand: domain.StrandSTEM}
	err := s.CreateUser(ctx, dup)
	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.CodeEmailTaken, derr.Code)

	got, err := s.GetUserByEmail(ctx, "rizal@example.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "u1", got.ID)

	got.Username = "pepe"
	require.NoError(t, s.UpdateUser(ctx, got))
	updated, err := s.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "pepe", updated.Username)

	require.NoError(t, s.DeleteUser(ctx, "u1"))
	gone, err := s.GetUserByID(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestCreateAttemptEnforcesSingleAttempt(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	result := domain.AttemptResult{
		CorrectCount:   1,
		TotalQuestions: 2,
		Percentage:     50,
		Passed:         false,
		Breakdown: []domain.QuestionResult{
			{QuestionText: "Q1", Type: domain.QuestionTrueFalse, Submitted: "true", Expected: "true", IsCorrect: true},
			{QuestionText: "Q2", Type: domain.QuestionShortAnswer, Submitted: "", Expected: "mars", IsCorrect: false},
		},
	}
	first := domain.NewAttempt("u1", "q1", result, domain.FailureNone)
	first.ID = "a1"
	require.NoError(t, s.CreateAttempt(ctx, first))

	has, err := s.HasAttempted(ctx, "u1", "q1")
	require.NoError(t, err)
	assert.True(t, has)

	second := domain.NewAttempt("u1", "q1", result, domain.FailureNone)
	second.ID = "a2"
	err = s.CreateAttempt(ctx, second)
	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.CodeAlreadyAttempted, derr.Code)

	attempts, err := s.GetAttemptsByUserID(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, 50, attempts[0].Percentage)
	require.Len(t, attempts[0].Breakdown, 2)

	count, err := s.CountAttemptsByQuizID(ctx, "q1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestPostsNewestFirstAndLikes(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	older := &domain.Post{ID: "p1", Author: "ana", Strand: domain.StrandSTEM, Content: "first", CreatedAt: time.Now()}
	newer := &domain.Post{ID: "p2", Author: "ben", Strand: domain.StrandICT, Content: "second", CreatedAt: time.Now()}
	require.NoError(t, s.CreatePost(ctx, older))
	require.NoError(t, s.CreatePost(ctx, newer))

	posts, err := s.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "p2", posts[0].ID)

	require.NoError(t, s.LikePost(ctx, "p1"))
	require.NoError(t, s.LikePost(ctx, "p1"))
	posts, err = s.ListPosts(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, posts[1].Likes)

	err = s.LikePost(ctx, "missing")
	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.CodePostNotFound, derr.Code)
}

func TestCorruptFileReportsStorageUnavailable(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, quizzesFile), []byte("{not json"), 0o644))

	_, err = s.ListQuizzes(context.Background())
	var derr *domain.DomainError
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, domain.CodeStorageUnavailable, derr.Code)
}
