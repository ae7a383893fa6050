package domain

import "context"

// QuizRepository defines the quiz store contract. Lookups return (nil, nil)
// when the quiz does not exist; mutations on a missing quiz return a
// QUIZ_NOT_FOUND domain error.
type QuizRepository interface {
	GetQuizByID(ctx context.Context, id string) (*Quiz, error)
	ListQuizzes(ctx context.Context) ([]Quiz, error)
	ListQuizzesByStrand(ctx context.Context, strand Strand) ([]Quiz, error)
	CreateQuiz(ctx context.Context, quiz *Quiz) error
	// ReplaceQuestions swaps the full question list atomically; callers never
	// observe a partially written bank.
	ReplaceQuestions(ctx context.Context, quizID string, questions []Question) error
	DeleteQuiz(ctx context.Context, id string) error
}

// UserRepository defines the interface for user data persistence.
type UserRepository interface {
	CreateUser(ctx context.Context, user *User) error
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	GetUserByID(ctx context.Context, userID string) (*User, error)
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, userID string) error
}

// AttemptRepository persists scored attempts and answers the one-attempt
// question for the quiz-start gate.
type AttemptRepository interface {
	CreateAttempt(ctx context.Context, attempt *Attempt) error
	HasAttempted(ctx context.Context, userID, quizID string) (bool, error)
	GetAttemptsByUserID(ctx context.Context, userID string) ([]Attempt, error)
	CountAttemptsByQuizID(ctx context.Context, quizID string) (int, error)
}

// PostRepository persists the discussion feed.
type PostRepository interface {
	CreatePost(ctx context.Context, post *Post) error
	ListPosts(ctx context.Context) ([]Post, error)
	LikePost(ctx context.Context, postID string) error
}
