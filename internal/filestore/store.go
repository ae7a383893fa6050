// Package filestore persists the portal's data as flat JSON document lists,
// one file per collection. It serves the same store interfaces as the
// relational adapter; the earliest portal revisions ran entirely on files
// like these and the backend is still selectable through config.
package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"campus-quiz/internal/domain"
)

const (
	quizzesFile  = "quizzes.json"
	usersFile    = "users.json"
	attemptsFile = "attempts.json"
	postsFile    = "posts.json"
)

// Store is a file-backed implementation of the quiz, user, attempt and post
// repositories. A single mutex serializes writers; every mutation rewrites
// the whole document list through a temp file and rename so a crash never
// leaves a half-written collection.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New opens (or initializes) a file store rooted at dir.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	s := &Store{dir: dir}

	// Seed the quiz collection on first run, matching the portal's original
	// starter content.
	if _, err := os.Stat(s.path(quizzesFile)); os.IsNotExist(err) {
		if err := s.writeFile(quizzesFile, seedQuizzes()); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

func readFile[T any](s *Store, name string) ([]T, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, domain.NewStorageUnavailableError(err)
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, domain.NewStorageUnavailableError(fmt.Errorf("corrupt document list %s: %w", name, err))
	}
	return out, nil
}

func (s *Store) writeFile(name string, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return domain.NewStorageUnavailableError(err)
	}
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return domain.NewStorageUnavailableError(err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return domain.NewStorageUnavailableError(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return domain.NewStorageUnavailableError(err)
	}
	if err := os.Rename(tmp.Name(), s.path(name)); err != nil {
		os.Remove(tmp.Name())
		return domain.NewStorageUnavailableError(err)
	}
	return nil
}

// --- quiz repository ---

type quizDoc struct {
	ID           string            `json:"id"`
	Title        string            `json:"title"`
	Description  string            `json:"description"`
	Topics       []string          `json:"topics"`
	Strand       string            `json:"strand"`
	Category     string            `json:"category"`
	PassingScore int               `json:"passing_score"`
	Questions    []questionDoc     `json:"questions"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type questionDoc struct {
	Type           string   `json:"type"`
	Text           string   `json:"text"`
	Options        []string `json:"options,omitempty"`
	CorrectOption  int      `json:"correct_option"`
	AnswerKey      string   `json:"answer_key,omitempty"`
	Blanks         []string `json:"blanks,omitempty"`
	LeftItems      []string `json:"left_items,omitempty"`
	RightItems     []string `json:"right_items,omitempty"`
	CorrectMatches []int    `json:"correct_matches,omitempty"`
	TimeLimit      int      `json:"time_limit"`
}

func toQuizDoc(q *domain.Quiz) quizDoc {
	questions := make([]questionDoc, len(q.Questions))
	for i, question := range q.Questions {
		questions[i] = questionDoc(question2doc(question))
	}
	return quizDoc{
		ID:           q.ID,
		Title:        q.Title,
		Description:  q.Description,
		Topics:       q.Topics,
		Strand:       string(q.Strand),
		Category:     q.Category,
		PassingScore: q.PassingScore,
		Questions:    questions,
		CreatedAt:    q.CreatedAt,
		UpdatedAt:    q.UpdatedAt,
	}
}

func question2doc(q domain.Question) questionDoc {
	return questionDoc{
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

func doc2question(d questionDoc) domain.Question {
	return domain.Question{
		Type:           domain.QuestionType(d.Type),
		Text:           d.Text,
		Options:        d.Options,
		CorrectOption:  d.CorrectOption,
		AnswerKey:      d.AnswerKey,
		Blanks:         d.Blanks,
		LeftItems:      d.LeftItems,
		RightItems:     d.RightItems,
		CorrectMatches: d.CorrectMatches,
		TimeLimit:      d.TimeLimit,
	}
}

func toDomainQuiz(d quizDoc) domain.Quiz {
	questions := make([]domain.Question, len(d.Questions))
	for i, q := range d.Questions {
		questions[i] = doc2question(q)
	}
	return domain.Quiz{
		ID:           d.ID,
		Title:        d.Title,
		Description:  d.Description,
		Topics:       d.Topics,
		Strand:       domain.Strand(d.Strand),
		Category:     d.Category,
		PassingScore: d.PassingScore,
		Questions:    questions,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (s *Store) GetQuizByID(ctx context.Context, id string) (*domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readFile[quizDoc](s, quizzesFile)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if d.ID == id {
			quiz := toDomainQuiz(d)
			return &quiz, nil
		}
	}
	return nil, nil
}

func (s *Store) ListQuizzes(ctx context.Context) ([]domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readFile[quizDoc](s, quizzesFile)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Quiz, len(docs))
	for i, d := range docs {
		out[i] = toDomainQuiz(d)
	}
	return out, nil
}

func (s *Store) ListQuizzesByStrand(ctx context.Context, strand domain.Strand) ([]domain.Quiz, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readFile[quizDoc](s, quizzesFile)
	if err != nil {
		return nil, err
	}
	var out []domain.Quiz
	for _, d := range docs {
		if domain.Strand(d.Strand) == strand {
			out = append(out, toDomainQuiz(d))
		}
	}
	return out, nil
}

func (s *Store) CreateQuiz(ctx context.Context, quiz *domain.Quiz) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readFile[quizDoc](s, quizzesFile)
	if err != nil {
		return err
	}
	docs = append(docs, toQuizDoc(quiz))
	return s.writeFile(quizzesFile, docs)
}

func (s *Store) ReplaceQuestions(ctx context.Context, quizID string, questions []domain.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readFile[quizDoc](s, quizzesFile)
	if err != nil {
		return err
	}
	for i := range docs {
		if docs[i].ID == quizID {
			newDocs := make([]questionDoc, len(questions))
			for j, q := range questions {
				newDocs[j] = question2doc(q)
			}
			docs[i].Questions = newDocs
			docs[i].UpdatedAt = time.Now()
			return s.writeFile(quizzesFile, docs)
		}
	}
	return domain.NewQuizNotFoundError(quizID)
}

func (s *Store) DeleteQuiz(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readFile[quizDoc](s, quizzesFile)
	if err != nil {
		return err
	}
	kept := docs[:0]
	found := false
	for _, d := range docs {
		if d.ID == id {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	if !found {
		return domain.NewQuizNotFoundError(id)
	}
	return s.writeFile(quizzesFile, kept)
}

// --- user repository ---

type userDoc struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password_hash"`
	Strand       string    `json:"strand"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readFile[userDoc](s, usersFile)
	if err != nil {
		return err
	}
	for _, d := range docs {
		if d.Email == user.Email {
			return domain.NewEmailTakenError(user.Email)
		}
	}
	docs = append(docs, userDoc{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Strand:       string(user.Strand),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	})
	return s.writeFile(usersFile, docs)
}

func doc2user(d userDoc) *domain.User {
	return &domain.User{
		ID:           d.ID,
		Username:     d.Username,
		Email:        d.Email,
		PasswordHash: d.PasswordHash,
		Strand:       domain.Strand(d.Strand),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readFile[userDoc](s, usersFile)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if d.Email == email {
			return doc2user(d), nil
		}
	}
	return nil, nil
}

func (s *Store) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readFile[userDoc](s, usersFile)
	if err != nil {
		return nil, err
	}
	for _, d := range docs {
		if d.ID == userID {
			return doc2user(d), nil
		}
	}
	return nil, nil
}

// ListUsers returns every stored account. The backend-migration tool uses it
// to enumerate accounts; it is not part of the repository contract.
func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readFile[userDoc](s, usersFile)
	if err != nil {
		return nil, err
	}
	out := make([]domain.User, len(docs))
	for i, d := range docs {
		out[i] = *doc2user(d)
	}
	return out, nil
}

func (s *Store) UpdateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readFile[userDoc](s, usersFile)
	if err != nil {
		return err
	}
	for i := range docs {
		if docs[i].ID == user.ID {
			docs[i].Username = user.Username
			docs[i].PasswordHash = user.PasswordHash
			docs[i].Strand = string(user.Strand)
			docs[i].UpdatedAt = time.Now()
			return s.writeFile(usersFile, docs)
		}
	}
	return domain.NewUserNotFoundError(user.ID)
}

func (s *Store) DeleteUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readFile[userDoc](s, usersFile)
	if err != nil {
		return err
	}
	kept := docs[:0]
	found := false
	for _, d := range docs {
		if d.ID == userID {
			found = true
			continue
		}
		kept = append(kept, d)
	}
	if !found {
		return domain.NewUserNotFoundError(userID)
	}
	return s.writeFile(usersFile, kept)
}

// --- attempt repository ---

type attemptDoc struct {
	ID             string      `json:"id"`
	UserID         string      `json:"user_id"`
	QuizID         string      `json:"quiz_id"`
	CorrectCount   int         `json:"correct_count"`
	TotalQuestions int         `json:"total_questions"`
	Percentage     int         `json:"percentage"`
	Passed         bool        `json:"passed"`
	FailureReason  string      `json:"failure_reason,omitempty"`
	Breakdown      []resultDoc `json:"breakdown"`
	AttemptedAt    time.Time   `json:"attempted_at"`
	CreatedAt      time.Time   `json:"created_at"`
}

type resultDoc struct {
	QuestionText string `json:"question_text"`
	Type         string `json:"type"`
	Submitted    string `json:"submitted"`
	Expected     string `json:"expected"`
	IsCorrect    bool   `json:"is_correct"`
	Annotation   string `json:"annotation,omitempty"`
}

func (s *Store) CreateAttempt(ctx context.Context, attempt *domain.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readFile[attemptDoc](s, attemptsFile)
	if err != nil {
		return err
	}
	// One completed attempt per (user, quiz); the first record wins.
	for _, d := range docs {
		if d.UserID == attempt.UserID && d.QuizID == attempt.QuizID {
			return domain.NewAlreadyAttemptedError(attempt.QuizID)
		}
	}

	breakdown := make([]resultDoc, len(attempt.Breakdown))
	for i, r := range attempt.Breakdown {
		breakdown[i] = resultDoc{
			QuestionText: r.QuestionText,
			Type:         string(r.Type),
			Submitted:    r.Submitted,
			Expected:     r.Expected,
			IsCorrect:    r.IsCorrect,
			Annotation:   r.Annotation,
		}
	}
	docs = append(docs, attemptDoc{
		ID:             attempt.ID,
		UserID:         attempt.UserID,
		QuizID:         attempt.QuizID,
		CorrectCount:   attempt.CorrectCount,
		TotalQuestions: attempt.TotalQuestions,
		Percentage:     attempt.Percentage,
		Passed:         attempt.Passed,
		FailureReason:  string(attempt.FailureReason),
		Breakdown:      breakdown,
		AttemptedAt:    attempt.AttemptedAt,
		CreatedAt:      attempt.CreatedAt,
	})
	return s.writeFile(attemptsFile, docs)
}

func (s *Store) HasAttempted(ctx context.Context, userID, quizID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readFile[attemptDoc](s, attemptsFile)
	if err != nil {
		return false, err
	}
	for _, d := range docs {
		if d.UserID == userID && d.QuizID == quizID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) GetAttemptsByUserID(ctx context.Context, userID string) ([]domain.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readFile[attemptDoc](s, attemptsFile)
	if err != nil {
		return nil, err
	}
	var out []domain.Attempt
	for _, d := range docs {
		if d.UserID != userID {
			continue
		}
		breakdown := make([]domain.QuestionResult, len(d.Breakdown))
		for i, r := range d.Breakdown {
			breakdown[i] = domain.QuestionResult{
				QuestionText: r.QuestionText,
				Type:         domain.QuestionType(r.Type),
				Submitted:    r.Submitted,
				Expected:     r.Expected,
				IsCorrect:    r.IsCorrect,
				Annotation:   r.Annotation,
			}
		}
		out = append(out, domain.Attempt{
			ID:             d.ID,
			UserID:         d.UserID,
			QuizID:         d.QuizID,
			CorrectCount:   d.CorrectCount,
			TotalQuestions: d.TotalQuestions,
			Percentage:     d.Percentage,
			Passed:         d.Passed,
			FailureReason:  domain.FailureReason(d.FailureReason),
			Breakdown:      breakdown,
			AttemptedAt:    d.AttemptedAt,
			CreatedAt:      d.CreatedAt,
		})
	}
	return out, nil
}

func (s *Store) CountAttemptsByQuizID(ctx context.Context, quizID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readFile[attemptDoc](s, attemptsFile)
	if err != nil {
		return 0, err
	}
	count := 0
	for _, d := range docs {
		if d.QuizID == quizID {
			count++
		}
	}
	return count, nil
}

// --- post repository ---

type postDoc struct {
	ID        string    `json:"id"`
	Author    string    `json:"author"`
	Strand    string    `json:"strand"`
	Content   string    `json:"content"`
	Likes     int       `json:"likes"`
	CreatedAt time.Time `json:"timestamp"`
}

func (s *Store) CreatePost(ctx context.Context, post *domain.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readFile[postDoc](s, postsFile)
	if err != nil {
		return err
	}
	docs = append(docs, postDoc{
		ID:        post.ID,
		Author:    post.Author,
		Strand:    string(post.Strand),
		Content:   post.Content,
		Likes:     post.Likes,
		CreatedAt: post.CreatedAt,
	})
	return s.writeFile(postsFile, docs)
}

func (s *Store) ListPosts(ctx context.Context) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readFile[postDoc](s, postsFile)
	if err != nil {
		return nil, err
	}
	// newest first
	out := make([]domain.Post, 0, len(docs))
	for i := len(docs) - 1; i >= 0; i-- {
		d := docs[i]
		out = append(out, domain.Post{
			ID:        d.ID,
			Author:    d.Author,
			Strand:    domain.Strand(d.Strand),
			Content:   d.Content,
			Likes:     d.Likes,
			CreatedAt: d.CreatedAt,
		})
	}
	return out, nil
}

func (s *Store) LikePost(ctx context.Context, postID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	docs, err := readFile[postDoc](s, postsFile)
	if err != nil {
		return err
	}
	for i := range docs {
		if docs[i].ID == postID {
			docs[i].Likes++
			return s.writeFile(postsFile, docs)
		}
	}
	return domain.NewError(domain.CodePostNotFound, fmt.Sprintf("Post not found: %s", postID), nil)
}
