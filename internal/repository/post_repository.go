package repository

import (
	"context"
	"fmt"
	"time"

	"campus-quiz/internal/domain"
	"campus-quiz/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxPostRepository implements domain.PostRepository using sqlx.
type sqlxPostRepository struct {
	db *sqlx.DB
}

// NewSQLXPostRepository creates a new instance of sqlxPostRepository.
func NewSQLXPostRepository(db *sqlx.DB) domain.PostRepository {
	return &sqlxPostRepository{db: db}
}

// CreatePost inserts a discussion feed entry.
func (r *sqlxPostRepository) CreatePost(ctx context.Context, post *domain.Post) error {
	m := &models.Post{
		ID:        post.ID,
		Author:    post.Author,
		Strand:    string(post.Strand),
		Content:   post.Content,
		Likes:     post.Likes,
		CreatedAt: post.CreatedAt,
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}

	query := `INSERT INTO posts (id, author, strand, content, likes, created_at)
	          VALUES (:id, :author, :strand, :content, :likes, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		return storageError("failed to create post", err)
	}
	return nil
}

// ListPosts returns the feed newest first.
func (r *sqlxPostRepository) ListPosts(ctx context.Context) ([]domain.Post, error) {
	var rows []models.Post
	query := `SELECT * FROM posts ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, storageError("failed to list posts", err)
	}

	out := make([]domain.Post, len(rows))
	for i, m := range rows {
		out[i] = domain.Post{
			ID:        m.ID,
			Author:    m.Author,
			Strand:    domain.Strand(m.Strand),
			Content:   m.Content,
			Likes:     m.Likes,
			CreatedAt: m.CreatedAt,
		}
	}
	return out, nil
}

// LikePost increments the like counter.
func (r *sqlxPostRepository) LikePost(ctx context.Context, postID string) error {
	query := `UPDATE posts SET likes = likes + 1 WHERE id = ?`
	result, err := r.db.ExecContext(ctx, query, postID)
	if err != nil {
		return storageError("failed to like post", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return domain.NewError(domain.CodePostNotFound, fmt.Sprintf("Post not found: %s", postID), nil)
	}
	return nil
}
