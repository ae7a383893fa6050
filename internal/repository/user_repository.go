package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"campus-quiz/internal/domain"
	"campus-quiz/internal/repository/models"

	"github.com/jmoiron/sqlx"
)

// sqlxUserRepository implements domain.UserRepository using sqlx.
type sqlxUserRepository struct {
	db *sqlx.DB
}

// NewSQLXUserRepository creates a new instance of sqlxUserRepository.
func NewSQLXUserRepository(db *sqlx.DB) domain.UserRepository {
	return &sqlxUserRepository{db: db}
}

func toDomainUser(m *models.User) *domain.User {
	if m == nil {
		return nil
	}
	var deletedAt *time.Time
	if m.DeletedAt.Valid {
		deletedAt = &m.DeletedAt.Time
	}
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Strand:       domain.Strand(m.Strand),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
		DeletedAt:    deletedAt,
	}
}

// CreateUser inserts a new user into the database.
func (r *sqlxUserRepository) CreateUser(ctx context.Context, user *domain.User) error {
	m := &models.User{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Strand:       string(user.Strand),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	query := `INSERT INTO users (id, username, email, password_hash, strand, created_at, updated_at)
	          VALUES (:id, :username, :email, :password_hash, :strand, :created_at, :updated_at)`

	if _, err := r.db.NamedExecContext(ctx, query, m); err != nil {
		if isUniqueViolation(err) {
			return domain.NewEmailTakenError(user.Email)
		}
		return storageError("failed to create user", err)
	}
	return nil
}

// GetUserByEmail retrieves a user by email; (nil, nil) when not found.
func (r *sqlxUserRepository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	var m models.User
	query := `SELECT * FROM users WHERE email = ? AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &m, query, strings.ToLower(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("failed to get user by email", err)
	}
	return toDomainUser(&m), nil
}

// GetUserByID retrieves a user by their internal ID; (nil, nil) when not found.
func (r *sqlxUserRepository) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	var m models.User
	query := `SELECT * FROM users WHERE id = ? AND deleted_at IS NULL`

	err := r.db.GetContext(ctx, &m, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, storageError("failed to get user by id", err)
	}
	return toDomainUser(&m), nil
}

// UpdateUser updates an existing user's information.
func (r *sqlxUserRepository) UpdateUser(ctx context.Context, user *domain.User) error {
	query := `UPDATE users SET
	            username = :username,
	            password_hash = :password_hash,
	            strand = :strand,
	            updated_at = :updated_at
	          WHERE id = :id AND deleted_at IS NULL`

	m := &models.User{
		ID:           user.ID,
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Strand:       string(user.Strand),
		UpdatedAt:    time.Now(),
	}

	result, err := r.db.NamedExecContext(ctx, query, m)
	if err != nil {
		return storageError("failed to update user", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return domain.NewUserNotFoundError(user.ID)
	}
	return nil
}

// DeleteUser soft-deletes the account. Stored attempts are retained; history
// rows reference quiz identifiers, not the account row.
func (r *sqlxUserRepository) DeleteUser(ctx context.Context, userID string) error {
	query := `UPDATE users SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`
	result, err := r.db.ExecContext(ctx, query, time.Now(), userID)
	if err != nil {
		return storageError("failed to delete user", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return storageError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return domain.NewUserNotFoundError(userID)
	}
	return nil
}
