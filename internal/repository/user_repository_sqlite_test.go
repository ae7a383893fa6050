package repository

import (
	"context"
	"path/filepath"
	"testing"

	"campus-quiz/internal/database"
	"campus-quiz/internal/domain"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newSQLiteDB opens a real migrated database so constraint behavior is
// exercised against the actual schema, not a mock.
func newSQLiteDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.NewSQLXSQLiteDB(filepath.Join(t.TempDir(), "portal.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, database.RunMigrations(db.DB, "../../database/migrations"))
	return db
}

func newTestUser(id, email string) *domain.User {
	return &domain.User{
		ID:           id,
		Username:     "juan",
		Email:        email,
		PasswordHash: "$2a$10$hash",
		Strand:       domain.StrandSTEM,
	}
}

func TestCreateUserRejectsLiveDuplicateEmail(t *testing.T) {
	repo := NewSQLXUserRepository(newSQLiteDB(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, newTestUser("u1", "juan@example.com")))

	err := repo.CreateUser(ctx, newTestUser("u2", "juan@example.com"))
	require.Error(t, err)
	var domainErr *domain.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, domain.CodeEmailTaken, domainErr.Code)
}

func TestEmailIsFreeAgainAfterAccountDeletion(t *testing.T) {
	repo := NewSQLXUserRepository(newSQLiteDB(t))
	ctx := context.Background()

	require.NoError(t, repo.CreateUser(ctx, newTestUser("u1", "juan@example.com")))
	require.NoError(t, repo.DeleteUser(ctx, "u1"))

	// The deleted account no longer resolves by email.
	found, err := repo.GetUserByEmail(ctx, "juan@example.com")
	require.NoError(t, err)
	assert.Nil(t, found)

	// A fresh signup with the released address succeeds.
	require.NoError(t, repo.CreateUser(ctx, newTestUser("u2", "juan@example.com")))

	found, err = repo.GetUserByEmail(ctx, "juan@example.com")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "u2", found.ID)
}
