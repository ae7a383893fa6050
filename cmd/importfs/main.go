// Command importfs migrates data from the flat-file backend into the sqlite
// backend. It reads every collection from the JSON document store and writes
// it through the relational repositories, so a deployment can switch
// STORAGE_BACKEND without losing data.
package main

import (
	"context"
	"errors"
	"log"

	"campus-quiz/internal/config"
	"campus-quiz/internal/database"
	"campus-quiz/internal/domain"
	"campus-quiz/internal/filestore"
	"campus-quiz/internal/logger"
	"campus-quiz/internal/repository"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	fs, err := filestore.New(cfg.Storage.DataDir)
	if err != nil {
		appLogger.Fatal("Failed to open file store", zap.Error(err))
	}

	db, err := database.NewSQLXSQLiteDB(cfg.Storage.DBPath)
	if err != nil {
		appLogger.Fatal("Failed to open sqlite database", zap.Error(err))
	}
	defer db.Close()

	if err := database.RunMigrations(db.DB, "database/migrations"); err != nil {
		appLogger.Fatal("Migration failed", zap.Error(err))
	}

	quizRepo := repository.NewSQLXQuizRepository(db)
	userRepo := repository.NewSQLXUserRepository(db)
	postRepo := repository.NewSQLXPostRepository(db)
	attemptRepo := repository.NewSQLXAttemptRepository(db)

	ctx := context.Background()
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		quizzes, err := fs.ListQuizzes(gctx)
		if err != nil {
			return err
		}
		for i := range quizzes {
			if err := quizRepo.CreateQuiz(gctx, &quizzes[i]); err != nil {
				return err
			}
		}
		appLogger.Info("Imported quizzes", zap.Int("count", len(quizzes)))
		return nil
	})

	g.Go(func() error {
		posts, err := fs.ListPosts(gctx)
		if err != nil {
			return err
		}
		for i := range posts {
			if err := postRepo.CreatePost(gctx, &posts[i]); err != nil {
				return err
			}
		}
		appLogger.Info("Imported posts", zap.Int("count", len(posts)))
		return nil
	})

	// Users before attempts: attempts reference users by ID.
	users, err := fs.ListUsers(ctx)
	if err != nil {
		appLogger.Fatal("Failed to read users", zap.Error(err))
	}
	g.Go(func() error {
		imported := 0
		for i := range users {
			if err := userRepo.CreateUser(gctx, &users[i]); err != nil {
				// A re-run skips accounts that already made it over.
				if isCode(err, domain.CodeEmailTaken) {
					continue
				}
				return err
			}
			imported++
		}
		appLogger.Info("Imported users", zap.Int("count", imported))
		return nil
	})

	if err := g.Wait(); err != nil {
		appLogger.Fatal("Import failed", zap.Error(err))
	}

	// Attempts last, sequentially, so the unique (user, quiz) constraint can
	// flag duplicates from earlier partial runs.
	imported := 0
	for i := range users {
		attempts, err := fs.GetAttemptsByUserID(ctx, users[i].ID)
		if err != nil {
			appLogger.Fatal("Failed to read attempts", zap.Error(err))
		}
		for j := range attempts {
			if err := attemptRepo.CreateAttempt(ctx, &attempts[j]); err != nil {
				if isCode(err, domain.CodeAlreadyAttempted) {
					continue
				}
				appLogger.Fatal("Failed to import attempt", zap.Error(err))
			}
			imported++
		}
	}
	appLogger.Info("Imported attempts", zap.Int("count", imported))
	appLogger.Info("Import completed successfully")
}

func isCode(err error, code domain.ErrorCode) bool {
	var derr *domain.DomainError
	return errors.As(err, &derr) && derr.Code == code
}
