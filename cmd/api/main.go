// @title Campus Quiz Portal API
// @version 1.0
// @description Strand-scoped quiz portal for senior high students: registration with email verification, one-shot quiz attempts, and a moderated discussion feed.
// @host localhost:8090
// @BasePath /api
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"campus-quiz/internal/adapter"
	"campus-quiz/internal/cache"
	"campus-quiz/internal/config"
	"campus-quiz/internal/database"
	"campus-quiz/internal/domain"
	"campus-quiz/internal/filestore"
	"campus-quiz/internal/handler"
	"campus-quiz/internal/logger"
	"campus-quiz/internal/middleware"
	"campus-quiz/internal/otp"
	"campus-quiz/internal/repository"
	"campus-quiz/internal/service"

	_ "campus-quiz/cmd/api/docs"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("duration", time.Since(start)),
			zap.String("ip", c.IP()),
		)
		return err
	}
}

// stores bundles the four persistence interfaces behind one backend choice.
type stores struct {
	quiz    domain.QuizRepository
	user    domain.UserRepository
	attempt domain.AttemptRepository
	post    domain.PostRepository
}

func buildStores(cfg *config.Config) (stores, error) {
	appLogger := logger.Get()

	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		db, err := database.NewSQLXSQLiteDB(cfg.Storage.DBPath)
		if err != nil {
			return stores{}, err
		}
		if err := database.RunMigrations(db.DB, "database/migrations"); err != nil {
			return stores{}, err
		}
		appLogger.Info("Using sqlite storage backend", zap.String("path", cfg.Storage.DBPath))
		return stores{
			quiz:    repository.NewSQLXQuizRepository(db),
			user:    repository.NewSQLXUserRepository(db),
			attempt: repository.NewSQLXAttemptRepository(db),
			post:    repository.NewSQLXPostRepository(db),
		}, nil
	default:
		fs, err := filestore.New(cfg.Storage.DataDir)
		if err != nil {
			return stores{}, err
		}
		appLogger.Info("Using file storage backend", zap.String("dir", cfg.Storage.DataDir))
		return stores{quiz: fs, user: fs, attempt: fs, post: fs}, nil
	}
}

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

	st, err := buildStores(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize storage", zap.Error(err))
	}

	// Cache: Redis when configured, in-process otherwise.
	var cacheAdapter domain.Cache
	if cfg.Redis.Address != "" {
		redisClient, err := cache.NewRedisClient(cfg.Redis)
		if err != nil {
			appLogger.Fatal("Failed to connect to Redis", zap.Error(err))
		}
		cacheAdapter = adapter.NewRedisCacheAdapter(redisClient)
		appLogger.Info("Successfully connected to Redis")
	} else {
		cacheAdapter = adapter.NewMemoryCache()
		appLogger.Info("No Redis address configured, using in-process cache")
	}

	// Mailer: real SMTP when configured, log-only in development.
	var mailer domain.Mailer
	if cfg.SMTP.Host != "" {
		mailer = adapter.NewSMTPMailer(cfg.SMTP)
	} else {
		mailer = adapter.NewLogMailer()
		appLogger.Warn("No SMTP host configured, verification codes go to the log")
	}

	otpStore := otp.NewStore(cacheAdapter, cfg.OTP.TTL)

	// Services
	authService, err := service.NewAuthService(st.user, otpStore, mailer, cfg)
	if err != nil {
		appLogger.Fatal("Failed to create AuthService", zap.Error(err))
	}
	quizService := service.NewQuizService(st.quiz, st.attempt, cacheAdapter)
	attemptService := service.NewAttemptService(st.quiz, st.attempt)
	userService := service.NewUserService(st.user)
	postService := service.NewPostService(st.post, adapter.NewWordListFilter(), adapter.NewUnimplementedDetector())

	// Handlers
	authHandler := handler.NewAuthHandler(authService)
	quizHandler := handler.NewQuizHandler(quizService, attemptService)
	adminHandler := handler.NewAdminHandler(quizService)
	userHandler := handler.NewUserHandler(userService)
	postHandler := handler.NewPostHandler(postService, userService)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  20 * time.Second,
		BodyLimit:    10 * 1024 * 1024,
		ErrorHandler: middleware.ErrorHandler(),
	})

	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,PUT,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept,Authorization", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/swagger/*", swagger.HandlerDefault)

	apiGroup := app.Group("/api")

	// Auth routes
	authGroup := apiGroup.Group("/auth")
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/verify", authHandler.VerifyOTP)
	authGroup.Post("/resend", authHandler.ResendOTP)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/refresh", authHandler.Refresh)

	// Learner routes (all protected)
	// The catalog is browsable without an account; a token scopes it to the
	// caller's strand by default.
	apiGroup.Get("/quizzes", middleware.OptionalAuth(authService), quizHandler.ListQuizzes)
	apiGroup.Get("/quizzes/:id/take", middleware.Protected(authService), quizHandler.StartQuiz)
	apiGroup.Post("/attempts", middleware.Protected(authService), quizHandler.SubmitAttempt)

	userGroup := apiGroup.Group("/me", middleware.Protected(authService))
	userGroup.Get("/", userHandler.GetProfile)
	userGroup.Delete("/", userHandler.DeleteAccount)
	userGroup.Get("/attempts", quizHandler.GetHistory)

	// Discussion feed
	postGroup := apiGroup.Group("/posts", middleware.Protected(authService))
	postGroup.Get("/", postHandler.ListPosts)
	postGroup.Post("/", postHandler.CreatePost)
	postGroup.Post("/:id/like", postHandler.LikePost)
	postGroup.Post("/analyze", postHandler.AnalyzePost)

	// Quiz authoring
	adminGroup := apiGroup.Group("/admin", middleware.Protected(authService))
	adminGroup.Post("/quizzes", adminHandler.CreateQuiz)
	adminGroup.Put("/quizzes/:id/questions", adminHandler.ReplaceQuestions)
	adminGroup.Post("/quizzes/:id/questions/form", adminHandler.ReplaceQuestionsForm)
	adminGroup.Delete("/quizzes/:id", adminHandler.DeleteQuiz)

	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("backend", cfg.Storage.Backend))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
