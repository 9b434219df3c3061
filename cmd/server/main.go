package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"intervue/internal/config"
	"intervue/internal/handlers"
	"intervue/internal/jobs"
	"intervue/internal/llm"
	_ "intervue/internal/llm/gemini"
	"intervue/internal/locks"
	appmiddleware "intervue/internal/middleware"
	"intervue/internal/metrics"
	"intervue/internal/models"
	"intervue/internal/repositories"
	"intervue/internal/routers"
	"intervue/internal/sessions"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func initDatabase(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Topic{},
		&models.Question{},
		&models.Test{},
		&models.InterviewSession{},
		&models.InterviewTurn{},
		&models.Score{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return db, nil
}

func registerRoutes(router *chi.Mux, authHandler *handlers.AuthHandler, sessionHandler *handlers.SessionHandler,
	topicHandler *handlers.TopicHandler, questionHandler *handlers.QuestionHandler, testHandler *handlers.TestHandler,
	healthHandler *handlers.HealthHandler, authenticate func(http.Handler) http.Handler) {
	routers.HealthRoutes(router, healthHandler)
	routers.AuthRoutes(router, authHandler)
	routers.SessionRoutes(router, sessionHandler, authenticate)
	routers.AdminRoutes(router, topicHandler, questionHandler, testHandler, authenticate)
}

func main() {
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger.Info("Configuration loaded",
		zap.String("provider", cfg.Provider),
		zap.String("port", cfg.Port))

	db, err := initDatabase(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}

	evaluator, err := llm.NewEvaluator(cfg.Provider)
	if err != nil {
		logger.Fatal("Failed to initialize evaluation provider", zap.Error(err))
	}
	logger.Info("Evaluation provider initialized", zap.String("provider", evaluator.GetProviderName()))

	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		logger.Fatal("Failed to connect to redis", zap.Error(err))
	}
	sessionLocks := locks.NewSessionLocks(rdb, cfg.EvalTimeout+10*time.Second)

	userRepo := repositories.NewUserRepository(db)
	topicRepo := repositories.NewTopicRepository(db)
	questionRepo := repositories.NewQuestionRepository(db)
	testRepo := repositories.NewTestRepository(db)
	sessionRepo := repositories.NewSessionRepository(db)

	manager := sessions.NewManager(db, evaluator, sessionLocks, logger, sessions.ManagerOptions{
		EvalTimeout:       cfg.EvalTimeout,
		MaxAdHocQuestions: cfg.MaxAdHocQuestions,
	})

	authHandler := handlers.NewAuthHandler(userRepo, cfg.JWTSecret, cfg.TokenTTL, logger)
	sessionHandler := handlers.NewSessionHandler(manager, logger)
	topicHandler := handlers.NewTopicHandler(topicRepo, questionRepo, logger)
	questionHandler := handlers.NewQuestionHandler(questionRepo, logger)
	testHandler := handlers.NewTestHandler(testRepo, logger)
	healthHandler := handlers.NewHealthHandler(db, evaluator)

	authenticate := appmiddleware.Authenticate(userRepo, cfg.JWTSecret)

	reaper := jobs.NewSessionReaperJob(sessionRepo, &jobs.ReaperConfig{
		Schedule:   cfg.ReaperSchedule,
		SessionTTL: cfg.SessionTTL,
	}, logger)
	if err := reaper.Start(); err != nil {
		logger.Fatal("Failed to start session reaper", zap.Error(err))
	}

	router := chi.NewRouter()

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.Use(middleware.RequestID, middleware.RealIP, middleware.Logger, middleware.Recoverer, middleware.Timeout(60*time.Second))
	router.Use(metrics.Middleware)

	registerRoutes(router, authHandler, sessionHandler, topicHandler, questionHandler, testHandler, healthHandler, authenticate)

	serverAddr := ":" + cfg.Port

	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 45 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Interview service starting", zap.String("addr", serverAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, syscall.SIGINT, syscall.SIGTERM)
	<-shutdownChan

	logger.Info("Interview service shutting down...")

	reaper.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	if err := rdb.Close(); err != nil {
		logger.Warn("failed to close redis client", zap.Error(err))
	}

	logger.Info("Interview service exited")
}
