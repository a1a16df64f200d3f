package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/lifedesk/backend/api/handler"
	"github.com/lifedesk/backend/internal/config"
	"github.com/lifedesk/backend/internal/infrastructure/journal"
	"github.com/lifedesk/backend/internal/infrastructure/llm"
	"github.com/lifedesk/backend/internal/infrastructure/monitor"
	pgInfra "github.com/lifedesk/backend/internal/infrastructure/postgres"
	redisInfra "github.com/lifedesk/backend/internal/infrastructure/redis"
	"github.com/lifedesk/backend/internal/infrastructure/telegram"
	"github.com/lifedesk/backend/internal/middleware"
	"github.com/lifedesk/backend/internal/router"
	"github.com/lifedesk/backend/internal/services"
	"github.com/lifedesk/backend/internal/services/lifecycle"
	"github.com/lifedesk/backend/pkg/httpcontext"
	"github.com/lifedesk/backend/pkg/logger"
	"github.com/lifedesk/backend/repository/postgres"
	redisRepo "github.com/lifedesk/backend/repository/redis"
	assistantUC "github.com/lifedesk/backend/usecase/assistant"
	profileUC "github.com/lifedesk/backend/usecase/profile"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	journalStore, err := journal.Open(cfg.Journal.Path)
	if err != nil {
		zapLogger.Fatal("failed to open journal", zap.Error(err))
	}
	manager.Register("journal", func(ctx context.Context) error {
		return journalStore.Close()
	})

	mon := monitor.New(pool, redisClient, journalStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	sweeper := services.NewJournalSweeper(journalStore, zapLogger, services.SweeperConfig{
		Interval:  cfg.Journal.SweepInterval,
		Retention: time.Duration(cfg.Journal.RetentionHours) * time.Hour,
	})
	sweeper.Start()
	manager.Register("journal_sweeper", func(ctx context.Context) error {
		sweeper.Stop(ctx)
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	conversationRepo := redisRepo.NewConversationRepository(
		redisClient,
		cfg.Conversation.LockTTL,
		cfg.Conversation.HistoryTTL,
		cfg.Conversation.MaxHistory,
	)

	executor := assistantUC.NewExecutor(assistantUC.Repositories{
		Tasks:         postgres.NewTaskRepository(pool),
		Projects:      postgres.NewProjectRepository(pool),
		Notes:         postgres.NewNoteRepository(pool),
		Habits:        postgres.NewHabitRepository(pool),
		Transactions:  postgres.NewTransactionRepository(pool),
		Courses:       postgres.NewCourseRepository(pool),
		Lessons:       postgres.NewLessonRepository(pool),
		MoviesSeries:  postgres.NewMovieSeriesRepository(pool),
		BooksPodcasts: postgres.NewBookPodcastRepository(pool),
		Clients:       postgres.NewClientRepository(pool),
		Focus:         postgres.NewFocusSessionRepository(pool),
	}, zapLogger)

	llmClient := llm.NewClient(llm.Config{
		BaseURL: cfg.Assistant.BaseURL,
		Model:   cfg.Assistant.Model,
		Timeout: cfg.Assistant.RequestTimeout,
	}, zapLogger)

	assistantUseCase := assistantUC.New(
		userRepo,
		conversationRepo,
		llmClient,
		executor,
		journalStore,
		cfg.Assistant.MaxIterations,
		zapLogger,
	)
	profileUseCase := profileUC.New(userRepo, zapLogger)

	bot := telegram.NewClient(telegram.Config{
		BaseURL: cfg.Telegram.BaseURL,
		Token:   cfg.Telegram.Token,
		Timeout: cfg.Telegram.Timeout,
	}, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Assistant: apiHandler.NewAssistantHandler(assistantUseCase, ctxAdapter, zapLogger),
		Profile:   apiHandler.NewProfileHandler(profileUseCase, ctxAdapter, zapLogger),
		Telegram:  apiHandler.NewTelegramHandler(assistantUseCase, userRepo, conversationRepo, bot, ctxAdapter, zapLogger),
		Health:    apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
