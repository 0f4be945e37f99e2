package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"latinvocab/internal/config"
	"latinvocab/internal/gateway"
	"latinvocab/internal/gateway/gemini"
	"latinvocab/internal/gateway/openai"
	"latinvocab/internal/handler"
	"latinvocab/internal/middleware"
	"latinvocab/internal/repository"
	"latinvocab/internal/repository/postgres"
	"latinvocab/internal/repository/sqlite"
	"latinvocab/internal/service"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	sqlitedb "github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Latin vocabulary bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("ai_provider", cfg.AI.Provider),
		zap.String("storage_driver", cfg.Database.Driver),
		zap.Bool("pin_required", cfg.AppPIN != ""),
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Open storage
	db, kv, err := openStorage(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, cfg.Database.Driver, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Initialize AI gateway
	gw, err := newGateway(ctx, cfg.AI, logger)
	if err != nil {
		logger.Fatal("Failed to create AI gateway", zap.Error(err))
	}

	// Initialize repositories
	vocabRepo := repository.NewVocabRepo(kv)
	authRepo := repository.NewAuthRepo(kv)

	// Initialize services
	authService := service.NewAuthService(authRepo, cfg.AppPIN)
	vocabService := service.NewVocabService(vocabRepo, logger)
	services := handler.Services{
		Auth:   authService,
		Vocab:  vocabService,
		Lesson: service.NewLessonService(vocabService),
		Quiz:   service.NewQuizService(vocabService, nil),
		AI:     service.NewAIService(gw, vocabService, logger),
	}

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Error("Handler failed", zap.Error(err))
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	// Initialize handler
	h := handler.NewHandler(ctx, bot, services, logger)
	h.RegisterHandlers(middleware.AuthMiddleware(authService, logger))

	logger.Info("Handlers registered")

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()

	logger.Info("Bot stopped gracefully")
}

// openStorage opens the configured database and its key-value store
func openStorage(cfg *config.Config, logger *zap.Logger) (*sql.DB, repository.KeyValueStore, error) {
	switch cfg.Database.Driver {
	case config.DriverSQLite:
		db, err := sqlite.Open(cfg.Database.SQLitePath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return db, sqlite.NewStorageRepo(db), nil
	default:
		db, err := connectDatabase(cfg.DSN(), logger)
		if err != nil {
			return nil, nil, err
		}
		return db, postgres.NewStorageRepo(db), nil
	}
}

// newGateway creates the configured AI backend
func newGateway(ctx context.Context, cfg config.AIConfig, logger *zap.Logger) (gateway.Gateway, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return openai.NewClient(cfg.APIKey, cfg.Model, logger)
	default:
		return gemini.NewClient(ctx, cfg.APIKey, cfg.Model, logger)
	}
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(2)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations applies migrations/<driver>
func runMigrations(db *sql.DB, driverName string, logger *zap.Logger) error {
	var (
		driver database.Driver
		err    error
	)
	switch driverName {
	case config.DriverSQLite:
		driver, err = sqlitedb.WithInstance(db, &sqlitedb.Config{})
	default:
		driver, err = postgresdb.WithInstance(db, &postgresdb.Config{})
	}
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations/"+driverName,
		driverName,
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("No new migrations to apply")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Info("Migrations applied successfully")
	return nil
}
