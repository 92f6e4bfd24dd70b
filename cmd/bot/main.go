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

	"caretrack/internal/config"
	"caretrack/internal/handler"
	"caretrack/internal/metrics"
	"caretrack/internal/middleware"
	"caretrack/internal/repository/postgres"
	"caretrack/internal/scheduler"
	"caretrack/internal/service"
	"caretrack/internal/session"
	"caretrack/migrations"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const sessionSweepSchedule = "@every 10m"

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting CareTrack Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully",
		zap.String("timezone", cfg.Location().String()),
		zap.Bool("reminders", cfg.Reminders.Enabled),
	)

	// Connect to database with retries
	db, err := connectDatabase(cfg.DatabaseURL, cfg.Database, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	m := metrics.New()

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)

	// Initialize services
	medicineService := service.NewMedicineService(userRepo)
	progressService := service.NewProgressService(userRepo, cfg.Location())
	reminderService := service.NewReminderService(userRepo, cfg.Location(), m, logger)

	sessions := session.NewStore(cfg.SessionTTL)

	// Initialize Telegram bot; the handler is created after it and
	// picked up by the error hook closure
	var h *handler.Handler
	bot, err := tele.NewBot(botSettings(cfg, func(err error, c tele.Context) {
		h.OnError(err, c)
	}))
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized")

	opts := handler.Options{
		StoreTimeout: cfg.StoreTimeout,
		Location:     cfg.Location(),
	}
	if cfg.Reminders.Enabled {
		opts.ReminderSchedule = cfg.Reminders.Schedule
	}

	// Initialize handler
	h = handler.NewHandler(bot, medicineService, progressService, sessions, m, logger, opts)

	inflight := &middleware.Inflight{}
	bot.Use(
		inflight.Middleware(),
		middleware.Recover(logger),
		middleware.NewUserLocks().Middleware(),
	)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Background jobs
	sched := scheduler.New(cfg.Location(), logger)
	if cfg.Reminders.Enabled {
		err := sched.Add("reminders", cfg.Reminders.Schedule, func(ctx context.Context) error {
			sent, err := reminderService.SendReminders(ctx, h)
			logger.Info("Reminders sent", zap.Int("count", sent))
			return err
		})
		if err != nil {
			logger.Fatal("Failed to schedule reminders", zap.Error(err))
		}
	}
	if err := sched.Add("session_sweep", sessionSweepSchedule, h.SweepSessions); err != nil {
		logger.Fatal("Failed to schedule session sweep", zap.Error(err))
	}
	sched.Start()

	var metricsServer *metrics.Server
	if cfg.MetricsAddr != "" {
		metricsServer = metrics.NewServer(cfg.MetricsAddr, logger)
		metricsServer.Start()
	}

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
	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := inflight.Wait(ctx); err != nil {
		logger.Warn("Handlers still running at shutdown", zap.Error(err))
	}
	if metricsServer != nil {
		if err := metricsServer.Shutdown(ctx); err != nil {
			logger.Warn("Failed to stop metrics server", zap.Error(err))
		}
	}

	logger.Info("Bot stopped gracefully")
}

// botSettings builds the telebot settings; onError receives every error
// a handler returns
func botSettings(cfg *config.Config, onError func(error, tele.Context)) tele.Settings {
	return tele.Settings{
		Token:   cfg.BotToken,
		Poller:  &tele.LongPoller{Timeout: cfg.PollTimeout},
		OnError: onError,
	}
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, pool config.DatabaseConfig, logger *zap.Logger) (*sql.DB, error) {
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

		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(pool.MaxOpenConns)
		db.SetMaxIdleConns(pool.MaxIdleConns)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations applies the embedded schema migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	src, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return fmt.Errorf("failed to open embedded migrations: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", src, "postgres", driver)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case errors.Is(err, migrate.ErrNoChange):
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}
