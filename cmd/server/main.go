package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/fintrack/finance-system/internal/api"
	"github.com/fintrack/finance-system/internal/core/service"
	mongodb "github.com/fintrack/finance-system/internal/infrastructure/db/mongo"
	redisdb "github.com/fintrack/finance-system/internal/infrastructure/db/redis"
	"github.com/fintrack/finance-system/internal/infrastructure/mail"
	"github.com/fintrack/finance-system/internal/pkg/config"
	"github.com/fintrack/finance-system/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger is not initialised yet.
		fallback := logger.Init(logger.Options{Level: "info"})
		fallback.Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "fintrack",
		Pretty:  cfg.Env == "development",
	})

	sessions, err := service.NewSessionIssuer(cfg.JWTSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("refusing to start without a signing secret")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	mailer := mail.NewSMTPMailer(mail.SMTPConfig{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
	notifier := mail.NewDispatcher(cfg.SMTP.Workers, mailer, log)
	defer notifier.Close()

	e := api.NewRouter(db, rdb, api.Config{
		Sessions:        sessions,
		Notifier:        notifier,
		SuperAdminEmail: cfg.SuperAdminEmail,
		AppBaseURL:      cfg.AppBaseURL,
		Logger:          log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil {
			log.Info().Err(err).Msg("http server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	if err := mongodb.NewUserRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewCategoryRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := mongodb.NewTransactionRepository(db).EnsureIndexes(ctx); err != nil {
		return err
	}
	return mongodb.NewTokenRepository(db).EnsureIndexes(ctx)
}
