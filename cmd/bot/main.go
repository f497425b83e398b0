package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/colleaguesnet/colleagues-bot/adapters/event"
	httpAdapter "github.com/colleaguesnet/colleagues-bot/adapters/http"
	"github.com/colleaguesnet/colleagues-bot/adapters/persistence"
	"github.com/colleaguesnet/colleagues-bot/adapters/telegram"
	connectionUC "github.com/colleaguesnet/colleagues-bot/internal/application/usecase/connection"
	matchUC "github.com/colleaguesnet/colleagues-bot/internal/application/usecase/match"
	profileUC "github.com/colleaguesnet/colleagues-bot/internal/application/usecase/profile"
	subscriptionUC "github.com/colleaguesnet/colleagues-bot/internal/application/usecase/subscription"
	workUC "github.com/colleaguesnet/colleagues-bot/internal/application/usecase/work"
	"github.com/colleaguesnet/colleagues-bot/internal/config"
	"github.com/colleaguesnet/colleagues-bot/pkg/auth"
	"github.com/colleaguesnet/colleagues-bot/pkg/logger"
	"github.com/colleaguesnet/colleagues-bot/pkg/tracing"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	zlog := logger.NewZapLogger(cfg.App.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Otel.Endpoint != "" {
		tp, err := tracing.NewTracerProvider(cfg, zlog, "colleagues-bot")
		if err != nil {
			zlog.Fatal("cannot init tracing", err)
		}
		defer tp.Shutdown(context.Background())
	}

	dbPool, err := persistence.NewPostgresPool(cfg, zlog)
	if err != nil {
		zlog.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, zlog)
	if err != nil {
		zlog.Fatal("cannot connect Redis", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg, zlog)
	if err != nil {
		zlog.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	// Repositories
	profileRepo := persistence.NewPostgresProfileRepo(dbPool, zlog)
	workRepo := persistence.NewPostgresWorkRepo(dbPool)
	connRepo := persistence.NewPostgresConnectionRepo(dbPool, zlog)
	matchRepo := persistence.NewPostgresMatchRepo(dbPool, zlog)
	sessionStore := persistence.NewRedisSessionStore(redisClient)

	// Transport
	api, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
	if err != nil {
		zlog.Fatal("cannot init Telegram bot API", err)
	}
	notifier := telegram.NewNotifier(api)

	// Use cases
	subsUseCase := subscriptionUC.NewUseCase(profileRepo, kafkaClient, zlog, cfg.Billing.SubscriptionDays)
	profileUseCase := profileUC.NewUseCase(profileRepo, zlog)
	workUseCase := workUC.NewUseCase(workRepo, subsUseCase, zlog)
	matchUseCase := matchUC.NewUseCase(matchRepo, sessionStore, zlog)
	connUseCase := connectionUC.NewUseCase(
		connRepo, sessionStore, subsUseCase, notifier, kafkaClient, zlog,
		connectionUC.Limits{
			Free:    cfg.Limits.DailyConnectionsFree,
			Premium: cfg.Limits.DailyConnectionsPremium,
		},
	)

	// Admin API
	jwtSvc := auth.NewJWTService(cfg.App.JWTSecret, cfg.App.TokenLifespan)
	adminHandler := httpAdapter.NewAdminHandler(profileRepo, connRepo, jwtSvc, cfg.App.AdminSecret, zlog)
	router := httpAdapter.NewRouter(cfg, adminHandler, jwtSvc, zlog)

	go func() {
		if err := router.Run(":" + cfg.App.AdminPort); err != nil {
			zlog.Fatal("cannot run admin server", err)
		}
	}()

	bot := telegram.NewBot(api, profileUseCase, workUseCase, subsUseCase, connUseCase, matchUseCase, cfg, zlog)
	bot.Run(ctx)

	zlog.Info("Shutting down.")
}
