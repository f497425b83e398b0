package main

import (
	"context"
	"log"

	"github.com/colleaguesnet/colleagues-bot/adapters/event"
	"github.com/colleaguesnet/colleagues-bot/adapters/persistence"
	subscriptionUC "github.com/colleaguesnet/colleagues-bot/internal/application/usecase/subscription"
	"github.com/colleaguesnet/colleagues-bot/internal/config"
	"github.com/colleaguesnet/colleagues-bot/pkg/logger"
)

// The sweeper is invoked once a day by an external scheduler. It forces the
// lazy demotion side effect for every currently-premium user and exits.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	zlog := logger.NewZapLogger(cfg.App.Env)

	dbPool, err := persistence.NewPostgresPool(cfg, zlog)
	if err != nil {
		zlog.Fatal("cannot connect Postgres", err)
	}
	defer dbPool.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg, zlog)
	if err != nil {
		zlog.Fatal("cannot init Kafka", err)
	}
	defer kafkaClient.Close()

	profileRepo := persistence.NewPostgresProfileRepo(dbPool, zlog)
	subsUseCase := subscriptionUC.NewUseCase(profileRepo, kafkaClient, zlog, cfg.Billing.SubscriptionDays)

	if err := subsUseCase.Sweep(context.Background()); err != nil {
		zlog.Fatal("subscription sweep failed", err)
	}

	zlog.Info("Subscription sweep finished.")
}
