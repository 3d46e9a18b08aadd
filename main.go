package main

import (
	"context"
	"log"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"hotel-management/cmd"
	"hotel-management/internal/data/repository"
	"hotel-management/internal/gateway"
	"hotel-management/internal/wire"
	"hotel-management/internal/worker"
	"hotel-management/pkg/database"
	"hotel-management/pkg/queue"
	"hotel-management/pkg/upload"
	"hotel-management/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using default production logger.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting application",
		zap.String("app", config.App.Name),
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	db, err := database.InitDB(ctx, config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to apply schema", zap.Error(err))
	}
	logger.Info("Database ready")

	// the rate limiter degrades to pass-through without redis
	rdb, err := database.InitRedis(ctx, config.Redis)
	if err != nil {
		logger.Warn("Redis unavailable, rate limiting disabled", zap.Error(err))
		rdb = nil
	} else {
		defer rdb.Close()
	}

	uploads, err := upload.NewManager(config.Upload, logger)
	if err != nil {
		logger.Fatal("Failed to prepare upload directories", zap.Error(err))
	}

	repos := repository.NewRepository(db, logger)
	payments := gateway.WithBreaker(gateway.NewStripeGateway(config.Stripe.SecretKey), logger)

	app := wire.Wiring(wire.Deps{
		Repo:     repos,
		Payments: payments,
		Uploads:  uploads,
		Redis:    rdb,
		Config:   config,
		Logger:   logger,
	})

	publisher := queue.NewAMQPPublisher(config.RabbitMQ.URL, logger)
	defer publisher.Close()

	relay := worker.NewOutboxRelay(repos.Outbox, publisher, config.Outbox.PollInterval, config.Outbox.BatchSize, logger)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		relay.Run(ctx)
	}()
	go func() {
		defer wg.Done()
		worker.RunSessionCleanup(ctx, app.Service.Auth, time.Hour, logger)
	}()

	if err := cmd.APIServer(ctx, app.Router, config.App.Port, logger); err != nil {
		logger.Error("Server stopped with error", zap.Error(err))
		stop()
	}

	wg.Wait()
	logger.Info("Shutdown complete")
}
