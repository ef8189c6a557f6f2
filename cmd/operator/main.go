package main

import (
	"context"

	"lacque/internal/operator/feed"
	"lacque/internal/operator/handler"
	"lacque/internal/operator/listener"
	"lacque/pkg/app"
	"lacque/pkg/config"
	"lacque/pkg/kafka"
	kafka_config "lacque/pkg/kafka/config"
	kafka_middleware "lacque/pkg/kafka/middleware"
)

const ServiceName = "operator"

func main() {
	cfg := config.Load(ServiceName)

	cfg.Log.Info("Starting Operator console service")
	activityFeed, cleanup := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.OnShutdown(cleanup)
	serverApp.SetApp(handler.NewActivityHandler(activityFeed, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) (*feed.ActivityFeed, func()) {
	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	activityFeed := feed.NewActivityFeed(cfg.ActivityFeedSize)
	eventListener := listener.New(activityFeed, cfg.Log)

	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.BookingEventsTopic,
		cfg.OperatorGroupID,
		cfg.BookingEventsDLQ,
		eventListener.Handle,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(kafka_middleware.LoggingConsumerMiddleware(cfg.Log))

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := consumer.Start(ctx); err != nil && err != context.Canceled {
			cfg.Log.Error("Kafka consumer stopped", "error", err)
		}
	}()

	cfg.Log.Info("Operator console initialized",
		"topic", cfg.BookingEventsTopic,
		"group_id", cfg.OperatorGroupID,
		"feed_size", cfg.ActivityFeedSize,
	)

	cleanup := func() {
		cancel()
		if err := consumer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka consumer", "error", err)
		}
	}
	return activityFeed, cleanup
}
