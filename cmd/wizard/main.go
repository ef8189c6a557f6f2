package main

import (
	availservice "lacque/internal/availability/service"
	"lacque/internal/wizard/handler"
	"lacque/internal/wizard/service"
	"lacque/internal/wizard/validator"
	"lacque/pkg/app"
	"lacque/pkg/config"
	"lacque/pkg/kafka"
	kafka_config "lacque/pkg/kafka/config"
	kafka_middleware "lacque/pkg/kafka/middleware"
)

const ServiceName = "wizard"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetBackend()

	cfg.Log.Info("Starting Wizard service")
	wizardService, cleanup := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.OnShutdown(cleanup)
	serverApp.SetApp(handler.NewWizardHandler(wizardService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) (service.WizardService, func()) {
	kafkaCfg := kafka_config.Load()
	kafkaCfg.LogConfiguration(cfg.Log.Info)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.BookingEventsTopic, cfg.BookingEventsDLQ)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka producer", "error", err)
	}
	producer.Use(kafka_middleware.LoggingProducerMiddleware(cfg.Log))

	// The wizard embeds slot resolution in-process; both surfaces share
	// one engine instead of drifting copies.
	availabilityService := availservice.NewAvailabilityService(
		cfg.Client.Merchant,
		cfg.Client.Exclusions,
		cfg.Client.Ledger,
		cfg,
	)

	store := service.NewSessionStore(cfg.WizardSessionTTL)
	contactValidator := validator.NewContactValidator(cfg.Log)
	events := service.NewKafkaEventPublisher(producer, cfg.Log)

	wizardService := service.NewWizardService(
		store,
		availabilityService,
		cfg.Client.Merchant,
		cfg.Client.Submission,
		events,
		contactValidator,
		cfg,
	)

	cfg.Log.Info("Wizard service initialized",
		"backend", cfg.BackendBaseURL,
		"session_ttl", cfg.WizardSessionTTL,
	)

	cleanup := func() {
		store.Stop()
		if err := producer.Close(); err != nil {
			cfg.Log.Error("Failed to close Kafka producer", "error", err)
		}
	}
	return wizardService, cleanup
}
