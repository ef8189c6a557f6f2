package main

import (
	"lacque/internal/availability/handler"
	"lacque/internal/availability/service"
	"lacque/pkg/app"
	"lacque/pkg/config"
)

const ServiceName = "availability"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetBackend()

	cfg.Log.Info("Starting Availability service")
	availabilityService := initServices(cfg)
	serverApp := app.NewApplication(cfg)
	serverApp.SetApp(handler.NewAvailabilityHandler(availabilityService, cfg.Log))
	serverApp.Run()
}

func initServices(cfg *config.Config) service.AvailabilityService {
	availabilityService := service.NewAvailabilityService(
		cfg.Client.Merchant,
		cfg.Client.Exclusions,
		cfg.Client.Ledger,
		cfg,
	)

	cfg.Log.Info("Availability service initialized", "backend", cfg.BackendBaseURL)
	return availabilityService
}
