package main

import (
	"go.uber.org/fx"

	"signpubliq/internal/config"
	deliveryhttp "signpubliq/internal/delivery/http"
	"signpubliq/internal/infrastructure/database"
	"signpubliq/internal/infrastructure/httpclient"
	"signpubliq/internal/infrastructure/logger"
	"signpubliq/internal/infrastructure/redis"
	"signpubliq/internal/infrastructure/repository"
	"signpubliq/internal/infrastructure/secure"
	"signpubliq/internal/infrastructure/staging"
	"signpubliq/internal/server"
	"signpubliq/internal/usecase"
)

func main() {
	fx.New(
		// Configuration
		config.Module,

		// Infrastructure
		logger.Module,
		database.Module,
		redis.Module,
		secure.Module,
		httpclient.Module,
		staging.Module,
		repository.Module,

		// Business Logic
		usecase.Module,

		// Delivery
		deliveryhttp.Module,

		// Server
		server.Module,
	).Run()
}
