package main

import (
	"invoice-dashboard-backend/internal/cache"
	"invoice-dashboard-backend/internal/config"
	handler "invoice-dashboard-backend/internal/handlers"
	"invoice-dashboard-backend/internal/logger"
	"invoice-dashboard-backend/internal/metrics"
	"invoice-dashboard-backend/internal/migration"
	"invoice-dashboard-backend/internal/routes"
	"invoice-dashboard-backend/internal/services/invoices"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

func modules() fx.Option {
	return fx.Options(
		logger.Module,
		config.Module,
		migration.Module,
		metrics.Module,
		cache.Module,
		invoices.Module,
		handler.Module,
		routes.Module,
	)
}

func main() {
	fx.New(
		modules(),
		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
	).Run()
}
