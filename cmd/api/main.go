package main

import (
	"log"

	_ "settlement_service/docs"
	"settlement_service/internal/adapter/http/routes"
	"settlement_service/internal/infrastructure/config"

	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// @title           Payment Settlement Service API
// @version         1.0
// @description     Opens provider payments for orders and settles them from client confirmations and provider webhooks.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("starting settlement service",
		zap.String("storage_driver", cfg.StorageDriver),
		zap.String("order_notifier", cfg.OrderService.Notifier),
		zap.Bool("gateway_mock", cfg.GatewayMock),
	)

	if err := routes.Run(cfg, logger); err != nil {
		logger.Fatal("Failed to startup the application", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	zapCfg.Level = zap.NewAtomicLevelAt(lvl)
	return zapCfg.Build()
}
