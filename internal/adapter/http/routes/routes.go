package routes

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "settlement_service/docs"
	"settlement_service/internal/adapter/http/handlers"
	"settlement_service/internal/adapter/persistence/repository"
	"settlement_service/internal/domain/entities"
	"settlement_service/internal/infrastructure/config"
	"settlement_service/internal/infrastructure/database"
	"settlement_service/internal/infrastructure/messaging"
	"settlement_service/internal/infrastructure/orders"
	"settlement_service/internal/infrastructure/payments"
	"settlement_service/internal/usecase"
	"settlement_service/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Run wires the service from cfg and serves until SIGINT/SIGTERM.
func Run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	router := gin.New()
	setMiddlewares(router, logger)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	closers, err := getRoutes(ctx, router, cfg, logger)
	defer func() {
		for _, c := range closers {
			if cerr := c.Close(); cerr != nil {
				logger.Warn("close failed", zap.Error(cerr))
			}
		}
	}()
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("failed to startup the application: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down http server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func getRoutes(ctx context.Context, router *gin.Engine, cfg config.Config, logger *zap.Logger) ([]io.Closer, error) {
	var closers []io.Closer

	paymentRepo, eventRepo, storeCloser, err := newStorage(ctx, cfg, logger)
	if storeCloser != nil {
		closers = append(closers, storeCloser)
	}
	if err != nil {
		return closers, err
	}

	orderClient := orders.NewHTTPOrderClient(cfg.OrderService, logger)
	var orderNotifier interfaces.IOrderNotifier = orderClient
	if cfg.OrderService.Notifier == config.NotifierKafka {
		kafkaNotifier := messaging.NewKafkaOrderNotifier(cfg.Kafka, logger)
		closers = append(closers, kafkaNotifier)
		orderNotifier = kafkaNotifier
	}

	records := usecase.NewPaymentRecordManager(paymentRepo, logger)
	events := usecase.NewWebhookEventStore(eventRepo, logger)
	notifier := usecase.NewOrderStateNotifier(orderNotifier, logger)
	adapters := newProviderAdapters(cfg, records, notifier, logger)

	reconciliation := usecase.NewReconciliationUseCase(orderClient, events, records, notifier, logger, adapters...)

	paymentHandler := handlers.NewPaymentHandler(reconciliation, logger)
	webhookHandler := handlers.NewWebhookHandler(reconciliation, logger)

	// Rotas publicas
	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addPaymentRoutes(v1, paymentHandler, webhookHandler)
	return closers, nil
}

func newStorage(ctx context.Context, cfg config.Config, logger *zap.Logger) (interfaces.IPaymentRepository, interfaces.IWebhookEventRepository, io.Closer, error) {
	switch cfg.StorageDriver {
	case config.StorageMemory:
		logger.Warn("using in-memory storage; state is lost on restart")
		return repository.NewPaymentMemoryRepository(), repository.NewWebhookEventMemoryRepository(), nil, nil
	case config.StoragePostgres:
		db, err := database.ConnectPostgres(ctx, cfg.Postgres.URL, logger)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.MigratePostgres(db, logger); err != nil {
			return nil, nil, db, err
		}
		return repository.NewPaymentPostgresRepository(db), repository.NewWebhookEventPostgresRepository(db), db, nil
	default:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return nil, nil, nil, err
		}
		logger.Info("dynamodb storage configured",
			zap.String("payments_table", cfg.DynamoDB.PaymentsTable),
			zap.String("webhook_events_table", cfg.DynamoDB.WebhookEventsTable),
		)
		return repository.NewPaymentDynamoRepository(ddb, cfg.DynamoDB.PaymentsTable),
			repository.NewWebhookEventDynamoRepository(ddb, cfg.DynamoDB.WebhookEventsTable), nil, nil
	}
}

// newProviderAdapters registers one adapter per provider whose gateway could be built.
// A provider without credentials is left out and answers as unsupported.
func newProviderAdapters(cfg config.Config, records usecase.IPaymentRecordManager, notifier usecase.IOrderStateNotifier, logger *zap.Logger) []usecase.IProviderAdapter {
	verifier := usecase.HMACSignatureVerifier{}
	var adapters []usecase.IProviderAdapter

	if gw, err := payments.NewStripeGateway(cfg.Stripe, cfg.GatewayMock, logger); err != nil {
		logger.Warn("payment provider not configured", zap.String("provider", string(entities.ProviderStripe)), zap.Error(err))
	} else {
		adapters = append(adapters, usecase.NewStripeAdapter(usecase.StripeAdapterConfig{
			PublishableKey: cfg.Stripe.PublishableKey,
			WebhookSecret:  cfg.Stripe.WebhookSecret,
		}, gw, records, notifier, logger))
	}

	if gw, err := payments.NewRazorpayGateway(cfg.Razorpay, cfg.GatewayMock, logger); err != nil {
		logger.Warn("payment provider not configured", zap.String("provider", string(entities.ProviderRazorpay)), zap.Error(err))
	} else {
		adapters = append(adapters, usecase.NewRazorpayAdapter(usecase.RazorpayAdapterConfig{
			KeyID:         cfg.Razorpay.KeyID,
			KeySecret:     cfg.Razorpay.KeySecret,
			WebhookSecret: cfg.Razorpay.WebhookSecret,
		}, gw, verifier, records, notifier, logger))
	}

	if gw, err := payments.NewMercadoPagoGateway(cfg.MercadoPago, cfg.GatewayMock, logger); err != nil {
		logger.Warn("payment provider not configured", zap.String("provider", string(entities.ProviderMercadoPago)), zap.Error(err))
	} else {
		adapters = append(adapters, usecase.NewMercadoPagoAdapter(usecase.MercadoPagoAdapterConfig{
			PublicKey:     cfg.MercadoPago.PublicKey,
			WebhookSecret: cfg.MercadoPago.WebhookSecret,
		}, gw, verifier, records, notifier, logger))
	}
	return adapters
}

func setMiddlewares(router *gin.Engine, logger *zap.Logger) {
	router.Use(gin.Logger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		logger.Error("recovered from panic", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
