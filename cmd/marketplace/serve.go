package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/DanielPopoola/devmarket-ledger/internal/api"
	"github.com/DanielPopoola/devmarket-ledger/internal/application"
	"github.com/DanielPopoola/devmarket-ledger/internal/application/services"
	"github.com/DanielPopoola/devmarket-ledger/internal/config"
	"github.com/DanielPopoola/devmarket-ledger/internal/infrastructure/gateway"
	"github.com/DanielPopoola/devmarket-ledger/internal/infrastructure/notify"
	"github.com/DanielPopoola/devmarket-ledger/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/devmarket-ledger/internal/infrastructure/queue"
	"github.com/DanielPopoola/devmarket-ledger/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/devmarket-ledger/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/devmarket-ledger/internal/worker"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 30 * time.Second
	limiterMaxIdle  = 10 * time.Minute
)

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and background workers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "apply pending migrations before serving")

	return cmd
}

func runServe(migrate bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting marketplace service",
		"env", cfg.Primary.Env,
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
	)

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if migrate {
		applied, err := db.Migrate(ctx)
		if err != nil {
			return err
		}
		logger.Info("migrations applied", "versions", applied)
	}

	purchaseRepo := postgres.NewPurchaseRepository(db)
	refundRepo := postgres.NewRefundRepository(db)
	reviewRepo := postgres.NewReviewRepository(db)
	listingRepo := postgres.NewListingRepository(db)
	eventRepo := postgres.NewWebhookEventRepository(db)

	gatewayClient := gateway.NewGatewayClient(cfg.Gateway)
	retryGatewayClient := gateway.NewRetryGatewayClient(gatewayClient, cfg.Retry)

	notificationQueue, closeQueue, err := newQueue(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeQueue()

	operator, mailer := newChannels(cfg.Notify, logger)

	captureService := services.NewCaptureService(purchaseRepo, listingRepo, cfg.Gateway, cfg.Capture, logger)
	webhookService := services.NewWebhookService(purchaseRepo, refundRepo, eventRepo, cfg.Gateway, logger)
	refundService := services.NewRefundService(refundRepo, retryGatewayClient, cfg.Gateway, logger)
	reviewService := services.NewReviewService(reviewRepo, purchaseRepo, notificationQueue, logger)
	notificationService := services.NewNotificationService(reviewRepo, operator, mailer, logger)
	queryService := services.NewQueryService(purchaseRepo, refundRepo, reviewRepo)

	h := handlers.NewHandlers(
		captureService,
		webhookService,
		refundService,
		reviewService,
		notificationService,
		queryService,
		db.Ping,
		logger,
	)

	doc, err := api.GetSwagger()
	if err != nil {
		return fmt.Errorf("load api document: %w", err)
	}

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst)

	router, err := handlers.NewRouter(h, handlers.RouterConfig{
		Doc:            doc,
		RequestTimeout: cfg.Server.RequestTimeout,
		RateLimiter:    limiter,
		TrustProxy:     cfg.Server.TrustProxy,
	}, logger)
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	var wg sync.WaitGroup
	startWorker := func(run func(context.Context)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run(workerCtx)
		}()
	}

	startWorker(func(ctx context.Context) {
		limiter.RunSweeper(ctx, time.Minute, limiterMaxIdle)
	})

	notificationWorker := worker.NewNotificationWorker(
		notificationQueue,
		notificationService,
		cfg.Notify.Workers,
		cfg.Notify.Timeout,
		logger,
	)
	startWorker(notificationWorker.Start)

	if cfg.Worker.Enabled {
		reconciler := worker.NewReconciler(
			refundRepo,
			purchaseRepo,
			retryGatewayClient,
			webhookService,
			cfg.Worker.Interval,
			cfg.Worker.BatchSize,
			cfg.Worker.StaleAfter,
			logger,
		)
		startWorker(reconciler.Start)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case <-quit:
	case runErr = <-serverErr:
		logger.Error("server error", "error", runErr)
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	// wakes blocked consumers before the context is cancelled
	if err := notificationQueue.Close(); err != nil {
		logger.Warn("closing notification queue", "error", err)
	}
	cancelWorkers()
	wg.Wait()

	logger.Info("server exited")
	return runErr
}

// newQueue prefers Redis when configured so replicas share one backlog.
func newQueue(ctx context.Context, cfg *config.Config, logger *slog.Logger) (application.NotificationQueue, func(), error) {
	if cfg.Redis.URL == "" {
		logger.Info("using in-memory notification queue", "size", cfg.Notify.QueueSize)
		return queue.NewMemoryQueue(cfg.Notify.QueueSize), func() {}, nil
	}

	client, err := queue.Connect(ctx, cfg.Redis.URL)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("using redis notification queue", "key", queue.DefaultRedisKey)

	closeClient := func() {
		if err := client.Close(); err != nil {
			logger.Warn("closing redis client", "error", err)
		}
	}
	return queue.NewRedisQueue(client, queue.DefaultRedisKey), closeClient, nil
}

func newChannels(cfg config.NotifyConfig, logger *slog.Logger) (application.OperatorChannel, application.DeveloperMailer) {
	var operator application.OperatorChannel
	var mailer application.DeveloperMailer

	if cfg.OperatorWebhookURL != "" {
		operator = notify.NewSlackChannel(cfg.OperatorWebhookURL, cfg.Timeout)
	} else {
		logger.Warn("operator webhook not configured, complaint alerts disabled")
	}
	if cfg.EmailEndpointURL != "" {
		mailer = notify.NewEmailMailer(cfg.EmailEndpointURL, cfg.EmailAuthToken, cfg.Timeout)
	} else {
		logger.Warn("email endpoint not configured, developer notices disabled")
	}
	return operator, mailer
}
