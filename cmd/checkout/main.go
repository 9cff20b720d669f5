package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DanielPopoola/checkout-tokenization/internal/analytics"
	"github.com/DanielPopoola/checkout-tokenization/internal/application"
	"github.com/DanielPopoola/checkout-tokenization/internal/application/services"
	"github.com/DanielPopoola/checkout-tokenization/internal/checkout"
	"github.com/DanielPopoola/checkout-tokenization/internal/config"
	"github.com/DanielPopoola/checkout-tokenization/internal/domain"
	"github.com/DanielPopoola/checkout-tokenization/internal/fingerprint"
	"github.com/DanielPopoola/checkout-tokenization/internal/infrastructure/backend"
	"github.com/DanielPopoola/checkout-tokenization/internal/infrastructure/persistence/memory"
	"github.com/DanielPopoola/checkout-tokenization/internal/infrastructure/persistence/postgres"
	kvredis "github.com/DanielPopoola/checkout-tokenization/internal/infrastructure/persistence/redis"
	"github.com/DanielPopoola/checkout-tokenization/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/checkout-tokenization/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/checkout-tokenization/internal/worker"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	logger.Info("starting checkout service",
		"port", cfg.Server.Port,
		"env", cfg.Primary.Env,
		"storage", cfg.Storage.Driver,
	)

	if err := run(cfg, logger); err != nil {
		logger.Error("checkout service failed", "error", err)
		os.Exit(1)
	}
	logger.Info("server exited")
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db *postgres.DB
	if cfg.Storage.Driver == "postgres" || cfg.Analytics.Persist {
		var err error
		db, err = postgres.Connect(ctx, &cfg.Database, logger)
		if err != nil {
			return fmt.Errorf("connect database: %w", err)
		}
		defer db.Close()
	}

	store, closeStore, err := openStore(ctx, cfg, db, logger)
	if err != nil {
		return err
	}
	defer closeStore()

	client := backend.NewClient(cfg.Backend)
	payments := services.NewPaymentService(client, services.PlatformCapabilities{
		ApplePayAvailable:  cfg.Merchant.ApplePayAvailable,
		ApplePayMerchantID: cfg.Merchant.ApplePayMerchantID,
	}, logger)
	wallet := services.NewAuthorizationService(store, client, logger)
	if cfg.Backend.PassportToken != "" {
		if err := wallet.SetMoneyCenterToken(ctx, cfg.Backend.PassportToken); err != nil {
			return fmt.Errorf("store passport token: %w", err)
		}
	}

	provider := newFingerprintProvider(cfg.Fingerprint, logger)
	if err := provider.Configure(ctx); err != nil {
		// Profile keeps failing with invalid_configuration; flows report it.
		logger.Error("fingerprint provider not configured", "error", err)
	}
	defer provider.Shutdown()

	recorder, err := newRecorder(cfg.Analytics, db, logger)
	if err != nil {
		return err
	}
	emitter := analytics.NewEmitter(recorder, cfg.Analytics.BufferSize, logger)

	input, err := moduleInput(cfg)
	if err != nil {
		return err
	}
	registry := checkout.NewRegistry()
	module, err := checkout.NewModule(input, checkout.Dependencies{
		Payments:    payments,
		Wallet:      wallet,
		Fingerprint: provider,
		Tracker:     emitter,
		Registry:    registry,
		Output:      logOutput{logger: logger},
		Logger:      logger,
	})
	if err != nil {
		return fmt.Errorf("create checkout module: %w", err)
	}

	mux := http.NewServeMux()
	handlers.NewHandlers(module, logger).Register(mux)
	mux.Handle("GET /metrics", promhttp.Handler())

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.RequestTimeout, "/metrics")(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	emitterDone := make(chan struct{})
	go func() {
		emitter.Run(workerCtx)
		close(emitterDone)
	}()
	reaper := worker.NewFlowReaper(registry, cfg.Sessions.TTL, cfg.Sessions.ReapInterval, logger)
	go reaper.Start(workerCtx)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	}

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	abandoned := registry.Reap(0)
	logger.Info("abandoned unfinished flows", "count", abandoned)

	cancelWorkers()
	<-emitterDone
	return nil
}

func openStore(ctx context.Context, cfg *config.Config, db *postgres.DB, logger *slog.Logger) (application.KeyValueStore, func(), error) {
	switch cfg.Storage.Driver {
	case "postgres":
		return postgres.NewKVStore(db), func() {}, nil
	case "redis":
		client := goredis.NewClient(cfg.Redis.Options())
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		logger.Info("connected to redis", "addr", cfg.Redis.Addr)
		return kvredis.NewKVStore(client, cfg.Redis.KeyPrefix), func() { client.Close() }, nil
	default:
		logger.Warn("using in-memory storage, wallet credentials are lost on restart")
		return memory.NewKVStore(), func() {}, nil
	}
}

func newFingerprintProvider(cfg config.FingerprintConfig, logger *slog.Logger) *fingerprint.Provider {
	if cfg.Enabled {
		return fingerprint.NewProvider(fingerprint.NewHTTPProfiler(cfg), cfg, logger)
	}
	if cfg.OrgID == "" {
		cfg.OrgID = "local"
	}
	logger.Warn("fingerprinting disabled, issuing local session ids")
	return fingerprint.NewProvider(fingerprint.LocalProfiler{}, cfg, logger)
}

func newRecorder(cfg config.AnalyticsConfig, db *postgres.DB, logger *slog.Logger) (analytics.Recorder, error) {
	recorders := analytics.MultiRecorder{analytics.NewLogRecorder(logger)}
	if cfg.Metrics {
		metrics, err := analytics.NewPrometheusRecorder(prometheus.DefaultRegisterer)
		if err != nil {
			return nil, fmt.Errorf("register analytics metrics: %w", err)
		}
		recorders = append(recorders, metrics)
	}
	if cfg.Persist && db != nil {
		recorders = append(recorders, postgres.NewAnalyticsRepository(db))
	}
	return recorders, nil
}

func moduleInput(cfg *config.Config) (checkout.ModuleInput, error) {
	value, err := decimal.NewFromString(cfg.Merchant.Amount)
	if err != nil {
		return checkout.ModuleInput{}, fmt.Errorf("merchant.amount: %w", err)
	}
	amount, err := domain.NewAmount(value, domain.Currency(cfg.Merchant.Currency))
	if err != nil {
		return checkout.ModuleInput{}, fmt.Errorf("merchant amount: %w", err)
	}
	allowed, err := domain.ParsePaymentMethodTypes(cfg.Merchant.AllowedTypes)
	if err != nil {
		return checkout.ModuleInput{}, fmt.Errorf("merchant.allowed_types: %w", err)
	}

	return checkout.ModuleInput{
		ClientApplicationKey: cfg.Backend.ClientAppKey,
		Amount:               amount,
		AllowedTypes:         allowed,
		SavePaymentMethod:    domain.SavePaymentMethod(cfg.Merchant.SavePaymentMethod),
		GatewayID:            cfg.Backend.GatewayID,
		CustomerID:           cfg.Merchant.CustomerID,
		ReturnURL:            cfg.Backend.ReturnURL,
	}, nil
}

// logOutput reports module results to the log; HTTP clients poll flows.
type logOutput struct {
	logger *slog.Logger
}

func (o logOutput) DidTokenize(_ domain.Tokens, method domain.PaymentMethodType) {
	o.logger.Info("tokenization succeeded", "method", method)
}

func (o logOutput) DidFinish(err error) {
	o.logger.Warn("tokenization failed", "error_kind", application.KindOf(err), "error", err)
}

func (o logOutput) StartConfirmationProcess(_ string, method domain.PaymentMethodType) {
	o.logger.Info("confirmation started", "method", method)
}

func (o logOutput) DidSuccessfullyConfirm(method domain.PaymentMethodType) {
	o.logger.Info("confirmation finished", "method", method)
}
