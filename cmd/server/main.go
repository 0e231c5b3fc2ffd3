package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/application/usecase"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/port"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/domain/service"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/infrastructure/adapter"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/infrastructure/cache"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/infrastructure/config"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/infrastructure/messaging"
	pgRepo "github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/infrastructure/persistence/postgres"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/internal/presentation/rest"
	pkgkafka "github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/pkg/kafka"
	"github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/pkg/observability"
	pkgpostgres "github.com/DSOURADEEP/Credit-Risk-and-Loan-Approval-System/pkg/postgres"
)

func main() {
	cfg := config.Load()
	cfg.Validate()

	logger := observability.InitLogger(observability.LogConfig{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	logger.Info("starting loan decision service",
		"http_port", cfg.HTTPPort,
		"predictor_mode", cfg.Predictor.Mode,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- Observability -----------------------------------------------------
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to init metrics", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := meterProvider.Shutdown(context.Background()); err != nil {
			logger.Warn("meter provider shutdown error", "error", err)
		}
	}()

	// --- Database ----------------------------------------------------------
	dbCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		Port:     cfg.DB.Port,
		MaxConns: cfg.DB.MaxConns,
		MinConns: cfg.DB.MinConns,
	}
	pool, err := pkgpostgres.NewPool(ctx, dbCfg)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrations(dbCfg.DSN(), "file://"+cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// --- Infrastructure adapters -------------------------------------------
	customerRepo := pgRepo.NewCustomerRepo(pool)
	appRepo := pgRepo.NewLoanApplicationRepo(pool)
	termsRepo := pgRepo.NewLoanTermsRepo(pool)
	predictionRepo := pgRepo.NewPredictionRepo(pool)

	producer := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.DecisionTopic,
	})
	defer producer.Close()
	publisher := messaging.NewKafkaEventPublisher(producer, logger)

	predictor := buildPredictor(cfg.Predictor)

	var decisionCache port.DecisionCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisDecisionCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB, logger)
		if err != nil {
			logger.Error("failed to connect to redis", "error", err)
			os.Exit(1)
		}
		defer redisCache.Close()
		decisionCache = redisCache
		logger.Info("decision cache enabled", "addr", cfg.Redis.Addr)
	}

	// --- Decision engine ---------------------------------------------------
	ruleCfg := service.DefaultRuleConfig()
	ruleCfg.MinSalary = cfg.Engine.MinSalary
	ruleCfg.MinCreditScore = cfg.Engine.MinCreditScore
	ruleCfg.MaxDebtToIncomeRatio = cfg.Engine.MaxDebtToIncomeRatio

	engine := service.NewDecisionEngine(
		service.NewRuleEngine(ruleCfg),
		service.NewRiskScorer(service.ScorerConfig{
			LowRiskThreshold:  cfg.Engine.LowRiskThreshold,
			HighRiskThreshold: cfg.Engine.HighRiskThreshold,
		}),
		service.NewTermsCalculator(),
		predictor,
	)

	// --- Use cases ---------------------------------------------------------
	processUC := usecase.NewProcessLoanApplicationUseCase(
		customerRepo, appRepo, termsRepo, predictionRepo, publisher, engine, logger)
	getDecisionUC := usecase.NewGetDecisionUseCase(
		appRepo, termsRepo, predictionRepo, decisionCache, cfg.Redis.DecisionTTL, logger)
	historyUC := usecase.NewGetCustomerLoanHistoryUseCase(customerRepo, appRepo)

	// --- HTTP server -------------------------------------------------------
	mux := http.NewServeMux()
	rest.NewLoanHandler(processUC, getDecisionUC, logger).RegisterRoutes(mux)
	rest.NewCustomerHandler(historyUC, logger).RegisterRoutes(mux)
	rest.NewHealthHandler(cfg.ServiceName, map[string]rest.ReadinessChecker{
		"database": func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) },
	}, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "addr", cfg.HTTPAddr())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	// --- Graceful shutdown -------------------------------------------------
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigCh
	logger.Info("received shutdown signal", "signal", sig.String())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("loan decision service stopped")
}

// buildPredictor selects the predictor implementation for the configured mode.
func buildPredictor(cfg config.PredictorConfig) port.Predictor {
	adapterCfg := adapter.PredictorConfig{
		BaseURL:        cfg.BaseURL,
		APIKey:         cfg.APIKey,
		TimeoutSeconds: cfg.TimeoutSeconds,
		MaxRetries:     cfg.MaxRetries,
		RetryBackoffMs: cfg.RetryBackoffMs,
	}
	switch cfg.Mode {
	case "http":
		return adapter.NewPredictorAdapter(adapterCfg, adapter.NewHTTPInferenceClient(adapterCfg))
	case "disabled":
		return adapter.NewUnavailablePredictor()
	default:
		return adapter.NewPredictorAdapter(adapterCfg, nil)
	}
}
