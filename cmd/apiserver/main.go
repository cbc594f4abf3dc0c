// API server entry point for ShipCert-Intelligence.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/turtacn/ShipCert-Intelligence/internal/application/survey"
	"github.com/turtacn/ShipCert-Intelligence/internal/config"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/database/postgres"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/database/postgres/repositories"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/database/redis"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/messaging/kafka"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/ShipCert-Intelligence/internal/infrastructure/monitoring/prometheus"
	httpserver "github.com/turtacn/ShipCert-Intelligence/internal/interfaces/http"
	"github.com/turtacn/ShipCert-Intelligence/internal/interfaces/http/handlers"
	"github.com/turtacn/ShipCert-Intelligence/internal/interfaces/http/middleware"
)

// Build-time variables injected via ldflags.
var version = "dev"

const poolStatsInterval = 15 * time.Second

func main() {
	configPath := flag.String("config", "", "path to configuration file (environment only when empty)")
	port := flag.Int("port", 0, "HTTP port (overrides config)")
	flag.Parse()

	if err := run(*configPath, *port); err != nil {
		fmt.Fprintf(os.Stderr, "apiserver: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, port int) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	if port > 0 {
		cfg.Server.Port = port
	}

	logCfg := logging.LogConfig{Level: cfg.Log.Level, Format: cfg.Log.Format}
	if cfg.Log.Output != "" {
		logCfg.OutputPaths = []string{cfg.Log.Output}
	}
	logger, err := logging.NewLogger(logCfg)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	logging.SetDefault(logger)
	logger.Info("starting ShipCert survey API server",
		logging.String("version", version),
		logging.Int("port", cfg.Server.Port),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage.
	conn, err := postgres.NewConnection(cfg.Database, logger.Named("postgres"))
	if err != nil {
		return err
	}
	defer conn.Close()
	repo := repositories.NewSurveyRepository(conn, logger)

	var cache survey.CachePort
	rdb, err := redis.NewClient(cfg.Redis, logger.Named("redis"))
	if err != nil {
		logger.Warn("redis unavailable, scan results will not be cached", logging.Err(err))
	} else {
		defer rdb.Close()
		cache = redis.NewCache(rdb, logger,
			redis.WithPrefix(cfg.Redis.KeyPrefix),
			redis.WithDefaultTTL(cfg.Survey.CacheTTL))
	}

	// Metrics.
	collector, err := prometheus.NewMetricsCollector(prometheus.CollectorConfig{
		Namespace:            cfg.Metrics.Namespace,
		EnableProcessMetrics: true,
		EnableGoMetrics:      true,
	}, logger)
	if err != nil {
		return err
	}
	metrics := prometheus.NewSurveyMetrics(collector)

	// Event bus.
	var publisher survey.EventPublisher
	if cfg.Kafka.Enabled {
		producer, err := kafka.NewProducer(kafka.ProducerConfigFrom(cfg.Kafka), logger.Named("kafka"))
		if err != nil {
			return err
		}
		defer producer.Close()
		publisher = &kafkaPublisher{producer: producer, metrics: metrics}
	}

	svc, err := survey.NewService(survey.Dependencies{
		Repository: repo,
		Writer:     repo,
		Cache:      cache,
		Publisher:  publisher,
		Metrics:    metrics,
		Logger:     logger,
	}, surveyConfig(cfg.Survey))
	if err != nil {
		return err
	}

	if cfg.Kafka.Enabled && cfg.Kafka.ChangeTopic != "" {
		consumerCfg := kafka.ConsumerConfigFrom(cfg.Kafka)
		consumer, err := kafka.NewConsumer(consumerCfg, logger.Named("kafka"))
		if err != nil {
			return err
		}
		handle := changeHandler(svc, metrics, logger.Named("changes"))
		for _, topic := range consumerCfg.Topics {
			consumer.Subscribe(topic, handle)
		}
		if err := consumer.Start(ctx); err != nil {
			return err
		}
		defer consumer.Close()
	}

	if configPath != "" {
		config.Watch(configPath, func(next *config.Config) {
			svc.UpdateConfig(surveyConfig(next.Survey))
			logger.Info("survey configuration reloaded",
				logging.Int("due_soon_days", next.Survey.DueSoonDays),
				logging.Int("equipment_intervals", len(next.Survey.EquipmentIntervals)))
		})
	}

	// HTTP.
	health := handlers.NewHealthHandler(version, healthCheckers(conn, rdb)...)
	health.OnReadiness(metrics.RecordHealth)

	routerCfg := httpserver.RouterConfig{
		Mode:           cfg.Server.Mode,
		SurveyHandler:  handlers.NewSurveyHandler(svc, logger),
		HealthHandler:  health,
		RequestTimeout: cfg.Server.RequestTimeout,
		Logging:        middleware.DefaultLoggingConfig(),
		Recorder:       metrics,
		Logger:         logger,
	}
	if cfg.Metrics.Enabled {
		routerCfg.MetricsHandler = collector.Handler()
		routerCfg.MetricsPath = cfg.Metrics.Path
	}
	if len(cfg.Server.AllowedOrigins) > 0 {
		cors := middleware.DefaultCORSConfig()
		cors.AllowedOrigins = cfg.Server.AllowedOrigins
		routerCfg.CORS = &cors
	}
	srv := httpserver.NewServer(cfg.Server, httpserver.NewRouter(routerCfg), logger)

	go reportPoolStats(ctx, conn, metrics, poolStatsInterval)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", logging.Err(err))
		return err
	}
	logger.Info("server stopped")
	return nil
}

//Personal.AI order the ending
