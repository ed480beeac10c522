package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/inclusion/internal/api"
	"github.com/UnknownOlympus/inclusion/internal/auth"
	"github.com/UnknownOlympus/inclusion/internal/config"
	"github.com/UnknownOlympus/inclusion/internal/geocoding"
	"github.com/UnknownOlympus/inclusion/internal/metrics"
	"github.com/UnknownOlympus/inclusion/internal/realtime"
	"github.com/UnknownOlympus/inclusion/internal/repository"
	"github.com/UnknownOlympus/inclusion/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

const (
	limiterPrefix   = "inclusion:limiter"
	shutdownTimeout = 15 * time.Second
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	logger := setupLogger(cfg.Env, cfg.LogFile)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	dtb, err := repository.NewDatabase(
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer dtb.Close()

	repo := repository.NewRepository(dtb, logger)
	if err = repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("Failed to prepare DB schema: %v", err)
	}

	var rdb *redis.Client
	if cfg.Redis.Addr != "" {
		rdb, err = connectRedis(ctx, cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer rdb.Close()
	}

	sosLimiter, err := newSOSLimiter(rdb, cfg.SOSRate)
	if err != nil {
		log.Fatalf("Failed to create rate limiter: %v", err)
	}

	tokens := auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.TTL)

	hub := realtime.NewHub(logger, tokens, appMetrics)
	go hub.Run(ctx)

	var publisher service.Publisher = hub
	if rdb != nil {
		relay := realtime.NewRelay(logger, hub, rdb, cfg.Redis.Channel, appMetrics)
		go func() {
			if err := relay.Run(ctx); err != nil {
				logger.ErrorContext(ctx, "Event relay stopped", "error", err)
				stop()
			}
		}()
		publisher = relay
		logger.InfoContext(ctx, "Realtime events are relayed through Redis", "channel", cfg.Redis.Channel)
	}

	geoProvider, err := geocoding.NewProvider(geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Geocoder.Provider),
		APIKey:    cfg.Geocoder.APIKey,
		RateLimit: cfg.Geocoder.RateLimit,
		Region:    cfg.Geocoder.Region,
		Language:  cfg.Geocoder.Language,
		UserAgent: cfg.Geocoder.UserAgent,
		Logger:    logger,
	})
	switch {
	case errors.Is(err, geocoding.ErrDisabled):
		logger.InfoContext(ctx, "Geocoding of place addresses is disabled")
	case err != nil:
		log.Fatalf("Failed to create geocoding provider: %v", err)
	default:
		geocoder := service.NewPlaceGeocoder(
			logger,
			repo,
			geoProvider,
			cfg.Geocoder.Provider,
			appMetrics,
			cfg.Geocoder.Workers,
			cfg.Geocoder.Interval,
			cfg.Geocoder.AddressSuffix,
		)
		go geocoder.Run(ctx)
	}

	services := api.Services{
		SOS:        service.NewSOSService(logger, repo, repo, publisher, appMetrics),
		Volunteers: service.NewVolunteerService(logger, repo),
		Places:     service.NewPlaceService(logger, repo, geoProvider != nil),
		Schemes:    service.NewSchemeService(logger, repo),
		Admins:     service.NewAdminService(logger, repo, tokens),
	}

	if cfg.Admin.Email != "" {
		created, err := services.Admins.EnsureAdmin(ctx, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			log.Fatalf("Failed to seed admin account: %v", err)
		}
		logger.InfoContext(ctx, "Admin account checked", "email", cfg.Admin.Email, "created", created)
	}

	router := api.NewRouter(logger, services, tokens, hub, appMetrics, api.Options{
		CORSOrigins: cfg.CORSOrigins,
		SOSLimiter:  sosLimiter,
	})

	go startMonitoringServer(ctx, logger, reg, dtb, rdb, cfg.MonitorPort)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	go func() {
		logger.InfoContext(ctx, "Starting API server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.ErrorContext(ctx, "API server failed", "error", err)
			stop()
		}
	}()

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")
	<-ctx.Done()
	logger.InfoContext(ctx, "Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		logger.ErrorContext(shutdownCtx, "API server shutdown failed", "error", err)
	}

	logger.InfoContext(shutdownCtx, "Application stopped gracefully.")
}

func connectRedis(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

// newSOSLimiter shares counters through Redis when it is configured so every replica
// enforces the same per-IP budget.
func newSOSLimiter(rdb *redis.Client, rate limiter.Rate) (*limiter.Limiter, error) {
	opts := limiter.StoreOptions{Prefix: limiterPrefix, CleanUpInterval: limiter.DefaultCleanUpInterval}

	var store limiter.Store
	if rdb != nil {
		var err error
		store, err = sredis.NewStoreWithOptions(rdb, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
		}
	} else {
		store = memory.NewStoreWithOptions(opts)
	}

	return limiter.New(store, rate), nil
}

// startMonitoringServer serves /healthz and /metrics on a separate port.
// Health fails when the database or the configured Redis stops answering.
func startMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	dtb *pgxpool.Pool,
	rdb *redis.Client,
	port int,
) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, req *http.Request) {
		status, body := http.StatusOK, "OK"
		if err := dtb.Ping(req.Context()); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		} else if rdb != nil {
			if err = rdb.Ping(req.Context()).Err(); err != nil {
				status, body = http.StatusServiceUnavailable, "Redis ping failed"
			}
		}
		writer.WriteHeader(status)
		if _, err := writer.Write([]byte(body)); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}

		log.DebugContext(ctx, "Health checks completed", "status", status)
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}

// setupLogger builds the application logger for env. When logFile is set the
// output is also written to a size-rotated file.
func setupLogger(env, logFile string) *slog.Logger {
	var out io.Writer = os.Stdout
	if logFile != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    50, // megabytes
			MaxBackups: 5,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	dropTime := func(_ []string, a slog.Attr) slog.Attr {
		if a.Key == slog.TimeKey {
			return slog.Attr{}
		}
		return a
	}

	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug, AddSource: true}))
	case envDev:
		log = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo}))
	case envProd:
		log = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelWarn, ReplaceAttr: dropTime}))
	default:
		log = slog.New(slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelError, ReplaceAttr: dropTime}))

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
