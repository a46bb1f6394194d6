package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gottomy2/departures/config"
	"github.com/gottomy2/departures/internal/bootstrap"
	"github.com/gottomy2/departures/internal/cache"
	"github.com/gottomy2/departures/internal/kafka"
	"github.com/gottomy2/departures/internal/observability"
	"github.com/gottomy2/departures/internal/repository"
	"github.com/gottomy2/departures/internal/service/auth"
	"github.com/gottomy2/departures/internal/service/flights"
	"github.com/gottomy2/departures/internal/service/gates"
	"github.com/gottomy2/departures/internal/weather"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := observability.NewLogger()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		logger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	cacheTTL := time.Duration(cfg.Weather.CacheTTLMinutes) * time.Minute
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}

	var weatherCache weather.Cache
	if cfg.Redis.Addr != "" {
		weatherCache = cache.NewRedisCache(cfg.Redis, cacheTTL)
	} else {
		logger.Warn("redis not configured, using in-memory weather cache")
		weatherCache = cache.NewMemoryCache(cacheTTL)
	}

	weatherSvc := weather.NewService(weather.NewClient(cfg.Weather), weatherCache, logger)

	flightRepo := repository.NewFlightRepository(pool)
	gateRepo := repository.NewGateRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	gateService := gates.NewGateService(gateRepo)
	authService := auth.NewAuthService(userRepo, cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLMinutes)*time.Minute)

	var opts []flights.FlightServiceOption
	if len(cfg.Kafka.Brokers) > 0 {
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		opts = append(opts, flights.WithProducer(producer, cfg.Kafka.FlightEventsTopic))
	}
	flightService := flights.NewFlightService(flightRepo, gateService, weatherSvc, logger, opts...)

	if err := bootstrap.Run(ctx, cfg, logger, flightService, gateService, authService); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}
