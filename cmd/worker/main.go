package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gottomy2/departures/config"
	departureskafka "github.com/gottomy2/departures/internal/kafka"
	"github.com/gottomy2/departures/internal/notify"
	"github.com/gottomy2/departures/internal/observability"
	"github.com/gottomy2/departures/internal/repository"
	"github.com/gottomy2/departures/internal/service/flights"
	"github.com/gottomy2/departures/internal/service/gates"
	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
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

	flightRepo := repository.NewFlightRepository(pool)
	gateRepo := repository.NewGateRepository(pool)
	gateService := gates.NewGateService(gateRepo)

	producer := departureskafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	flightService := flights.NewFlightService(flightRepo, gateService, nil, logger,
		flights.WithProducer(producer, cfg.Kafka.FlightEventsTopic))

	consumer := departureskafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.FlightEventsTopic)
	defer consumer.Close()

	sender := notify.NewSender(logger)

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			var event departureskafka.FlightEvent
			if err := json.Unmarshal(msg.Value, &event); err != nil {
				logger.Warn("decode flight event", zap.Error(err))
				return nil
			}
			return sender.Send(ctx, event)
		}); err != nil {
			logger.Warn("consumer stopped", zap.Error(err))
		}
	}()

	sweepEvery := time.Duration(cfg.Worker.DepartedSweepMinutes) * time.Minute
	if sweepEvery == 0 {
		sweepEvery = time.Minute
	}
	sweepTicker := time.NewTicker(sweepEvery)
	defer sweepTicker.Stop()

	logger.Info("worker started", zap.Duration("sweep_interval", sweepEvery))

	for {
		select {
		case <-sweepTicker.C:
			departed, err := flightService.MarkDeparted(ctx, time.Now())
			if err != nil {
				logger.Error("departed sweep failed", zap.Error(err))
				continue
			}
			if len(departed) > 0 {
				logger.Info("marked flights departed", zap.Int("count", len(departed)))
			}
		case <-ctx.Done():
			logger.Info("shutting down")
			return
		}
	}
}
