package notify

import (
	"context"

	"github.com/gottomy2/departures/internal/kafka"
	"go.uber.org/zap"
)

// Sender pushes departure-board notifications for flight events. The
// delivery channel is a log line for now; the worker owns the wiring so a
// real channel can be swapped in behind the same method.
type Sender struct {
	logger *zap.Logger
}

func NewSender(logger *zap.Logger) *Sender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sender{logger: logger}
}

func (s *Sender) Send(ctx context.Context, event kafka.FlightEvent) error {
	s.logger.Info("flight notification",
		zap.String("type", event.Type),
		zap.String("flight_number", event.FlightNumber),
		zap.String("destination", event.Destination),
		zap.String("status", event.Status),
		zap.Time("departure_time", event.DepartureTime),
	)
	return nil
}
