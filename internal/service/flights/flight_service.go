package flights

import (
	"context"
	"time"

	"github.com/gottomy2/departures/internal/domain"
	"github.com/gottomy2/departures/internal/kafka"
	"github.com/gottomy2/departures/internal/observability"
	"github.com/gottomy2/departures/internal/repository"
	"go.uber.org/zap"
)

type FlightUseCase interface {
	List(ctx context.Context, filter repository.FlightFilter, page domain.PageRequest) ([]domain.Flight, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, input FlightInput) (*domain.Flight, error)
	Update(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error)
	Delete(ctx context.Context, id int64) error
	MarkDeparted(ctx context.Context, now time.Time) ([]domain.Flight, error)
}

// GateResolver finds or creates the gate referenced by a flight write.
type GateResolver interface {
	ResolveOrCreate(ctx context.Context, gateNumber string) (*domain.Gate, error)
}

// WeatherLookup resolves a temperature for a destination and calendar date.
// The second return reports whether a value is available.
type WeatherLookup interface {
	GetTemperature(ctx context.Context, city, date string) (float64, bool)
}

type Producer interface {
	Publish(ctx context.Context, topic, key string, value interface{}) error
}

type FlightInput struct {
	FlightNumber  string
	Destination   string
	Status        domain.FlightStatus
	DepartureTime time.Time
	Zone          domain.FlightZone
	GateNumber    string
	Temperature   *float64
}

type FlightService struct {
	repo     repository.FlightRepository
	gates    GateResolver
	weather  WeatherLookup
	producer Producer
	topic    string
	logger   *zap.Logger
}

type FlightServiceOption func(*FlightService)

func WithProducer(producer Producer, topic string) FlightServiceOption {
	return func(s *FlightService) {
		s.producer = producer
		s.topic = topic
	}
}

func NewFlightService(repo repository.FlightRepository, gates GateResolver, weather WeatherLookup, logger *zap.Logger, opts ...FlightServiceOption) *FlightService {
	if logger == nil {
		logger = zap.NewNop()
	}
	service := &FlightService{
		repo:    repo,
		gates:   gates,
		weather: weather,
		logger:  logger,
	}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

// List returns a page of flights matching the filter, each enriched with a
// cached or freshly fetched temperature for its destination on the
// departure day. A failed lookup leaves the temperature unset and never
// fails the listing.
func (s *FlightService) List(ctx context.Context, filter repository.FlightFilter, page domain.PageRequest) ([]domain.Flight, int64, error) {
	flights, total, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, 0, err
	}

	if s.weather != nil {
		for i := range flights {
			f := &flights[i]
			if f.Destination == "" {
				continue
			}
			if temp, ok := s.weather.GetTemperature(ctx, f.Destination, f.DepartureDate()); ok {
				f.Temperature = &temp
			}
		}
	}
	return flights, total, nil
}

func (s *FlightService) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *FlightService) Create(ctx context.Context, input FlightInput) (*domain.Flight, error) {
	gate, err := s.resolveGate(ctx, input.GateNumber)
	if err != nil {
		return nil, err
	}

	flight := &domain.Flight{
		FlightNumber:  input.FlightNumber,
		Destination:   input.Destination,
		Status:        input.Status,
		DepartureTime: input.DepartureTime,
		Zone:          input.Zone,
		Gate:          gate,
		Temperature:   input.Temperature,
	}

	if err := s.repo.Create(ctx, flight); err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventFlightCreated, flight)
	return flight, nil
}

func (s *FlightService) Update(ctx context.Context, id int64, input FlightInput) (*domain.Flight, error) {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	gate, err := s.resolveGate(ctx, input.GateNumber)
	if err != nil {
		return nil, err
	}

	flight.FlightNumber = input.FlightNumber
	flight.Destination = input.Destination
	flight.Status = input.Status
	flight.DepartureTime = input.DepartureTime
	flight.Zone = input.Zone
	flight.Temperature = input.Temperature
	flight.Gate = gate

	if err := s.repo.Update(ctx, flight); err != nil {
		return nil, err
	}

	s.publish(ctx, kafka.EventFlightUpdated, flight)
	return flight, nil
}

func (s *FlightService) Delete(ctx context.Context, id int64) error {
	flight, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.publish(ctx, kafka.EventFlightDeleted, flight)
	return nil
}

// MarkDeparted transitions overdue PLANNED and DELAYED flights to DEPARTED.
// Called by the worker on a ticker.
func (s *FlightService) MarkDeparted(ctx context.Context, now time.Time) ([]domain.Flight, error) {
	departed, err := s.repo.MarkDeparted(ctx, now)
	if err != nil {
		return nil, err
	}
	for i := range departed {
		s.publish(ctx, kafka.EventFlightDeparted, &departed[i])
	}
	return departed, nil
}

func (s *FlightService) resolveGate(ctx context.Context, gateNumber string) (*domain.Gate, error) {
	if gateNumber == "" {
		return nil, nil
	}
	return s.gates.ResolveOrCreate(ctx, gateNumber)
}

func (s *FlightService) publish(ctx context.Context, eventType string, flight *domain.Flight) {
	if s.producer == nil {
		return
	}

	event := kafka.FlightEvent{
		Type:          eventType,
		FlightID:      flight.ID,
		FlightNumber:  flight.FlightNumber,
		Destination:   flight.Destination,
		Status:        string(flight.Status),
		DepartureTime: flight.DepartureTime,
	}
	if err := s.producer.Publish(ctx, s.topic, flight.FlightNumber, event); err != nil {
		s.logger.Warn("failed to publish flight event",
			zap.String("type", eventType),
			zap.String("flight_number", flight.FlightNumber),
			zap.Error(err))
		return
	}
	observability.FlightEventsPublishedTotal.WithLabelValues(eventType).Inc()
}

var _ FlightUseCase = (*FlightService)(nil)
