package gates

import (
	"context"
	"errors"

	"github.com/gottomy2/departures/internal/domain"
	"github.com/gottomy2/departures/internal/repository"
)

type GateUseCase interface {
	List(ctx context.Context, page domain.PageRequest) ([]domain.Gate, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Gate, error)
	GetByNumber(ctx context.Context, gateNumber string) (*domain.Gate, error)
	Create(ctx context.Context, gateNumber string) (*domain.Gate, error)
	Update(ctx context.Context, id int64, gateNumber string) (*domain.Gate, error)
	Delete(ctx context.Context, id int64) error
	ResolveOrCreate(ctx context.Context, gateNumber string) (*domain.Gate, error)
}

type GateService struct {
	repo repository.GateRepository
}

func NewGateService(repo repository.GateRepository) *GateService {
	return &GateService{repo: repo}
}

func (s *GateService) List(ctx context.Context, page domain.PageRequest) ([]domain.Gate, int64, error) {
	return s.repo.List(ctx, page)
}

func (s *GateService) GetByID(ctx context.Context, id int64) (*domain.Gate, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *GateService) GetByNumber(ctx context.Context, gateNumber string) (*domain.Gate, error) {
	return s.repo.GetByNumber(ctx, gateNumber)
}

func (s *GateService) Create(ctx context.Context, gateNumber string) (*domain.Gate, error) {
	gate := &domain.Gate{GateNumber: gateNumber}
	if err := s.repo.Create(ctx, gate); err != nil {
		return nil, err
	}
	return gate, nil
}

func (s *GateService) Update(ctx context.Context, id int64, gateNumber string) (*domain.Gate, error) {
	gate, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	gate.GateNumber = gateNumber
	if err := s.repo.Update(ctx, gate); err != nil {
		return nil, err
	}
	return gate, nil
}

func (s *GateService) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// ResolveOrCreate returns the gate with the given number, inserting it if
// unseen. A concurrent writer may insert the same number first; the unique
// index rejects the duplicate and the loser re-reads the winner's row.
func (s *GateService) ResolveOrCreate(ctx context.Context, gateNumber string) (*domain.Gate, error) {
	gate, err := s.repo.GetByNumber(ctx, gateNumber)
	if err == nil {
		return gate, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	gate = &domain.Gate{GateNumber: gateNumber}
	createErr := s.repo.Create(ctx, gate)
	if createErr == nil {
		return gate, nil
	}
	if errors.Is(createErr, domain.ErrConflict) {
		return s.repo.GetByNumber(ctx, gateNumber)
	}
	return nil, createErr
}

var _ GateUseCase = (*GateService)(nil)
