package repository

import (
	"context"
	"errors"

	"github.com/gottomy2/departures/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type GateRepository interface {
	List(ctx context.Context, page domain.PageRequest) ([]domain.Gate, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Gate, error)
	GetByNumber(ctx context.Context, gateNumber string) (*domain.Gate, error)
	Create(ctx context.Context, gate *domain.Gate) error
	Update(ctx context.Context, gate *domain.Gate) error
	Delete(ctx context.Context, id int64) error
}

type PGGateRepository struct {
	db *pgxpool.Pool
}

func NewGateRepository(db *pgxpool.Pool) GateRepository {
	return &PGGateRepository{db: db}
}

func (r *PGGateRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Gate, int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM gates`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(ctx, `SELECT id, gate_number, created_at, updated_at FROM gates ORDER BY gate_number LIMIT $1 OFFSET $2`, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	gates := make([]domain.Gate, 0)
	for rows.Next() {
		var g domain.Gate
		if err := rows.Scan(&g.ID, &g.GateNumber, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, 0, err
		}
		gates = append(gates, g)
	}
	return gates, total, rows.Err()
}

func (r *PGGateRepository) GetByID(ctx context.Context, id int64) (*domain.Gate, error) {
	row := r.db.QueryRow(ctx, `SELECT id, gate_number, created_at, updated_at FROM gates WHERE id=$1`, id)
	return scanGate(row)
}

func (r *PGGateRepository) GetByNumber(ctx context.Context, gateNumber string) (*domain.Gate, error) {
	row := r.db.QueryRow(ctx, `SELECT id, gate_number, created_at, updated_at FROM gates WHERE gate_number=$1`, gateNumber)
	return scanGate(row)
}

func (r *PGGateRepository) Create(ctx context.Context, gate *domain.Gate) error {
	row := r.db.QueryRow(ctx,
		`INSERT INTO gates (gate_number, created_at, updated_at) VALUES ($1, now(), now()) RETURNING id, created_at, updated_at`,
		gate.GateNumber)
	if err := row.Scan(&gate.ID, &gate.CreatedAt, &gate.UpdatedAt); err != nil {
		return translateConflict(err)
	}
	return nil
}

func (r *PGGateRepository) Update(ctx context.Context, gate *domain.Gate) error {
	res, err := r.db.Exec(ctx, `UPDATE gates SET gate_number=$1, updated_at=now() WHERE id=$2`, gate.GateNumber, gate.ID)
	if err != nil {
		return translateConflict(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGGateRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM gates WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanGate(row pgx.Row) (*domain.Gate, error) {
	var g domain.Gate
	if err := row.Scan(&g.ID, &g.GateNumber, &g.CreatedAt, &g.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

var _ GateRepository = (*PGGateRepository)(nil)
