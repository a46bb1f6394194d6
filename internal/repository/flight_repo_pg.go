package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gottomy2/departures/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// FlightFilter holds the optional listing predicates. All set fields are
// combined by AND; the zero value matches every flight.
type FlightFilter struct {
	FlightNumber string
	Status       *domain.FlightStatus
	Zone         *domain.FlightZone
}

type FlightRepository interface {
	List(ctx context.Context, filter FlightFilter, page domain.PageRequest) ([]domain.Flight, int64, error)
	GetByID(ctx context.Context, id int64) (*domain.Flight, error)
	Create(ctx context.Context, flight *domain.Flight) error
	Update(ctx context.Context, flight *domain.Flight) error
	Delete(ctx context.Context, id int64) error
	MarkDeparted(ctx context.Context, now time.Time) ([]domain.Flight, error)
}

type PGFlightRepository struct {
	db *pgxpool.Pool
}

func NewFlightRepository(db *pgxpool.Pool) FlightRepository {
	return &PGFlightRepository{db: db}
}

const flightColumns = `f.id, f.flight_number, f.destination, f.status, f.departure_time, f.zone, f.temperature, f.created_at, f.updated_at, g.id, g.gate_number`

// where renders the filter as a list of AND-ed clauses with positional args.
func (f FlightFilter) where() (string, []any) {
	clauses := make([]string, 0, 3)
	args := make([]any, 0, 3)

	if f.FlightNumber != "" {
		args = append(args, "%"+strings.ToLower(f.FlightNumber)+"%")
		clauses = append(clauses, fmt.Sprintf("LOWER(f.flight_number) LIKE $%d", len(args)))
	}
	if f.Status != nil {
		args = append(args, string(*f.Status))
		clauses = append(clauses, fmt.Sprintf("f.status = $%d", len(args)))
	}
	if f.Zone != nil {
		args = append(args, string(*f.Zone))
		clauses = append(clauses, fmt.Sprintf("f.zone = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (r *PGFlightRepository) List(ctx context.Context, filter FlightFilter, page domain.PageRequest) ([]domain.Flight, int64, error) {
	where, args := filter.where()

	var total int64
	countQuery := `SELECT count(*) FROM flights f` + where
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `SELECT ` + flightColumns + ` FROM flights f LEFT JOIN gates g ON g.id = f.gate_id` + where +
		fmt.Sprintf(` ORDER BY f.departure_time LIMIT $%d OFFSET $%d`, len(args)+1, len(args)+2)
	args = append(args, page.Limit(), page.Offset())

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		f, err := scanFlight(rows)
		if err != nil {
			return nil, 0, err
		}
		flights = append(flights, *f)
	}
	return flights, total, rows.Err()
}

func (r *PGFlightRepository) GetByID(ctx context.Context, id int64) (*domain.Flight, error) {
	row := r.db.QueryRow(ctx, `SELECT `+flightColumns+` FROM flights f LEFT JOIN gates g ON g.id = f.gate_id WHERE f.id=$1`, id)
	f, err := scanFlight(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

func (r *PGFlightRepository) Create(ctx context.Context, flight *domain.Flight) error {
	row := r.db.QueryRow(ctx,
		`INSERT INTO flights (flight_number, destination, status, departure_time, zone, gate_id, temperature, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, now(), now())
		 RETURNING id, created_at, updated_at`,
		flight.FlightNumber, flight.Destination, string(flight.Status), flight.DepartureTime, string(flight.Zone), gateID(flight.Gate), flight.Temperature)
	if err := row.Scan(&flight.ID, &flight.CreatedAt, &flight.UpdatedAt); err != nil {
		return translateConflict(err)
	}
	return nil
}

func (r *PGFlightRepository) Update(ctx context.Context, flight *domain.Flight) error {
	res, err := r.db.Exec(ctx,
		`UPDATE flights SET flight_number=$1, destination=$2, status=$3, departure_time=$4, zone=$5, gate_id=$6, temperature=$7, updated_at=now() WHERE id=$8`,
		flight.FlightNumber, flight.Destination, string(flight.Status), flight.DepartureTime, string(flight.Zone), gateID(flight.Gate), flight.Temperature, flight.ID)
	if err != nil {
		return translateConflict(err)
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PGFlightRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.Exec(ctx, `DELETE FROM flights WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkDeparted flips overdue PLANNED and DELAYED flights to DEPARTED and
// returns the transitioned rows.
func (r *PGFlightRepository) MarkDeparted(ctx context.Context, now time.Time) ([]domain.Flight, error) {
	rows, err := r.db.Query(ctx,
		`UPDATE flights SET status=$1, updated_at=now()
		 WHERE departure_time <= $2 AND status IN ($3, $4)
		 RETURNING id, flight_number, destination, status, departure_time, zone, temperature, created_at, updated_at`,
		string(domain.FlightStatusDeparted), now, string(domain.FlightStatusPlanned), string(domain.FlightStatusDelayed))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	flights := make([]domain.Flight, 0)
	for rows.Next() {
		var f domain.Flight
		if err := rows.Scan(&f.ID, &f.FlightNumber, &f.Destination, &f.Status, &f.DepartureTime, &f.Zone, &f.Temperature, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		flights = append(flights, f)
	}
	return flights, rows.Err()
}

func scanFlight(row pgx.Row) (*domain.Flight, error) {
	var f domain.Flight
	var gid *int64
	var gnum *string
	if err := row.Scan(&f.ID, &f.FlightNumber, &f.Destination, &f.Status, &f.DepartureTime, &f.Zone, &f.Temperature, &f.CreatedAt, &f.UpdatedAt, &gid, &gnum); err != nil {
		return nil, err
	}
	if gid != nil && gnum != nil {
		f.Gate = &domain.Gate{ID: *gid, GateNumber: *gnum}
	}
	return &f, nil
}

func gateID(g *domain.Gate) *int64 {
	if g == nil {
		return nil
	}
	return &g.ID
}

// translateConflict maps a postgres unique violation to domain.ErrConflict.
func translateConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrConflict
	}
	return err
}

var _ FlightRepository = (*PGFlightRepository)(nil)
