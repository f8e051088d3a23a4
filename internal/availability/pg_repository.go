package availability

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bookwell/appointment-backend/internal/timerange"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanAvailability(row pgx.Row) (*Availability, error) {
	var a Availability

	err := row.Scan(
		&a.ID,
		&a.ProviderID,
		&a.Window.Start,
		&a.Window.End,
		&a.IsAvailable,
		&a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrAvailabilityNotFound
		}
		return nil, err
	}

	return &a, nil
}

func (r *PgRepository) GetByID(ctx context.Context, id uuid.UUID) (*Availability, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, provider_id, start_time, end_time, is_available, created_at
		FROM availabilities
		WHERE id = $1
	`, id)
	return scanAvailability(row)
}

func (r *PgRepository) Insert(ctx context.Context, a *Availability) (*Availability, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO availabilities (id, provider_id, start_time, end_time, is_available, created_at)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING id, provider_id, start_time, end_time, is_available, created_at
	`, id, a.ProviderID, a.Window.Start, a.Window.End, a.IsAvailable)

	return scanAvailability(row)
}

func (r *PgRepository) Update(ctx context.Context, a *Availability) (*Availability, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE availabilities
		SET provider_id = $2,
		    start_time = $3,
		    end_time = $4,
		    is_available = $5
		WHERE id = $1
		RETURNING id, provider_id, start_time, end_time, is_available, created_at
	`, a.ID, a.ProviderID, a.Window.Start, a.Window.End, a.IsAvailable)

	return scanAvailability(row)
}

func (r *PgRepository) Disable(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE availabilities
		SET is_available = false
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrAvailabilityNotFound
	}
	return nil
}

func (r *PgRepository) List(ctx context.Context, filter ListFilter) ([]Availability, error) {
	query := `
		SELECT id, provider_id, start_time, end_time, is_available, created_at
		FROM availabilities
		WHERE 1=1
	`
	args := []any{}

	if filter.ProviderID != uuid.Nil {
		args = append(args, filter.ProviderID)
		query += ` AND provider_id = $1`
	}
	if filter.ActiveOnly {
		query += ` AND is_available = true`
	}
	query += ` ORDER BY start_time`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Availability
	for rows.Next() {
		a, err := scanAvailability(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) HasOpenWindow(ctx context.Context, providerID uuid.UUID, tr timerange.TimeRange) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM availabilities
			WHERE provider_id = $1
			  AND is_available = true
			  AND start_time <= $2
			  AND end_time >= $3
		)
	`, providerID, tr.Start, tr.End).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}
