package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgRepository struct {
	pool *pgxpool.Pool
}

func NewPgRepository(pool *pgxpool.Pool) *PgRepository {
	return &PgRepository{pool: pool}
}

func scanService(row pgx.Row) (*Service, error) {
	var s Service

	err := row.Scan(
		&s.ID,
		&s.Name,
		&s.Description,
		&s.IsActive,
		&s.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}

	return &s, nil
}

func scanOffering(row pgx.Row) (*Offering, error) {
	var o Offering

	err := row.Scan(
		&o.ID,
		&o.ProviderID,
		&o.ServiceID,
		&o.Price,
		&o.DurationMinutes,
		&o.IsActive,
		&o.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrOfferingNotFound
		}
		return nil, err
	}

	return &o, nil
}

func (r *PgRepository) GetServiceByID(ctx context.Context, id uuid.UUID) (*Service, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, name, description, is_active, created_at
		FROM services
		WHERE id = $1
	`, id)
	return scanService(row)
}

func (r *PgRepository) ServiceNameInUse(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM services WHERE lower(name) = lower($1)
		)
	`, name).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgRepository) InsertService(ctx context.Context, s *Service) (*Service, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO services (id, name, description, is_active, created_at)
		VALUES ($1, $2, $3, $4, now())
		RETURNING id, name, description, is_active, created_at
	`, id, s.Name, s.Description, s.IsActive)

	return scanService(row)
}

func (r *PgRepository) UpdateService(ctx context.Context, s *Service) (*Service, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE services
		SET name = $2,
		    description = $3,
		    is_active = $4
		WHERE id = $1
		RETURNING id, name, description, is_active, created_at
	`, s.ID, s.Name, s.Description, s.IsActive)

	return scanService(row)
}

func (r *PgRepository) DeleteService(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		DELETE FROM services WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrServiceNotFound
	}
	return nil
}

func (r *PgRepository) ListServices(ctx context.Context, activeOnly bool) ([]Service, error) {
	query := `
		SELECT id, name, description, is_active, created_at
		FROM services
	`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Service
	for rows.Next() {
		s, err := scanService(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (r *PgRepository) GetOfferingByID(ctx context.Context, id uuid.UUID) (*Offering, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, provider_id, service_id, price, duration_minutes, is_active, created_at
		FROM provider_services
		WHERE id = $1
	`, id)
	return scanOffering(row)
}

func (r *PgRepository) ActiveOfferingExists(ctx context.Context, providerID, serviceID uuid.UUID) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM provider_services
			WHERE provider_id = $1 AND service_id = $2 AND is_active = true
		)
	`, providerID, serviceID).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PgRepository) InsertOffering(ctx context.Context, o *Offering) (*Offering, error) {
	id := uuid.New()

	row := r.pool.QueryRow(ctx, `
		INSERT INTO provider_services (id, provider_id, service_id, price, duration_minutes, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, now())
		RETURNING id, provider_id, service_id, price, duration_minutes, is_active, created_at
	`, id, o.ProviderID, o.ServiceID, o.Price, o.DurationMinutes, o.IsActive)

	return scanOffering(row)
}

func (r *PgRepository) UpdateOffering(ctx context.Context, o *Offering) (*Offering, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE provider_services
		SET service_id = $2,
		    price = $3,
		    duration_minutes = $4,
		    is_active = $5
		WHERE id = $1
		RETURNING id, provider_id, service_id, price, duration_minutes, is_active, created_at
	`, o.ID, o.ServiceID, o.Price, o.DurationMinutes, o.IsActive)

	return scanOffering(row)
}

func (r *PgRepository) DeactivateOffering(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE provider_services
		SET is_active = false
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrOfferingNotFound
	}
	return nil
}

func (r *PgRepository) ListOfferings(ctx context.Context, activeOnly bool) ([]Offering, error) {
	query := `
		SELECT ps.id, ps.provider_id, ps.service_id, ps.price, ps.duration_minutes, ps.is_active, ps.created_at
		FROM provider_services ps
	`
	if activeOnly {
		query += `
		JOIN users u ON u.id = ps.provider_id
		JOIN services s ON s.id = ps.service_id
		WHERE ps.is_active = true AND u.is_active = true AND s.is_active = true
		`
	}
	query += ` ORDER BY ps.created_at`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []Offering
	for rows.Next() {
		o, err := scanOffering(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *o)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
