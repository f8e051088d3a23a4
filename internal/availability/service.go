package availability

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bookwell/appointment-backend/internal/auth"
	"github.com/bookwell/appointment-backend/internal/timerange"
)

type Service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// Create declares a new open window. Providers declare for themselves;
// admins may declare on behalf of any provider.
func (s *Service) Create(ctx context.Context, actor auth.Principal, providerID uuid.UUID, window timerange.TimeRange) (*Availability, error) {
	if actor.Role == auth.RoleProvider {
		providerID = actor.ID
	}

	if !auth.Allows(actor, auth.ActionAvailabilityCreate, providerID) {
		return nil, auth.ErrForbidden
	}

	created, err := s.repo.Insert(ctx, &Availability{
		ProviderID:  providerID,
		Window:      window,
		IsAvailable: true,
	})
	if err != nil {
		return nil, fmt.Errorf("insert availability: %w", err)
	}

	s.logger.Info("availability window declared",
		zap.String("availability_id", created.ID.String()),
		zap.String("provider_id", created.ProviderID.String()),
		zap.Time("start", created.Window.Start),
		zap.Time("end", created.Window.End),
	)

	return created, nil
}

// Get returns one window. Providers only see their own; clients only see
// windows that are still open.
func (s *Service) Get(ctx context.Context, actor auth.Principal, id uuid.UUID) (*Availability, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case auth.RoleProvider:
		if a.ProviderID != actor.ID {
			return nil, auth.ErrForbidden
		}
	case auth.RoleClient:
		if !a.IsAvailable {
			return nil, auth.ErrForbidden
		}
	}

	return a, nil
}

// List returns windows visible to the actor: admins see everything,
// providers their own (including disabled), clients only open windows.
func (s *Service) List(ctx context.Context, actor auth.Principal) ([]Availability, error) {
	var filter ListFilter

	switch actor.Role {
	case auth.RoleClient:
		filter.ActiveOnly = true
	case auth.RoleProvider:
		filter.ProviderID = actor.ID
	}

	return s.repo.List(ctx, filter)
}

// Update rewrites a window's range and re-enables it.
func (s *Service) Update(ctx context.Context, actor auth.Principal, id uuid.UUID, providerID uuid.UUID, window timerange.TimeRange) (*Availability, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !auth.Allows(actor, auth.ActionAvailabilityWrite, a.ProviderID) {
		return nil, auth.ErrForbidden
	}

	if actor.Role == auth.RoleAdmin && providerID != uuid.Nil {
		a.ProviderID = providerID
	}
	a.Window = window
	a.IsAvailable = true

	return s.repo.Update(ctx, a)
}

// Disable soft-deletes a window. Appointments already booked under it stay
// valid; only new bookings are blocked.
func (s *Service) Disable(ctx context.Context, actor auth.Principal, id uuid.UUID) error {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !auth.Allows(actor, auth.ActionAvailabilityWrite, a.ProviderID) {
		return auth.ErrForbidden
	}

	return s.repo.Disable(ctx, a.ID)
}

// HasOpenWindow is the booking engine's availability check.
func (s *Service) HasOpenWindow(ctx context.Context, providerID uuid.UUID, r timerange.TimeRange) (bool, error) {
	return s.repo.HasOpenWindow(ctx, providerID, r)
}
