package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bookwell/appointment-backend/internal/auth"
)

var ErrInvalidOffering = errors.New("price must be positive and duration non-negative")

// Catalog is the application service over services and offerings.
type Catalog struct {
	repo   Repository
	logger *zap.Logger
}

func New(repo Repository, logger *zap.Logger) *Catalog {
	return &Catalog{repo: repo, logger: logger}
}

type ServiceInput struct {
	Name        string
	Description string
	IsActive    bool
}

func (c *Catalog) CreateService(ctx context.Context, actor auth.Principal, in ServiceInput) (*Service, error) {
	if !auth.Allows(actor, auth.ActionServiceWrite, uuid.Nil) {
		return nil, auth.ErrForbidden
	}

	name := strings.TrimSpace(in.Name)

	taken, err := c.repo.ServiceNameInUse(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("check service name: %w", err)
	}
	if taken {
		return nil, ErrServiceExists
	}

	created, err := c.repo.InsertService(ctx, &Service{
		Name:        name,
		Description: in.Description,
		IsActive:    in.IsActive,
	})
	if err != nil {
		return nil, fmt.Errorf("insert service: %w", err)
	}

	c.logger.Info("service created", zap.String("service_id", created.ID.String()), zap.String("name", created.Name))
	return created, nil
}

func (c *Catalog) GetService(ctx context.Context, id uuid.UUID) (*Service, error) {
	return c.repo.GetServiceByID(ctx, id)
}

func (c *Catalog) UpdateService(ctx context.Context, actor auth.Principal, id uuid.UUID, in ServiceInput) (*Service, error) {
	if !auth.Allows(actor, auth.ActionServiceWrite, uuid.Nil) {
		return nil, auth.ErrForbidden
	}

	s, err := c.repo.GetServiceByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.Name = strings.TrimSpace(in.Name)
	s.Description = in.Description
	s.IsActive = in.IsActive

	return c.repo.UpdateService(ctx, s)
}

func (c *Catalog) DeleteService(ctx context.Context, actor auth.Principal, id uuid.UUID) error {
	if !auth.Allows(actor, auth.ActionServiceWrite, uuid.Nil) {
		return auth.ErrForbidden
	}
	return c.repo.DeleteService(ctx, id)
}

// ListServices hides inactive entries from everyone but admins.
func (c *Catalog) ListServices(ctx context.Context, actor auth.Principal) ([]Service, error) {
	return c.repo.ListServices(ctx, actor.Role != auth.RoleAdmin)
}

type OfferingInput struct {
	ProviderID      uuid.UUID
	ServiceID       uuid.UUID
	Price           int
	DurationMinutes int
	IsActive        bool
}

// CreateOffering attaches a provider to a service. Providers may only
// create offerings for themselves; admins for anyone. A second active
// offering for the same (provider, service) pair is a conflict, but a
// deactivated pair may be offered again.
func (c *Catalog) CreateOffering(ctx context.Context, actor auth.Principal, in OfferingInput) (*Offering, error) {
	providerID := in.ProviderID
	if actor.Role == auth.RoleProvider {
		providerID = actor.ID
	}

	if !auth.Allows(actor, auth.ActionOfferingCreate, providerID) {
		return nil, auth.ErrForbidden
	}
	if in.Price <= 0 || in.DurationMinutes < 0 {
		return nil, ErrInvalidOffering
	}

	exists, err := c.repo.ActiveOfferingExists(ctx, providerID, in.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("check offering: %w", err)
	}
	if exists {
		return nil, ErrOfferingExists
	}

	created, err := c.repo.InsertOffering(ctx, &Offering{
		ProviderID:      providerID,
		ServiceID:       in.ServiceID,
		Price:           in.Price,
		DurationMinutes: in.DurationMinutes,
		IsActive:        in.IsActive,
	})
	if err != nil {
		return nil, fmt.Errorf("insert offering: %w", err)
	}

	c.logger.Info("offering created",
		zap.String("offering_id", created.ID.String()),
		zap.String("provider_id", created.ProviderID.String()),
		zap.String("service_id", created.ServiceID.String()),
	)

	return created, nil
}

func (c *Catalog) GetOffering(ctx context.Context, id uuid.UUID) (*Offering, error) {
	return c.repo.GetOfferingByID(ctx, id)
}

func (c *Catalog) UpdateOffering(ctx context.Context, actor auth.Principal, id uuid.UUID, in OfferingInput) (*Offering, error) {
	o, err := c.repo.GetOfferingByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !auth.Allows(actor, auth.ActionOfferingWrite, o.ProviderID) {
		return nil, auth.ErrForbidden
	}
	if in.Price <= 0 || in.DurationMinutes < 0 {
		return nil, ErrInvalidOffering
	}

	if actor.Role == auth.RoleAdmin && in.ProviderID != uuid.Nil {
		o.ProviderID = in.ProviderID
	}
	o.ServiceID = in.ServiceID
	o.Price = in.Price
	o.DurationMinutes = in.DurationMinutes
	o.IsActive = in.IsActive

	return c.repo.UpdateOffering(ctx, o)
}

// DeleteOffering soft-deletes; appointments booked under the offering are
// preserved untouched.
func (c *Catalog) DeleteOffering(ctx context.Context, actor auth.Principal, id uuid.UUID) error {
	o, err := c.repo.GetOfferingByID(ctx, id)
	if err != nil {
		return err
	}

	if !auth.Allows(actor, auth.ActionOfferingWrite, o.ProviderID) {
		return auth.ErrForbidden
	}

	return c.repo.DeactivateOffering(ctx, o.ID)
}

func (c *Catalog) ListOfferings(ctx context.Context, actor auth.Principal) ([]Offering, error) {
	return c.repo.ListOfferings(ctx, actor.Role != auth.RoleAdmin)
}

// IsOffered is the booking engine's offering check: it reads only the
// offering's own active flag, not the provider's or service's.
func (c *Catalog) IsOffered(ctx context.Context, providerID, serviceID uuid.UUID) (bool, error) {
	return c.repo.ActiveOfferingExists(ctx, providerID, serviceID)
}
