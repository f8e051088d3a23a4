package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrServiceExists    = errors.New("service already exists")
	ErrOfferingNotFound = errors.New("offering not found")
	ErrOfferingExists   = errors.New("provider already offers this service")
)

// Repository contains all DB interactions needed by the catalog.
type Repository interface {
	GetServiceByID(ctx context.Context, id uuid.UUID) (*Service, error)
	ServiceNameInUse(ctx context.Context, name string) (bool, error)
	InsertService(ctx context.Context, s *Service) (*Service, error)
	UpdateService(ctx context.Context, s *Service) (*Service, error)
	DeleteService(ctx context.Context, id uuid.UUID) error
	ListServices(ctx context.Context, activeOnly bool) ([]Service, error)

	GetOfferingByID(ctx context.Context, id uuid.UUID) (*Offering, error)

	// ActiveOfferingExists reports whether provider actively offers service.
	ActiveOfferingExists(ctx context.Context, providerID, serviceID uuid.UUID) (bool, error)

	InsertOffering(ctx context.Context, o *Offering) (*Offering, error)
	UpdateOffering(ctx context.Context, o *Offering) (*Offering, error)
	DeactivateOffering(ctx context.Context, id uuid.UUID) error

	// ListOfferings returns all offerings when activeOnly is false; otherwise
	// only offerings whose own flag, provider and service are all active.
	ListOfferings(ctx context.Context, activeOnly bool) ([]Offering, error)
}
