package availability

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bookwell/appointment-backend/internal/timerange"
)

var ErrAvailabilityNotFound = errors.New("availability not found")

// ListFilter narrows List: zero values mean "no constraint".
type ListFilter struct {
	ProviderID uuid.UUID
	ActiveOnly bool
}

// Repository contains all DB interactions needed by the availability service.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Availability, error)
	Insert(ctx context.Context, a *Availability) (*Availability, error)
	Update(ctx context.Context, a *Availability) (*Availability, error)
	Disable(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, filter ListFilter) ([]Availability, error)

	// HasOpenWindow reports whether some active window of the provider fully
	// contains r. Disabled windows are excluded from the scan.
	HasOpenWindow(ctx context.Context, providerID uuid.UUID, r timerange.TimeRange) (bool, error)
}
