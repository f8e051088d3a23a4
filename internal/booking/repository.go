package booking

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/bookwell/appointment-backend/internal/timerange"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

// ListFilter narrows List; zero values mean "no constraint".
type ListFilter struct {
	PatientID  uuid.UUID
	ProviderID uuid.UUID
}

// Repository is the appointment ledger.
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Appointment, error)

	// HasOverlapping reports whether any pending or confirmed appointment of
	// the provider overlaps r. Completed and cancelled appointments have
	// freed their range and are excluded.
	HasOverlapping(ctx context.Context, providerID uuid.UUID, r timerange.TimeRange) (bool, error)

	// Insert persists a new appointment as a single all-or-nothing statement.
	Insert(ctx context.Context, a *Appointment) (*Appointment, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, to Status) (*Appointment, error)
	List(ctx context.Context, filter ListFilter) ([]Appointment, error)

	// Event logging
	InsertEvent(ctx context.Context, ev EventLog) error
}
