package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/bookwell/appointment-backend/internal/auth"
	redisclient "github.com/bookwell/appointment-backend/internal/redis"
	"github.com/bookwell/appointment-backend/internal/timerange"
)

const (
	EventAppointmentCreated   = "APPOINTMENT_CREATED"
	EventAppointmentCancelled = "APPOINTMENT_CANCELLED"
	EventStatusChanged        = "APPOINTMENT_STATUS_CHANGED"
)

var (
	// ErrInvalidRange re-exports the range sentinel so callers match the
	// whole booking taxonomy against one package.
	ErrInvalidRange = timerange.ErrInvalidRange

	ErrOfferingNotFound    = errors.New("provider does not offer this service")
	ErrOutsideAvailability = errors.New("provider not available at this time")
	ErrSlotConflict        = errors.New("time slot already booked")
)

// OfferingDirectory answers whether a provider actively offers a service.
type OfferingDirectory interface {
	IsOffered(ctx context.Context, providerID, serviceID uuid.UUID) (bool, error)
}

// AvailabilityIndex answers whether some open window of the provider fully
// contains a requested range.
type AvailabilityIndex interface {
	HasOpenWindow(ctx context.Context, providerID uuid.UUID, r timerange.TimeRange) (bool, error)
}

// Service is the booking engine: the only component that creates
// appointments, and the only one that mutates their status.
type Service struct {
	repo      Repository
	offerings OfferingDirectory
	windows   AvailabilityIndex
	locker    redisclient.Locker
	logger    *zap.Logger
}

func NewService(repo Repository, offerings OfferingDirectory, windows AvailabilityIndex, locker redisclient.Locker, logger *zap.Logger) *Service {
	return &Service{
		repo:      repo,
		offerings: offerings,
		windows:   windows,
		locker:    locker,
		logger:    logger,
	}
}

// Book runs the three preconditions in fixed order — offering, open
// window, overlap — and inserts the pending appointment, all inside the
// provider's lock so that two racing requests for overlapping ranges
// cannot both commit. The first failing check is the one reported.
func (s *Service) Book(ctx context.Context, actor auth.Principal, providerID, serviceID uuid.UUID, r timerange.TimeRange) (*Appointment, error) {
	if !auth.Allows(actor, auth.ActionAppointmentCreate, actor.ID) {
		return nil, auth.ErrForbidden
	}

	// Constructed TimeRanges are already ordered; guard against zero values.
	if !r.Start.Before(r.End) {
		return nil, ErrInvalidRange
	}

	var created *Appointment

	err := s.locker.WithProviderLock(ctx, providerID, func(lockCtx context.Context) error {
		offered, err := s.offerings.IsOffered(lockCtx, providerID, serviceID)
		if err != nil {
			return fmt.Errorf("check offering: %w", err)
		}
		if !offered {
			return ErrOfferingNotFound
		}

		open, err := s.windows.HasOpenWindow(lockCtx, providerID, r)
		if err != nil {
			return fmt.Errorf("check availability: %w", err)
		}
		if !open {
			return ErrOutsideAvailability
		}

		conflict, err := s.repo.HasOverlapping(lockCtx, providerID, r)
		if err != nil {
			return fmt.Errorf("check conflicts: %w", err)
		}
		if conflict {
			return ErrSlotConflict
		}

		appt, err := s.repo.Insert(lockCtx, &Appointment{
			PatientID:  actor.ID,
			ProviderID: providerID,
			ServiceID:  serviceID,
			Window:     r,
			Status:     StatusPending,
		})
		if err != nil {
			return fmt.Errorf("insert appointment: %w", err)
		}

		created = appt

		s.logEvent(lockCtx, appt.ID, EventAppointmentCreated, map[string]any{
			"patient_id":  appt.PatientID.String(),
			"provider_id": appt.ProviderID.String(),
			"service_id":  appt.ServiceID.String(),
			"start_time":  appt.Window.Start,
			"end_time":    appt.Window.End,
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// UpdateStatus applies a lifecycle transition on behalf of actor. The
// transition table in policy.go is the sole authority on what each role
// may do.
func (s *Service) UpdateStatus(ctx context.Context, actor auth.Principal, id uuid.UUID, target Status) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanTransition(actor, appt, target) {
		return nil, auth.ErrForbidden
	}

	updated, err := s.repo.UpdateStatus(ctx, appt.ID, target)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}

	s.logEvent(ctx, updated.ID, EventStatusChanged, map[string]any{
		"from":     string(appt.Status),
		"to":       string(updated.Status),
		"actor_id": actor.ID.String(),
		"role":     string(actor.Role),
	})

	return updated, nil
}

// Cancel is the DELETE convenience path: transition to cancelled, gated
// to the patient who owns the appointment or an admin.
func (s *Service) Cancel(ctx context.Context, actor auth.Principal, id uuid.UUID) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanCancel(actor, appt) {
		return nil, auth.ErrForbidden
	}

	updated, err := s.repo.UpdateStatus(ctx, appt.ID, StatusCancelled)
	if err != nil {
		return nil, fmt.Errorf("cancel appointment: %w", err)
	}

	s.logEvent(ctx, updated.ID, EventAppointmentCancelled, map[string]any{
		"actor_id": actor.ID.String(),
		"role":     string(actor.Role),
	})

	return updated, nil
}

func (s *Service) Get(ctx context.Context, actor auth.Principal, id uuid.UUID) (*Appointment, error) {
	appt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !CanView(actor, appt) {
		return nil, auth.ErrForbidden
	}

	return appt, nil
}

// List returns the appointments visible to the caller: all of them for
// admins, otherwise the caller's own side of the ledger.
func (s *Service) List(ctx context.Context, actor auth.Principal) ([]Appointment, error) {
	var filter ListFilter

	switch actor.Role {
	case auth.RoleClient:
		filter.PatientID = actor.ID
	case auth.RoleProvider:
		filter.ProviderID = actor.ID
	}

	return s.repo.List(ctx, filter)
}

func (s *Service) logEvent(ctx context.Context, appointmentID uuid.UUID, eventType string, payload map[string]any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Warn("marshal event payload", zap.String("event", eventType), zap.Error(err))
		data = nil
	}

	apptID := appointmentID

	ev := EventLog{
		EventType:     eventType,
		AppointmentID: &apptID,
		Payload:       data,
		CreatedAt:     time.Now(),
	}

	if err := s.repo.InsertEvent(ctx, ev); err != nil {
		s.logger.Warn("insert event log",
			zap.String("event", eventType),
			zap.String("appointment_id", appointmentID.String()),
			zap.Error(err),
		)
	}
}
