package booking

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookwell/appointment-backend/internal/timerange"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return Status(s), true
	}
	return "", false
}

// IsTerminal reports whether no further transitions leave the status.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Active reports whether the appointment still holds its time slot.
// Completed and cancelled appointments free the range for rebooking.
func (s Status) Active() bool {
	return s == StatusPending || s == StatusConfirmed
}

// Appointment is created only by the booking engine, never directly.
// Window is half-open, so back-to-back appointments share a boundary
// without conflicting.
type Appointment struct {
	ID         uuid.UUID
	PatientID  uuid.UUID
	ProviderID uuid.UUID
	ServiceID  uuid.UUID
	Window     timerange.TimeRange
	Status     Status
	CreatedAt  time.Time
}

type EventLog struct {
	ID            int64
	EventType     string
	AppointmentID *uuid.UUID
	Payload       []byte
	CreatedAt     time.Time
}
