package availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/bookwell/appointment-backend/internal/timerange"
)

// Availability is a provider-declared open window during which bookings are
// permissible. Disabled windows (IsAvailable=false) stay addressable by id
// for audit history but never satisfy containment checks.
type Availability struct {
	ID          uuid.UUID
	ProviderID  uuid.UUID
	Window      timerange.TimeRange
	IsAvailable bool
	CreatedAt   time.Time
}
