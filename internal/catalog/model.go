package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Service is a catalog entry clients can book, e.g. "haircut" or
// "dermatology consult". Providers attach themselves to it via an Offering.
type Service struct {
	ID          uuid.UUID
	Name        string
	Description string
	IsActive    bool
	CreatedAt   time.Time
}

// Offering is an active (provider, service) pairing with a price and an
// advertised duration. Soft-deleted by flipping IsActive; historical
// appointments keep referencing the row.
type Offering struct {
	ID              uuid.UUID
	ProviderID      uuid.UUID
	ServiceID       uuid.UUID
	Price           int
	DurationMinutes int
	IsActive        bool
	CreatedAt       time.Time
}
