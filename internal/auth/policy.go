package auth

import (
	"errors"

	"github.com/google/uuid"
)

// ErrForbidden is returned whenever a principal attempts an action the
// policy table denies.
var ErrForbidden = errors.New("forbidden")

type Role string

const (
	RoleClient   Role = "client"
	RoleProvider Role = "provider"
	RoleAdmin    Role = "admin"
)

func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleClient, RoleProvider, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Principal is the authenticated identity attached to every request. The
// middleware resolves it from the bearer token; downstream code trusts it.
type Principal struct {
	ID   uuid.UUID
	Role Role
}

type Action string

const (
	ActionUserRead       Action = "user.read"
	ActionUserUpdate     Action = "user.update"
	ActionUserDeactivate Action = "user.deactivate"
	ActionUserList       Action = "user.list"

	ActionServiceWrite Action = "service.write"

	ActionOfferingCreate Action = "offering.create"
	ActionOfferingWrite  Action = "offering.write"

	ActionAvailabilityCreate Action = "availability.create"
	ActionAvailabilityWrite  Action = "availability.write"

	ActionAppointmentCreate Action = "appointment.create"
	ActionAppointmentRead   Action = "appointment.read"
)

// Scope says which resources a role may apply an action to: any resource,
// only resources it owns, or none at all.
type Scope int

const (
	ScopeNone Scope = iota
	ScopeOwn
	ScopeAny
)

// rules is the whole permission matrix in one place. Admin is handled
// implicitly in Allows and never consulted here.
var rules = map[Role]map[Action]Scope{
	RoleClient: {
		ActionUserRead:          ScopeOwn,
		ActionUserUpdate:        ScopeOwn,
		ActionUserDeactivate:    ScopeOwn,
		ActionAppointmentCreate: ScopeOwn,
		ActionAppointmentRead:   ScopeOwn,
	},
	RoleProvider: {
		ActionUserRead:           ScopeOwn,
		ActionUserUpdate:         ScopeOwn,
		ActionUserDeactivate:     ScopeOwn,
		ActionOfferingCreate:     ScopeOwn,
		ActionOfferingWrite:      ScopeOwn,
		ActionAvailabilityCreate: ScopeOwn,
		ActionAvailabilityWrite:  ScopeOwn,
		ActionAppointmentRead:    ScopeOwn,
	},
}

// Allows decides whether p may perform action against the resource owned by
// ownerID. Pass uuid.Nil as ownerID for actions without a single owner.
func Allows(p Principal, action Action, ownerID uuid.UUID) bool {
	if p.Role == RoleAdmin {
		return true
	}

	scope, ok := rules[p.Role][action]
	if !ok {
		return false
	}

	switch scope {
	case ScopeAny:
		return true
	case ScopeOwn:
		return p.ID == ownerID
	default:
		return false
	}
}
