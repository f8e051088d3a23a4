package booking

import (
	"github.com/bookwell/appointment-backend/internal/auth"
)

// transitionTargets is the lifecycle permission matrix: which target
// statuses each role may request. The role set is the only graph
// constraint for providers (a provider may complete a pending
// appointment without confirming it first); clients additionally may not
// touch terminal appointments. Admin bypasses the table entirely.
var transitionTargets = map[auth.Role]map[Status]bool{
	auth.RoleClient: {
		StatusCancelled: true,
	},
	auth.RoleProvider: {
		StatusConfirmed: true,
		StatusCompleted: true,
	},
}

// CanTransition decides whether actor may move appt to target. The actor
// must be a party to the appointment unless they are admin.
func CanTransition(actor auth.Principal, appt *Appointment, target Status) bool {
	if actor.Role == auth.RoleAdmin {
		return true
	}

	if !transitionTargets[actor.Role][target] {
		return false
	}

	switch actor.Role {
	case auth.RoleClient:
		return actor.ID == appt.PatientID && !appt.Status.IsTerminal()
	case auth.RoleProvider:
		return actor.ID == appt.ProviderID
	default:
		return false
	}
}

// CanCancel gates the DELETE convenience path: the patient who owns the
// appointment, while it is not yet terminal, or an admin.
func CanCancel(actor auth.Principal, appt *Appointment) bool {
	if actor.Role == auth.RoleAdmin {
		return true
	}
	return actor.ID == appt.PatientID && !appt.Status.IsTerminal()
}

// CanView gates reads: admins see everything, otherwise only parties to
// the appointment.
func CanView(actor auth.Principal, appt *Appointment) bool {
	if actor.Role == auth.RoleAdmin {
		return true
	}
	return actor.ID == appt.PatientID || actor.ID == appt.ProviderID
}
