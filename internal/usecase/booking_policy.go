package usecase

import (
	"github.com/hsiereveld/careservices-sub000/internal/data/entity"
)

// Actor describes the requesting user relative to one specific booking.
// Ownership is resolved by the caller from the booking row; the policy
// functions below are pure.
type Actor struct {
	Role          entity.UserRole
	IsClientOwner bool
	IsProOwner    bool
}

// statusTransitions is the authoritative lifecycle table. A transition absent
// from this map is forbidden for everyone, same-state included. The roles
// listed per transition are further narrowed by ownership: client and pro
// entries only apply to the booking's own client/pro, admin never needs
// ownership.
var statusTransitions = map[entity.BookingStatus]map[entity.BookingStatus][]entity.UserRole{
	entity.BookingStatusPending: {
		entity.BookingStatusConfirmed: {entity.RolePro, entity.RoleAdmin},
		entity.BookingStatusCancelled: {entity.RoleClient, entity.RolePro, entity.RoleAdmin},
	},
	entity.BookingStatusConfirmed: {
		entity.BookingStatusInProgress: {entity.RolePro, entity.RoleAdmin},
		entity.BookingStatusCancelled:  {entity.RoleClient, entity.RolePro, entity.RoleAdmin},
	},
	entity.BookingStatusInProgress: {
		entity.BookingStatusCompleted: {entity.RolePro, entity.RoleAdmin},
	},
	entity.BookingStatusCompleted: {
		entity.BookingStatusRefunded: {entity.RoleAdmin},
	},
	entity.BookingStatusCancelled: {
		entity.BookingStatusRefunded: {entity.RoleAdmin},
	},
}

// actsAs reports whether the actor can exercise the given role on this
// booking. client/pro require ownership of the booking itself.
func (a Actor) actsAs(role entity.UserRole) bool {
	if a.Role != role {
		return false
	}
	switch role {
	case entity.RoleClient:
		return a.IsClientOwner
	case entity.RolePro:
		return a.IsProOwner
	default:
		return true
	}
}

// CanAccessBooking is the read/update gate that runs before any field or
// status logic: admin, franchise, owning client, or owning pro.
func CanAccessBooking(a Actor) bool {
	switch a.Role {
	case entity.RoleAdmin, entity.RoleFranchise:
		return true
	case entity.RoleClient:
		return a.IsClientOwner
	case entity.RolePro:
		return a.IsProOwner
	default:
		return false
	}
}

// CanTransition decides whether the actor may move the booking from one
// status to another.
func CanTransition(a Actor, from, to entity.BookingStatus) bool {
	roles, ok := statusTransitions[from][to]
	if !ok {
		return false
	}
	for _, role := range roles {
		if a.actsAs(role) {
			return true
		}
	}
	return false
}

// CanEditClientNotes: owning client or admin.
func CanEditClientNotes(a Actor) bool {
	return a.actsAs(entity.RoleClient) || a.Role == entity.RoleAdmin
}

// CanEditProFields covers pro_notes, actual_start and actual_end: owning pro
// or admin.
func CanEditProFields(a Actor) bool {
	return a.actsAs(entity.RolePro) || a.Role == entity.RoleAdmin
}

// CanEditSchedule: owning client or admin, and only while the booking is
// still pending.
func CanEditSchedule(a Actor, current entity.BookingStatus) bool {
	if current != entity.BookingStatusPending {
		return false
	}
	return a.actsAs(entity.RoleClient) || a.Role == entity.RoleAdmin
}

// CanDeleteBooking: admin always, the owning client only while pending.
// A permitted delete is executed as the cancel transition, never as a row
// removal.
func CanDeleteBooking(a Actor, current entity.BookingStatus) bool {
	if a.Role == entity.RoleAdmin {
		return true
	}
	return a.actsAs(entity.RoleClient) && current == entity.BookingStatusPending
}
