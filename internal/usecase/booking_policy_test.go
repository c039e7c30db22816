package usecase

import (
	"testing"

	"github.com/hsiereveld/careservices-sub000/internal/data/entity"
)

var allStatuses = []entity.BookingStatus{
	entity.BookingStatusPending,
	entity.BookingStatusConfirmed,
	entity.BookingStatusInProgress,
	entity.BookingStatusCompleted,
	entity.BookingStatusCancelled,
	entity.BookingStatusRefunded,
}

// every actor constellation that can reach the policy: owners and
// non-owners for client/pro, plus franchise and admin.
var allActors = map[string]Actor{
	"client owner":     {Role: entity.RoleClient, IsClientOwner: true},
	"client non-owner": {Role: entity.RoleClient},
	"pro owner":        {Role: entity.RolePro, IsProOwner: true},
	"pro non-owner":    {Role: entity.RolePro},
	"franchise":        {Role: entity.RoleFranchise},
	"admin":            {Role: entity.RoleAdmin},
}

func TestCanTransition_FullMatrix(t *testing.T) {
	type rule struct {
		from, to entity.BookingStatus
		roles    []entity.UserRole
	}

	// the authoritative table
	rules := []rule{
		{entity.BookingStatusPending, entity.BookingStatusConfirmed, []entity.UserRole{entity.RolePro, entity.RoleAdmin}},
		{entity.BookingStatusConfirmed, entity.BookingStatusInProgress, []entity.UserRole{entity.RolePro, entity.RoleAdmin}},
		{entity.BookingStatusInProgress, entity.BookingStatusCompleted, []entity.UserRole{entity.RolePro, entity.RoleAdmin}},
		{entity.BookingStatusPending, entity.BookingStatusCancelled, []entity.UserRole{entity.RoleClient, entity.RolePro, entity.RoleAdmin}},
		{entity.BookingStatusConfirmed, entity.BookingStatusCancelled, []entity.UserRole{entity.RoleClient, entity.RolePro, entity.RoleAdmin}},
		{entity.BookingStatusCompleted, entity.BookingStatusRefunded, []entity.UserRole{entity.RoleAdmin}},
		{entity.BookingStatusCancelled, entity.BookingStatusRefunded, []entity.UserRole{entity.RoleAdmin}},
	}

	for _, from := range allStatuses {
		for _, to := range allStatuses {
			var allowedRoles []entity.UserRole
			for _, r := range rules {
				if r.from == from && r.to == to {
					allowedRoles = r.roles
					break
				}
			}

			for name, actor := range allActors {
				want := false
				for _, role := range allowedRoles {
					if actor.Role != role {
						continue
					}
					switch role {
					case entity.RoleClient:
						want = actor.IsClientOwner
					case entity.RolePro:
						want = actor.IsProOwner
					default:
						want = true
					}
					if want {
						break
					}
				}

				got := CanTransition(actor, from, to)
				if got != want {
					t.Errorf("CanTransition(%s, %s -> %s) = %v, want %v", name, from, to, got, want)
				}
			}
		}
	}
}

func TestCanTransition_SameStateRejected(t *testing.T) {
	for _, status := range allStatuses {
		for name, actor := range allActors {
			if CanTransition(actor, status, status) {
				t.Errorf("same-state transition %s -> %s allowed for %s", status, status, name)
			}
		}
	}
}

func TestCanTransition_RefundedIsSink(t *testing.T) {
	for _, to := range allStatuses {
		for name, actor := range allActors {
			if CanTransition(actor, entity.BookingStatusRefunded, to) {
				t.Errorf("transition out of refunded to %s allowed for %s", to, name)
			}
		}
	}
}

func TestCanAccessBooking(t *testing.T) {
	cases := []struct {
		name  string
		actor Actor
		want  bool
	}{
		{"admin", Actor{Role: entity.RoleAdmin}, true},
		{"franchise", Actor{Role: entity.RoleFranchise}, true},
		{"owning client", Actor{Role: entity.RoleClient, IsClientOwner: true}, true},
		{"other client", Actor{Role: entity.RoleClient}, false},
		{"owning pro", Actor{Role: entity.RolePro, IsProOwner: true}, true},
		{"other pro", Actor{Role: entity.RolePro}, false},
	}

	for _, tc := range cases {
		if got := CanAccessBooking(tc.actor); got != tc.want {
			t.Errorf("CanAccessBooking(%s) = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestFieldGates(t *testing.T) {
	clientOwner := Actor{Role: entity.RoleClient, IsClientOwner: true}
	proOwner := Actor{Role: entity.RolePro, IsProOwner: true}
	admin := Actor{Role: entity.RoleAdmin}
	franchise := Actor{Role: entity.RoleFranchise}

	if !CanEditClientNotes(clientOwner) || !CanEditClientNotes(admin) {
		t.Fatalf("expected owning client and admin to edit client notes")
	}
	if CanEditClientNotes(proOwner) || CanEditClientNotes(franchise) {
		t.Fatalf("expected pro and franchise to be denied client notes")
	}

	if !CanEditProFields(proOwner) || !CanEditProFields(admin) {
		t.Fatalf("expected owning pro and admin to edit pro fields")
	}
	if CanEditProFields(clientOwner) || CanEditProFields(franchise) {
		t.Fatalf("expected client and franchise to be denied pro fields")
	}
}

func TestCanEditSchedule_OnlyWhilePending(t *testing.T) {
	clientOwner := Actor{Role: entity.RoleClient, IsClientOwner: true}
	admin := Actor{Role: entity.RoleAdmin}
	proOwner := Actor{Role: entity.RolePro, IsProOwner: true}

	if !CanEditSchedule(clientOwner, entity.BookingStatusPending) {
		t.Fatalf("expected owning client to reschedule a pending booking")
	}
	if !CanEditSchedule(admin, entity.BookingStatusPending) {
		t.Fatalf("expected admin to reschedule a pending booking")
	}
	if CanEditSchedule(proOwner, entity.BookingStatusPending) {
		t.Fatalf("expected pro to be denied rescheduling")
	}

	for _, status := range allStatuses {
		if status == entity.BookingStatusPending {
			continue
		}
		if CanEditSchedule(clientOwner, status) {
			t.Errorf("expected rescheduling denied in status %s", status)
		}
		if CanEditSchedule(admin, status) {
			t.Errorf("expected admin rescheduling denied in status %s", status)
		}
	}
}

func TestCanDeleteBooking(t *testing.T) {
	clientOwner := Actor{Role: entity.RoleClient, IsClientOwner: true}
	admin := Actor{Role: entity.RoleAdmin}

	if !CanDeleteBooking(clientOwner, entity.BookingStatusPending) {
		t.Fatalf("expected owning client to delete a pending booking")
	}

	for _, status := range allStatuses {
		if !CanDeleteBooking(admin, status) {
			t.Errorf("expected admin delete allowed in status %s", status)
		}
		if status == entity.BookingStatusPending {
			continue
		}
		if CanDeleteBooking(clientOwner, status) {
			t.Errorf("expected client delete denied in status %s", status)
		}
	}

	for _, name := range []string{"client non-owner", "pro owner", "pro non-owner", "franchise"} {
		if CanDeleteBooking(allActors[name], entity.BookingStatusPending) {
			t.Errorf("expected delete denied for %s", name)
		}
	}
}
