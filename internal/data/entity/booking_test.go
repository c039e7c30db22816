package entity

import "testing"

func TestParseBookingStatus(t *testing.T) {
	valid := []string{"pending", "confirmed", "in_progress", "completed", "cancelled", "refunded"}
	for _, s := range valid {
		status, err := ParseBookingStatus(s)
		if err != nil {
			t.Errorf("ParseBookingStatus(%q) failed: %v", s, err)
		}
		if string(status) != s {
			t.Errorf("ParseBookingStatus(%q) = %q", s, status)
		}
	}

	for _, s := range []string{"", "done", "Pending", "in progress"} {
		if _, err := ParseBookingStatus(s); err == nil {
			t.Errorf("ParseBookingStatus(%q) accepted an unknown status", s)
		}
	}
}

func TestParseUserRole(t *testing.T) {
	for _, s := range []string{"client", "pro", "franchise", "admin"} {
		role, err := ParseUserRole(s)
		if err != nil {
			t.Errorf("ParseUserRole(%q) failed: %v", s, err)
		}
		if string(role) != s {
			t.Errorf("ParseUserRole(%q) = %q", s, role)
		}
	}

	for _, s := range []string{"", "customer", "Admin"} {
		if _, err := ParseUserRole(s); err == nil {
			t.Errorf("ParseUserRole(%q) accepted an unknown role", s)
		}
	}
}
