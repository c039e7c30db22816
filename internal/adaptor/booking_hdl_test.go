package adaptor

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
)

func TestHandleServiceError_StatusMapping(t *testing.T) {
	h := NewBookingHandler(nil, zap.NewNop())

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"not found", errors.New("booking 42 not found"), http.StatusNotFound},
		{"delete redirected", errors.New("Cannot delete booking. Use status update to cancel instead."), http.StatusForbidden},
		{"access denied", errors.New("access denied to booking 42"), http.StatusForbidden},
		{"concurrent update", errors.New("booking 42 was modified concurrently, status is no longer pending"), http.StatusConflict},
		{"validation", errors.New("validation failed: scheduled_end must be greater than ScheduledStart"), http.StatusBadRequest},
		{"bad id", errors.New("invalid booking ID format zzz"), http.StatusBadRequest},
		{"rejected transition", errors.New("Cannot change status from pending to completed"), http.StatusBadRequest},
		{"past start", errors.New("cannot book a start time in the past"), http.StatusBadRequest},
		{"unknown", errors.New("connection reset by peer"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.handleServiceError(rec, tc.err, "test operation")
		if rec.Code != tc.want {
			t.Errorf("%s: status = %d, want %d", tc.name, rec.Code, tc.want)
		}
	}
}
