package appointment

import "github.com/profislots/profislots-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusConfirmed Status = "confirmed"
	StatusPending   Status = "pending"
	StatusCancelled Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusPending, StatusCancelled:
		return true
	}
	return false
}

// Occupies reports whether an appointment in this status blocks its slot.
func (s Status) Occupies() bool {
	return s != StatusCancelled
}

// ===============================
// Validations
// ===============================

func CanCancel(current Status) error {
	if current != StatusConfirmed && current != StatusPending {
		return httperr.ErrInvalidState("invalid_state")
	}
	return nil
}

func CanConfirm(current Status) error {
	if current != StatusPending {
		return httperr.ErrInvalidState("invalid_state")
	}
	return nil
}

// InitialStatus resolves the status a new booking starts in. An empty
// request means confirmed; a booking can never start cancelled.
func InitialStatus(requested string) (Status, error) {
	if requested == "" {
		return StatusConfirmed, nil
	}
	s := Status(requested)
	if !s.Valid() || s == StatusCancelled {
		return "", httperr.ErrInvalid("invalid_status")
	}
	return s, nil
}
