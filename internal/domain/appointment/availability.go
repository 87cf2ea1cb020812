package appointment

import (
	"time"

	"github.com/profislots/profislots-api/internal/models"
)

type AvailabilityInput struct {
	SalonID uint
	StaffID uint
	Date    string
}

type Availability struct {
	Date    string  `json:"date"`
	StaffID uint    `json:"staff_id"`
	Slots   []Clock `json:"slots"`
}

// ResolveAvailability removes from candidates every slot occupied by a
// non-cancelled appointment of staffID, and every slot that is not later
// than now when date is today. now must already be in the salon's
// timezone. Dates before today have no availability.
//
// Occupation is point equality on the time of day; appointment durations
// are not considered.
func ResolveAvailability(
	candidates []Clock,
	appointments []models.Appointment,
	staffID uint,
	date string,
	now time.Time,
) []Clock {

	today := now.Format(DateLayout)
	if date < today {
		return []Clock{}
	}

	occupied := make(map[Clock]struct{}, len(appointments))
	for _, ap := range appointments {
		if ap.StaffID != staffID || Status(ap.Status) == StatusCancelled {
			continue
		}
		if ap.AppointmentDate != "" && ap.AppointmentDate != date {
			continue
		}
		c, err := ParseClock(ap.AppointmentTime)
		if err != nil {
			continue
		}
		occupied[c] = struct{}{}
	}

	isToday := date == today
	cutoff := ClockOf(now)

	out := make([]Clock, 0, len(candidates))
	for _, slot := range candidates {
		if _, taken := occupied[slot]; taken {
			continue
		}
		if isToday && slot <= cutoff {
			continue
		}
		out = append(out, slot)
	}
	return out
}
