package appointment

import (
	"time"

	"github.com/profislots/profislots-api/internal/models"
)

// GenerateSlots returns the slot starts in [open, close), step apart.
// A trailing remainder shorter than step still yields its start slot as
// long as that start is before close.
func GenerateSlots(open, close Clock, step time.Duration) []Clock {
	stepMin := Clock(step / time.Minute)
	if stepMin <= 0 || close <= open {
		return []Clock{}
	}

	slots := make([]Clock, 0, int((close-open+stepMin-1)/stepMin))
	for cur := open; cur < close; cur += stepMin {
		slots = append(slots, cur)
	}
	return slots
}

// BusinessHours is the bookable window of a salon day.
type BusinessHours struct {
	Open  Clock
	Close Clock
	Step  time.Duration
}

func (h BusinessHours) Slots() []Clock {
	return GenerateSlots(h.Open, h.Close, h.Step)
}

// HoursFor reads the salon's configured window, falling back field by
// field to def when a value is missing or malformed.
func HoursFor(salon *models.Salon, def BusinessHours) BusinessHours {
	h := def
	if salon == nil {
		return h
	}
	if c, err := ParseClock(salon.OpeningTime); err == nil {
		h.Open = c
	}
	if c, err := ParseClock(salon.ClosingTime); err == nil {
		h.Close = c
	}
	if salon.SlotStepMinutes > 0 {
		h.Step = time.Duration(salon.SlotStepMinutes) * time.Minute
	}
	return h
}
