package appointment

import (
	"context"
	"time"

	domain "github.com/profislots/profislots-api/internal/domain/appointment"
	"github.com/profislots/profislots-api/internal/httperr"
	"github.com/profislots/profislots-api/internal/timezone"
)

type GetAvailableSlots struct {
	repo  domain.Repository
	hours domain.BusinessHours
	now   func() time.Time
}

func NewGetAvailableSlots(
	repo domain.Repository,
	hours domain.BusinessHours,
) *GetAvailableSlots {
	return &GetAvailableSlots{
		repo:  repo,
		hours: hours,
		now:   time.Now,
	}
}

func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	in domain.AvailabilityInput,
) (*domain.Availability, error) {

	// --------------------------------------------------
	// 1. Parameters, before any store access
	// --------------------------------------------------
	if in.StaffID == 0 {
		return nil, httperr.ErrInvalid("missing_staff_id")
	}
	if in.Date == "" {
		return nil, httperr.ErrInvalid("missing_date")
	}
	if _, err := domain.ParseDate(in.Date); err != nil {
		return nil, httperr.ErrInvalid("invalid_date")
	}

	// --------------------------------------------------
	// 2. Salon window, staff ownership and status
	// --------------------------------------------------
	salon, err := uc.repo.GetSalonByID(ctx, in.SalonID)
	if err != nil {
		return nil, lookupErr(err, "salon_not_found", "get salon")
	}

	staff, err := uc.repo.GetStaff(ctx, in.SalonID, in.StaffID)
	if err != nil {
		return nil, lookupErr(err, "staff_not_found", "get staff")
	}
	// Deactivated staff take no new bookings.
	if !staff.Active {
		return nil, httperr.ErrNotFound("staff_not_found")
	}

	candidates := domain.HoursFor(salon, uc.hours).Slots()

	// --------------------------------------------------
	// 3. Booked appointments; a failing store is an error, never "all free"
	// --------------------------------------------------
	appointments, err := uc.repo.ListAppointmentsByDate(ctx, in.SalonID, in.Date)
	if err != nil {
		return nil, httperr.Unavailable("list appointments by date", err)
	}

	now := timezone.In(uc.now(), salon.Timezone)

	return &domain.Availability{
		Date:    in.Date,
		StaffID: in.StaffID,
		Slots:   domain.ResolveAvailability(candidates, appointments, in.StaffID, in.Date, now),
	}, nil
}
