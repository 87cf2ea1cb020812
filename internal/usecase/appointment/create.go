package appointment

import (
	"context"
	"errors"
	"slices"

	"github.com/profislots/profislots-api/internal/audit"
	domain "github.com/profislots/profislots-api/internal/domain/appointment"
	"github.com/profislots/profislots-api/internal/httperr"
	"github.com/profislots/profislots-api/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateAppointmentInput struct {
	SalonID uint
	ActorID *uint

	CustomerID uint
	StaffID    uint
	ServiceID  uint

	// Contact books for a customer found or created by phone instead of
	// CustomerID. The customer is only written when the booking succeeds.
	Contact *domain.CustomerContact

	Date   string
	Time   string
	Status string
	Notes  string

	// RequireOpenSlot additionally checks the time against the current
	// availability and refuses inactive staff or services. Public bookings
	// set it; staff bookings do not.
	RequireOpenSlot bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateAppointment struct {
	repo         domain.Repository
	availability *GetAvailableSlots
	audit        *audit.Dispatcher
}

func NewCreateAppointment(
	repo domain.Repository,
	availability *GetAvailableSlots,
	audit *audit.Dispatcher,
) *CreateAppointment {
	return &CreateAppointment{
		repo:         repo,
		availability: availability,
		audit:        audit,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreateAppointment) Execute(
	ctx context.Context,
	in CreateAppointmentInput,
) (*models.Appointment, error) {

	// --------------------------------------------------
	// 1. Required fields
	// --------------------------------------------------
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	slot, err := domain.ParseClock(in.Time)
	if err != nil {
		return nil, httperr.ErrInvalid("invalid_time")
	}

	status, err := domain.InitialStatus(in.Status)
	if err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// 2. References must belong to the salon
	// --------------------------------------------------
	service, err := uc.repo.GetService(ctx, in.SalonID, in.ServiceID)
	if err != nil {
		return nil, lookupErr(err, "service_not_found", "get service")
	}
	staff, err := uc.repo.GetStaff(ctx, in.SalonID, in.StaffID)
	if err != nil {
		return nil, lookupErr(err, "staff_not_found", "get staff")
	}
	if in.RequireOpenSlot {
		if !service.Active {
			return nil, httperr.ErrNotFound("service_not_found")
		}
		if !staff.Active {
			return nil, httperr.ErrNotFound("staff_not_found")
		}
	}
	if in.Contact == nil {
		if _, err := uc.repo.GetCustomer(ctx, in.SalonID, in.CustomerID); err != nil {
			return nil, lookupErr(err, "customer_not_found", "get customer")
		}
	}

	// --------------------------------------------------
	// 3. Optional open-slot check
	// --------------------------------------------------
	if in.RequireOpenSlot {
		avail, err := uc.availability.Execute(ctx, domain.AvailabilityInput{
			SalonID: in.SalonID,
			StaffID: in.StaffID,
			Date:    in.Date,
		})
		if err != nil {
			return nil, err
		}
		if !slices.Contains(avail.Slots, slot) {
			return nil, httperr.ErrConflict("slot_unavailable")
		}
	}

	// --------------------------------------------------
	// 4. Transactional re-check + insert
	// --------------------------------------------------
	ap := &models.Appointment{
		SalonID:         in.SalonID,
		CustomerID:      in.CustomerID,
		StaffID:         in.StaffID,
		ServiceID:       in.ServiceID,
		AppointmentDate: in.Date,
		AppointmentTime: slot.String(),
		Status:          string(status),
		Notes:           in.Notes,
	}

	if in.Contact != nil {
		err = uc.repo.CreateAppointmentForContact(ctx, ap, *in.Contact)
	} else {
		err = uc.repo.CreateAppointment(ctx, ap)
	}
	if err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			uc.audit.Dispatch(audit.Event{
				SalonID:  in.SalonID,
				UserID:   in.ActorID,
				Action:   "appointment_conflict",
				Entity:   "appointment",
				Metadata: map[string]any{"staff_id": in.StaffID, "date": in.Date, "time": ap.AppointmentTime},
			})
			return nil, httperr.ErrConflict("slot_unavailable")
		}
		return nil, httperr.Unavailable("create appointment", err)
	}

	// --------------------------------------------------
	// 5. Audit
	// --------------------------------------------------
	uc.audit.Dispatch(audit.Event{
		SalonID:  in.SalonID,
		UserID:   in.ActorID,
		Action:   "appointment_created",
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}

func validateCreate(in CreateAppointmentInput) error {
	if in.Contact != nil {
		if in.Contact.Name == "" || in.Contact.Phone == "" {
			return httperr.ErrInvalid("missing_customer_fields")
		}
	}

	switch {
	case in.ServiceID == 0:
		return httperr.ErrInvalid("missing_service_id")
	case in.StaffID == 0:
		return httperr.ErrInvalid("missing_staff_id")
	case in.CustomerID == 0 && in.Contact == nil:
		return httperr.ErrInvalid("missing_customer_id")
	case in.Date == "":
		return httperr.ErrInvalid("missing_date")
	case in.Time == "":
		return httperr.ErrInvalid("missing_time")
	}

	if _, err := domain.ParseDate(in.Date); err != nil {
		return httperr.ErrInvalid("invalid_date")
	}
	return nil
}
