package appointment

import (
	"context"
	"errors"
	"time"

	"github.com/profislots/profislots-api/internal/audit"
	domain "github.com/profislots/profislots-api/internal/domain/appointment"
	"github.com/profislots/profislots-api/internal/httperr"
	"github.com/profislots/profislots-api/internal/models"
	"github.com/profislots/profislots-api/internal/timezone"
)

type transition struct {
	apply  func(*models.Appointment, time.Time) error
	action string
}

var (
	cancelTransition  = transition{apply: domain.Cancel, action: "appointment_cancelled"}
	confirmTransition = transition{apply: domain.Confirm, action: "appointment_confirmed"}
)

// ChangeStatus runs one status transition (cancel or confirm).
type ChangeStatus struct {
	repo  domain.Repository
	audit *audit.Dispatcher
	t     transition
	now   func() time.Time
}

func NewCancelAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ChangeStatus {
	return &ChangeStatus{repo: repo, audit: audit, t: cancelTransition, now: time.Now}
}

func NewConfirmAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *ChangeStatus {
	return &ChangeStatus{repo: repo, audit: audit, t: confirmTransition, now: time.Now}
}

func (uc *ChangeStatus) Execute(
	ctx context.Context,
	salonID uint,
	actorID *uint,
	appointmentID uint,
) (*models.Appointment, error) {

	salon, err := uc.repo.GetSalonByID(ctx, salonID)
	if err != nil {
		return nil, lookupErr(err, "salon_not_found", "get salon")
	}

	ap, err := uc.repo.GetAppointment(ctx, salonID, appointmentID)
	if err != nil {
		return nil, lookupErr(err, "appointment_not_found", "get appointment")
	}

	now := timezone.In(uc.now(), salon.Timezone)
	if err := uc.t.apply(ap, now); err != nil {
		return nil, err
	}

	if err := uc.repo.UpdateAppointment(ctx, ap); err != nil {
		if errors.Is(err, domain.ErrSlotTaken) {
			return nil, httperr.ErrConflict("slot_unavailable")
		}
		return nil, httperr.Unavailable("update appointment", err)
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   actorID,
		Action:   uc.t.action,
		Entity:   "appointment",
		EntityID: &ap.ID,
	})

	return ap, nil
}
