package appointment

import (
	"context"

	"github.com/profislots/profislots-api/internal/audit"
	domain "github.com/profislots/profislots-api/internal/domain/appointment"
)

// DeleteAppointment is an administrative correction; normal flow cancels.
type DeleteAppointment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteAppointment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteAppointment {
	return &DeleteAppointment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeleteAppointment) Execute(
	ctx context.Context,
	salonID uint,
	actorID *uint,
	appointmentID uint,
) error {

	if err := uc.repo.DeleteAppointment(ctx, salonID, appointmentID); err != nil {
		return lookupErr(err, "appointment_not_found", "delete appointment")
	}

	uc.audit.Dispatch(audit.Event{
		SalonID:  salonID,
		UserID:   actorID,
		Action:   "appointment_deleted",
		Entity:   "appointment",
		EntityID: &appointmentID,
	})

	return nil
}
