package appointment

import (
	"context"

	domain "github.com/profislots/profislots-api/internal/domain/appointment"
	"github.com/profislots/profislots-api/internal/dto"
	"github.com/profislots/profislots-api/internal/httperr"
	"github.com/profislots/profislots-api/internal/models"
)

type ListAppointments struct {
	repo domain.Repository
}

func NewListAppointments(
	repo domain.Repository,
) *ListAppointments {
	return &ListAppointments{
		repo: repo,
	}
}

// ByDate backs the date query; an empty day is an empty list.
func (uc *ListAppointments) ByDate(
	ctx context.Context,
	salonID uint,
	date string,
) ([]dto.AppointmentListDTO, error) {

	if date == "" {
		return nil, httperr.ErrInvalid("missing_date")
	}
	if _, err := domain.ParseDate(date); err != nil {
		return nil, httperr.ErrInvalid("invalid_date")
	}

	appointments, err := uc.repo.ListAppointmentsByDate(ctx, salonID, date)
	if err != nil {
		return nil, httperr.Unavailable("list appointments by date", err)
	}

	return dto.AppointmentList(appointments), nil
}

func (uc *ListAppointments) Filter(
	ctx context.Context,
	f domain.ListFilter,
) ([]dto.AppointmentListDTO, error) {

	for _, d := range []string{f.From, f.To} {
		if d == "" {
			continue
		}
		if _, err := domain.ParseDate(d); err != nil {
			return nil, httperr.ErrInvalid("invalid_date")
		}
	}
	if f.Status != "" && !domain.Status(f.Status).Valid() {
		return nil, httperr.ErrInvalid("invalid_status")
	}

	appointments, err := uc.repo.ListAppointments(ctx, f)
	if err != nil {
		return nil, httperr.Unavailable("list appointments", err)
	}

	return dto.AppointmentList(appointments), nil
}

func (uc *ListAppointments) Get(
	ctx context.Context,
	salonID uint,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, salonID, appointmentID)
	if err != nil {
		return nil, lookupErr(err, "appointment_not_found", "get appointment")
	}
	return ap, nil
}
