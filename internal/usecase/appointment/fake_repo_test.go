package appointment

import (
	"context"
	"errors"
	"sync"

	domain "github.com/profislots/profislots-api/internal/domain/appointment"
	"github.com/profislots/profislots-api/internal/models"
)

var errStoreDown = errors.New("connection refused")

// fakeRepo is an in-memory Repository with switchable failures.
type fakeRepo struct {
	mu sync.Mutex

	salon     models.Salon
	staff     map[uint]models.Staff
	services  map[uint]models.Service
	customers map[uint]models.Customer
	aps       []models.Appointment
	nextID    uint

	failList   bool
	failCreate bool
	listCalls  int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		salon: models.Salon{
			ID: 1, Slug: "studio", Timezone: "UTC",
			OpeningTime: "08:00", ClosingTime: "18:00", SlotStepMinutes: 30,
		},
		staff:     map[uint]models.Staff{2: {ID: 2, SalonID: 1, Name: "Anna", Active: true}},
		services:  map[uint]models.Service{1: {ID: 1, SalonID: 1, Name: "Cut", DurationMin: 30, Active: true}},
		customers: map[uint]models.Customer{3: {ID: 3, SalonID: 1, Name: "Max", Phone: "1"}},
		nextID:    1,
	}
}

func (r *fakeRepo) GetSalonByID(_ context.Context, id uint) (*models.Salon, error) {
	if id != r.salon.ID {
		return nil, domain.ErrNotFound
	}
	s := r.salon
	return &s, nil
}

func (r *fakeRepo) GetSalonBySlug(_ context.Context, slug string) (*models.Salon, error) {
	if slug != r.salon.Slug {
		return nil, domain.ErrNotFound
	}
	s := r.salon
	return &s, nil
}

func (r *fakeRepo) GetStaff(_ context.Context, salonID, id uint) (*models.Staff, error) {
	s, ok := r.staff[id]
	if !ok || s.SalonID != salonID {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *fakeRepo) GetService(_ context.Context, salonID, id uint) (*models.Service, error) {
	s, ok := r.services[id]
	if !ok || s.SalonID != salonID {
		return nil, domain.ErrNotFound
	}
	return &s, nil
}

func (r *fakeRepo) GetCustomer(_ context.Context, salonID, id uint) (*models.Customer, error) {
	c, ok := r.customers[id]
	if !ok || c.SalonID != salonID {
		return nil, domain.ErrNotFound
	}
	return &c, nil
}

func (r *fakeRepo) ListAppointmentsByDate(_ context.Context, salonID uint, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.listCalls++
	if r.failList {
		return nil, errStoreDown
	}
	out := []models.Appointment{}
	for _, ap := range r.aps {
		if ap.SalonID == salonID && ap.AppointmentDate == date {
			out = append(out, ap)
		}
	}
	return out, nil
}

func (r *fakeRepo) ListAppointments(_ context.Context, f domain.ListFilter) ([]models.Appointment, error) {
	if r.failList {
		return nil, errStoreDown
	}
	out := []models.Appointment{}
	for _, ap := range r.aps {
		if ap.SalonID != f.SalonID {
			continue
		}
		if f.Status != "" && ap.Status != f.Status {
			continue
		}
		out = append(out, ap)
	}
	return out, nil
}

func (r *fakeRepo) GetAppointment(_ context.Context, salonID, id uint) (*models.Appointment, error) {
	for _, ap := range r.aps {
		if ap.ID == id && ap.SalonID == salonID {
			cp := ap
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *fakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.book(ap)
}

// CreateAppointmentForContact only keeps a new customer when the booking
// goes through, like the transactional store.
func (r *fakeRepo) CreateAppointmentForContact(_ context.Context, ap *models.Appointment, contact domain.CustomerContact) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, c := range r.customers {
		if c.SalonID == ap.SalonID && c.Phone == contact.Phone {
			ap.CustomerID = c.ID
			return r.book(ap)
		}
	}

	c := models.Customer{ID: uint(100 + len(r.customers)), SalonID: ap.SalonID, Name: contact.Name, Phone: contact.Phone, Email: contact.Email}
	ap.CustomerID = c.ID
	if err := r.book(ap); err != nil {
		return err
	}
	r.customers[c.ID] = c
	return nil
}

func (r *fakeRepo) book(ap *models.Appointment) error {
	if r.failCreate {
		return errStoreDown
	}
	for _, existing := range r.aps {
		if existing.StaffID == ap.StaffID &&
			existing.AppointmentDate == ap.AppointmentDate &&
			existing.AppointmentTime == ap.AppointmentTime &&
			domain.Status(existing.Status).Occupies() {
			return domain.ErrSlotTaken
		}
	}
	ap.ID = r.nextID
	r.nextID++
	r.aps = append(r.aps, *ap)
	return nil
}

func (r *fakeRepo) UpdateAppointment(_ context.Context, ap *models.Appointment) error {
	for i := range r.aps {
		if r.aps[i].ID == ap.ID {
			r.aps[i] = *ap
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *fakeRepo) DeleteAppointment(_ context.Context, salonID, id uint) error {
	for i := range r.aps {
		if r.aps[i].ID == id && r.aps[i].SalonID == salonID {
			r.aps = append(r.aps[:i], r.aps[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

var _ domain.Repository = (*fakeRepo)(nil)
