package appointment

import (
	"context"
	"errors"

	"github.com/profislots/profislots-api/internal/models"
)

// ErrNotFound is returned by repositories for a missing row. Every other
// repository error means the store itself failed.
var ErrNotFound = errors.New("record not found")

// ErrSlotTaken is returned by CreateAppointment when the staff member
// already has a non-cancelled appointment at that date and time.
var ErrSlotTaken = errors.New("slot already taken")

type ListFilter struct {
	SalonID uint
	From    string
	To      string
	StaffID uint
	Status  string
}

// CustomerContact identifies a walk-in customer by phone within a salon.
type CustomerContact struct {
	Name  string
	Phone string
	Email string
}

type Repository interface {
	// -------- Salon --------
	GetSalonByID(
		ctx context.Context,
		id uint,
	) (*models.Salon, error)

	GetSalonBySlug(
		ctx context.Context,
		slug string,
	) (*models.Salon, error)

	// -------- Catalog --------
	GetStaff(
		ctx context.Context,
		salonID uint,
		staffID uint,
	) (*models.Staff, error)

	GetService(
		ctx context.Context,
		salonID uint,
		serviceID uint,
	) (*models.Service, error)

	// -------- Customer --------
	GetCustomer(
		ctx context.Context,
		salonID uint,
		customerID uint,
	) (*models.Customer, error)

	// -------- Appointment (read) --------
	ListAppointmentsByDate(
		ctx context.Context,
		salonID uint,
		date string,
	) ([]models.Appointment, error)

	ListAppointments(
		ctx context.Context,
		filter ListFilter,
	) ([]models.Appointment, error)

	GetAppointment(
		ctx context.Context,
		salonID uint,
		appointmentID uint,
	) (*models.Appointment, error)

	// -------- Appointment (write) --------

	// CreateAppointment re-checks the slot and inserts in one transaction,
	// returning ErrSlotTaken on a double booking.
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// CreateAppointmentForContact resolves the customer by phone (creating
	// it when unknown) and books in the same transaction, so a failed
	// booking leaves no customer behind.
	CreateAppointmentForContact(
		ctx context.Context,
		ap *models.Appointment,
		contact CustomerContact,
	) error

	UpdateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	DeleteAppointment(
		ctx context.Context,
		salonID uint,
		appointmentID uint,
	) error
}
